package querygen

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry holds metamodels keyed by entity type name.
// It is safe for concurrent use; generated init functions register into it
// while application code looks metamodels up.
type Registry struct {
	mu     sync.RWMutex
	metas  map[string]Meta
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		metas: make(map[string]Meta),
	}
}

// WithLogger sets a custom logger for the registry.
// If not set, slog.Default() will be used.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
	return r
}

// Register adds a metamodel to the registry.
// If a metamodel is already registered for the same entity, it will be
// replaced and a warning will be logged.
func (r *Registry) Register(m Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.metas[m.EntityName()]; exists {
		logger := r.logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("duplicate metamodel registration",
			slog.String("entity", m.EntityName()),
			slog.String("alias", m.AliasName()))
	}

	r.metas[m.EntityName()] = m
}

// Lookup returns the metamodel registered for the given entity type name.
func (r *Registry) Lookup(entity string) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.metas[entity]
	return m, ok
}

// Metas returns all registered metamodels sorted by entity type name.
func (r *Registry) Metas() []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Meta, 0, len(r.metas))
	for _, m := range r.metas {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntityName() < out[j].EntityName()
	})
	return out
}

// DefaultRegistry is the registry generated init functions register into.
var DefaultRegistry = NewRegistry()

// Register adds a metamodel to the default registry.
func Register(m Meta) { DefaultRegistry.Register(m) }

// Lookup returns a metamodel from the default registry.
func Lookup(entity string) (Meta, bool) { return DefaultRegistry.Lookup(entity) }

// Metas returns all metamodels in the default registry.
func Metas() []Meta { return DefaultRegistry.Metas() }

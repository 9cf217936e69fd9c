// Package devtools serves a built entity model over HTTP for inspection
// during development. The inspect command mounts it; editor tooling and
// curl talk to it.
package devtools

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/querygen-dev/querygen/gen/golang"
	"github.com/querygen-dev/querygen/gen/model"
)

// Server exposes a read-only view of an entity model.
type Server struct {
	schema  *model.Schema
	version string
	logger  *slog.Logger
	mux     *http.ServeMux
	decoder *schema.Decoder
	check   *validator.Validate
}

// NewServer creates a server over a built schema. A nil logger falls
// back to slog.Default().
func NewServer(s *model.Schema, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	srv := &Server{
		schema:  s,
		version: version,
		logger:  logger,
		mux:     http.NewServeMux(),
		decoder: decoder,
		check:   validator.New(),
	}

	srv.mux.HandleFunc("GET /devtools/ping", srv.handle(srv.ping))
	srv.mux.HandleFunc("GET /devtools/info", srv.handle(srv.info))
	srv.mux.HandleFunc("GET /devtools/entities", srv.handle(srv.entities))
	srv.mux.HandleFunc("GET /devtools/entity", srv.handle(srv.entity))
	srv.mux.HandleFunc("GET /devtools/resolve", srv.handle(srv.resolve))

	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handle adapts a typed handler to http.HandlerFunc with the JSON error
// envelope.
func (s *Server) handle(fn func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r)
		if err != nil {
			writeError(w, transformError(err), s.logger)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			s.logger.Error("failed to encode response",
				slog.String("path", r.URL.Path),
				slog.Any("error", err))
		}
	}
}

// decode populates req from the query string and validates it.
func (s *Server) decode(r *http.Request, req any) error {
	if err := s.decoder.Decode(req, r.URL.Query()); err != nil {
		return Errorf(CodeInvalidArgument, "decode query: %v", err)
	}
	return s.check.Struct(req)
}

// PingResponse is the response for /devtools/ping.
type PingResponse struct {
	OK bool `json:"ok"`
}

func (s *Server) ping(*http.Request) (any, error) {
	return &PingResponse{OK: true}, nil
}

// InfoResponse provides runtime information about the server.
type InfoResponse struct {
	Version       string      `json:"version"`
	GoVersion     string      `json:"go_version"`
	SourcePackage string      `json:"source_package"`
	Entities      int         `json:"entities"`
	NumGoroutines int         `json:"num_goroutines"`
	NumCPU        int         `json:"num_cpu"`
	Memory        MemoryStats `json:"memory"`
}

// MemoryStats contains memory statistics.
type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

func (s *Server) info(*http.Request) (any, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &InfoResponse{
		Version:       s.version,
		GoVersion:     runtime.Version(),
		SourcePackage: s.schema.Package.Path,
		Entities:      len(s.schema.Entities),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		Memory: MemoryStats{
			Alloc:      m.Alloc,
			TotalAlloc: m.TotalAlloc,
			Sys:        m.Sys,
			NumGC:      m.NumGC,
		},
	}, nil
}

// EntitiesRequest filters the entity listing.
type EntitiesRequest struct {
	// Prefix restricts the listing to entities whose simple name starts
	// with it.
	Prefix string `schema:"prefix"`
}

// EntitySummary is one row of the entity listing.
type EntitySummary struct {
	Name       string `json:"name"`
	SimpleName string `json:"simple_name"`
	Members    int    `json:"members"`
	Supertypes int    `json:"supertypes"`
	Source     string `json:"source,omitempty"`
}

// EntitiesResponse lists the model's entities.
type EntitiesResponse struct {
	Entities []EntitySummary `json:"entities"`
}

func (s *Server) entities(r *http.Request) (any, error) {
	var req EntitiesRequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}

	res := &EntitiesResponse{Entities: []EntitySummary{}}
	for _, e := range s.schema.Entities {
		simple := e.Type.SimpleName()
		if req.Prefix != "" && !strings.HasPrefix(simple, req.Prefix) {
			continue
		}
		res.Entities = append(res.Entities, EntitySummary{
			Name:       e.Type.Name,
			SimpleName: simple,
			Members:    len(e.Properties),
			Supertypes: len(e.Supertypes),
			Source:     sourceString(e.Source),
		})
	}
	return res, nil
}

// EntityRequest names the entity to describe, by full or simple name.
type EntityRequest struct {
	Name string `schema:"name" validate:"required"`
}

// EntityDetail is the full description of one entity.
type EntityDetail struct {
	Name       string           `json:"name"`
	Doc        string           `json:"doc,omitempty"`
	Params     []string         `json:"params,omitempty"`
	Supertypes []SupertypeEntry `json:"supertypes,omitempty"`
	Properties []PropertyEntry  `json:"properties"`
	Source     string           `json:"source,omitempty"`
}

// SupertypeEntry is one ancestor edge of an entity.
type SupertypeEntry struct {
	Ref    string `json:"ref"`
	Linked bool   `json:"linked"`
}

// PropertyEntry is one member of an entity.
type PropertyEntry struct {
	Name       string `json:"name"`
	Member     string `json:"member"`
	Type       string `json:"type"`
	Doc        string `json:"doc,omitempty"`
	DeclaredBy string `json:"declared_by,omitempty"`
}

func (s *Server) entity(r *http.Request) (any, error) {
	var req EntityRequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}

	e := s.findEntity(req.Name)
	if e == nil {
		return nil, Errorf(CodeNotFound, "entity %q not found", req.Name)
	}

	detail := &EntityDetail{
		Name:       e.Type.Name,
		Doc:        e.Doc,
		Properties: []PropertyEntry{},
		Source:     sourceString(e.Source),
	}
	for _, p := range e.Type.Params {
		detail.Params = append(detail.Params, p.String())
	}
	for _, st := range e.Supertypes {
		detail.Supertypes = append(detail.Supertypes, SupertypeEntry{
			Ref:    st.Ref.String(),
			Linked: st.Linked(),
		})
	}
	for _, p := range e.Properties {
		member := p.Member
		if member == "" {
			member = golang.MemberName(p.Name)
		}
		entry := PropertyEntry{
			Name:   p.Name,
			Member: member,
			Type:   p.Type.String(),
			Doc:    p.Doc,
		}
		if p.Declared != nil && !p.Declared.SameDeclaration(e.Type) {
			entry.DeclaredBy = p.Declared.Name
		}
		detail.Properties = append(detail.Properties, entry)
	}
	return detail, nil
}

// ResolveRequest asks what a supertype's type variable means on a
// concrete entity.
type ResolveRequest struct {
	// Entity is the entity whose hierarchy is searched.
	Entity string `schema:"entity" validate:"required"`

	// Declaring is the generic type that declares the variable.
	Declaring string `schema:"declaring" validate:"required"`

	// Var is the variable name, e.g. "T".
	Var string `schema:"var" validate:"required"`
}

// ResolveResponse reports the substitution result.
type ResolveResponse struct {
	Input    string `json:"input"`
	Resolved string `json:"resolved"`
	Changed  bool   `json:"changed"`
}

func (s *Server) resolve(r *http.Request) (any, error) {
	var req ResolveRequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}

	entity := s.findEntity(req.Entity)
	if entity == nil {
		return nil, Errorf(CodeNotFound, "entity %q not found", req.Entity)
	}
	declaring := s.findEntity(req.Declaring)
	if declaring == nil {
		return nil, Errorf(CodeNotFound, "declaring type %q not found", req.Declaring)
	}

	v := findParam(declaring.Type, req.Var)
	if v == nil {
		return nil, Errorf(CodeNotFound, "%s declares no variable %q",
			declaring.Type.Name, req.Var)
	}

	resolved := model.Resolve(v, declaring.Type, entity)
	return &ResolveResponse{
		Input:    v.String(),
		Resolved: resolved.String(),
		Changed:  resolved != model.Type(v),
	}, nil
}

// findEntity looks an entity up by full name, then by unique simple name.
func (s *Server) findEntity(name string) *model.Entity {
	if e := s.schema.FindEntity(name); e != nil {
		return e
	}
	var match *model.Entity
	for _, e := range s.schema.Entities {
		if e.Type.SimpleName() != name {
			continue
		}
		if match != nil {
			return nil
		}
		match = e
	}
	return match
}

func findParam(decl *model.Ref, name string) *model.Var {
	for _, p := range decl.Params {
		if v, ok := p.(*model.Var); ok && v.Name == name {
			return v
		}
	}
	return nil
}

func sourceString(src model.Source) string {
	if src.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s:%d", src.File, src.Line)
}

// ListenAndServe blocks serving the inspector on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("devtools listening",
		slog.String("addr", addr),
		slog.Int("entities", len(s.schema.Entities)))
	return http.ListenAndServe(addr, s)
}

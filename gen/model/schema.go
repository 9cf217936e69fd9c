package model

import "sort"

// Warning represents a non-fatal issue encountered during model building.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// TypeName is the type that triggered the warning, if applicable.
	TypeName string
}

// Schema is a complete set of entities to generate.
type Schema struct {
	// Package is the primary source package the entities came from.
	Package PackageInfo

	// Entities are the entity nodes, sorted by type name for
	// reproducible generation.
	Entities []*Entity

	// Warnings contains non-fatal issues encountered while building.
	Warnings []Warning
}

// PackageInfo describes a Go package.
type PackageInfo struct {
	// Path is the import path (e.g., "github.com/foo/bar").
	Path string

	// Name is the package name (e.g., "bar").
	Name string

	// Dir is the filesystem directory, if known.
	Dir string
}

// AddEntity adds an entity, keeping Entities sorted by type name.
func (s *Schema) AddEntity(e *Entity) {
	i := sort.Search(len(s.Entities), func(i int) bool {
		return s.Entities[i].Type.Name >= e.Type.Name
	})
	s.Entities = append(s.Entities, nil)
	copy(s.Entities[i+1:], s.Entities[i:])
	s.Entities[i] = e
}

// AddWarning adds a warning to the schema.
func (s *Schema) AddWarning(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// FindEntity looks up an entity by fully qualified type name.
// Returns nil if not found.
func (s *Schema) FindEntity(name string) *Entity {
	for _, e := range s.Entities {
		if e.Type.Name == name {
			return e
		}
	}
	return nil
}

// ValidationError represents a schema validation error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the schema for structural issues.
// Returns all validation errors found (not just the first).
//
// The resolver itself stays silent on malformed input; Validate is where
// the model-construction stage surfaces duplicates, dangling edges, and
// inheritance cycles before generation runs.
func (s *Schema) Validate() []error {
	var errs []*ValidationError

	seen := make(map[string]bool)
	for _, e := range s.Entities {
		if seen[e.Type.Name] {
			errs = append(errs, &ValidationError{
				Code:    "duplicate_entity",
				Message: "duplicate entity type name: " + e.Type.Name,
			})
		}
		seen[e.Type.Name] = true
	}

	// Edges that name an entity in this schema must have been linked;
	// an unlinked edge to a known entity means the linking pass missed it.
	for _, e := range s.Entities {
		for _, st := range e.Supertypes {
			if st.Entity == nil && seen[st.Ref.Name] {
				errs = append(errs, &ValidationError{
					Code:    "dangling_edge",
					Message: "entity " + e.Type.Name + " has unlinked edge to known entity " + st.Ref.Name,
				})
			}
		}
	}

	errs = append(errs, s.detectCycles()...)

	out := make([]error, 0, len(errs))
	for _, e := range errs {
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// detectCycles checks for cycles in the supertype graph.
func (s *Schema) detectCycles() []*ValidationError {
	var errs []*ValidationError

	visited := make(map[*Entity]bool)
	inStack := make(map[*Entity]bool)

	var walk func(e *Entity, path []string)
	walk = func(e *Entity, path []string) {
		if inStack[e] {
			errs = append(errs, &ValidationError{
				Code:    "circular_inheritance",
				Message: "circular inheritance detected: " + joinPath(append(path, e.Type.Name)),
			})
			return
		}
		if visited[e] {
			return
		}

		visited[e] = true
		inStack[e] = true

		for _, st := range e.Supertypes {
			if st.Entity != nil {
				walk(st.Entity, append(path, e.Type.Name))
			}
		}

		inStack[e] = false
	}

	for _, e := range s.Entities {
		walk(e, nil)
	}

	return errs
}

// joinPath joins path elements with " -> ".
func joinPath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	result := path[0]
	for i := 1; i < len(path); i++ {
		result += " -> " + path[i]
	}
	return result
}

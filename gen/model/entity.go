package model

// Source represents a source code location.
type Source struct {
	File string
	Line int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0
}

// Supertype is a directed edge from an entity to one ancestor: the type
// as referenced at the embedding site, plus a link to the ancestor's
// entity node once the model builder has resolved it.
type Supertype struct {
	// Ref is the type as written at the embedding site, possibly
	// parameterized (Base[string]) or raw (Base).
	Ref *Ref

	// Entity is the ancestor's node. Nil until the model builder links
	// it; ancestors outside the scanned packages stay nil. The resolver
	// treats a nil link as no information, not as an error.
	Entity *Entity
}

// NewSupertype creates an unlinked supertype edge.
func NewSupertype(ref *Ref) *Supertype {
	return &Supertype{Ref: ref}
}

// Linked reports whether the edge has a resolved ancestor node.
func (s *Supertype) Linked() bool { return s.Entity != nil }

// Property is a named member of an entity.
type Property struct {
	// Name is the Go field name.
	Name string

	// Member is an explicit query member name from the source tag, if
	// any. When empty the emitter derives one from Name.
	Member string

	// Type is the member's type expression.
	Type Type

	// Doc is the member's documentation summary, if any.
	Doc string

	// Declared is the entity type that declared this member. For members
	// copied down from a supertype it names the supertype's declaration.
	Declared *Ref
}

// Entity is a node in the hierarchy graph: one class-like construct with
// its declared type, supertype edges, and members. The model builder
// constructs entities once; the resolver never mutates them.
type Entity struct {
	// Type is the entity's own declared type. On a generic entity its
	// Params are *Var slots in declaration order.
	Type *Ref

	// Superclass is the direct superclass edge, if any. The same edge
	// also appears in Supertypes.
	Superclass *Supertype

	// Supertypes are all ancestor edges in declaration order.
	Supertypes []*Supertype

	// Properties are the entity's members in declaration order.
	Properties []Property

	// Doc is the entity's documentation summary, if any.
	Doc string

	// Source is the declaration site.
	Source Source
}

// NewEntity creates an entity node for the given declared type.
func NewEntity(typ *Ref) *Entity {
	return &Entity{Type: typ}
}

// AddSupertype appends an ancestor edge.
func (e *Entity) AddSupertype(st *Supertype) {
	e.Supertypes = append(e.Supertypes, st)
}

// Property returns the named member, if present.
func (e *Entity) Property(name string) (Property, bool) {
	for _, p := range e.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// AddProperty appends a member. Names are unique per entity; a duplicate
// is ignored so own declarations shadow inherited ones.
func (e *Entity) AddProperty(p Property) {
	if _, exists := e.Property(p.Name); exists {
		return
	}
	e.Properties = append(e.Properties, p)
}

// Include flattens a linked supertype's members into e. Each copied
// member's type is resolved against the supertype's declaration, so a
// member declared as T on Base arrives as string on an entity embedding
// Base[string]. Members the entity already has are left alone.
//
// Unlinked edges carry no member information and are skipped.
func (e *Entity) Include(st *Supertype) {
	if st == nil || st.Entity == nil {
		return
	}
	super := st.Entity
	for _, p := range super.Properties {
		if _, exists := e.Property(p.Name); exists {
			continue
		}
		e.Properties = append(e.Properties, Property{
			Name:     p.Name,
			Member:   p.Member,
			Type:     Resolve(p.Type, super.Type, e),
			Doc:      p.Doc,
			Declared: super.Type,
		})
	}
}

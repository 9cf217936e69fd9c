// Package querygen is the runtime library imported by generated query
// metamodels. A metamodel pairs one Go entity type with a set of typed
// member descriptors; predicates built from those descriptors render to
// a deterministic textual form for query backends and debugging.
//
// Generated code constructs a Meta per entity, one descriptor per member,
// and registers the result in the package registry from an init function.
// Application code then writes queries against the descriptors:
//
//	q := querygen.And(
//	    shopquery.Product.Name.HasPrefix("wid"),
//	    shopquery.Product.Price.Lt(100),
//	)
package querygen

// Path identifies one member of an entity metamodel.
type Path struct {
	// Entity is the fully qualified Go type name of the entity,
	// e.g. "example.com/shop.Product".
	Entity string

	// Alias is the query alias of the metamodel instance, e.g. "product".
	Alias string

	// Member is the member name as it appears in queries, e.g. "created_at".
	Member string
}

// String returns "alias.member", or just the member when the alias is empty.
func (p Path) String() string {
	if p.Alias == "" {
		return p.Member
	}
	return p.Alias + "." + p.Member
}

// IsZero returns true if the path is empty.
func (p Path) IsZero() bool {
	return p.Entity == "" && p.Alias == "" && p.Member == ""
}

// Meta is the root of a generated metamodel: the entity it describes, the
// query alias, and the members registered through Path. Generated metamodel
// structs embed Meta and populate one descriptor per member.
type Meta struct {
	entity  string
	alias   string
	members []string
}

// NewMeta creates a metamodel root for the given entity type name and alias.
func NewMeta(entity, alias string) Meta {
	return Meta{entity: entity, alias: alias}
}

// Path records a member on the metamodel and returns its Path.
// Generated constructors call it once per member, in declaration order.
func (m *Meta) Path(member string) Path {
	m.members = append(m.members, member)
	return Path{Entity: m.entity, Alias: m.alias, Member: member}
}

// EntityName returns the fully qualified Go type name of the entity.
func (m *Meta) EntityName() string { return m.entity }

// AliasName returns the query alias of this metamodel instance.
func (m *Meta) AliasName() string { return m.alias }

// Members returns the member names in registration order.
func (m *Meta) Members() []string {
	out := make([]string, len(m.members))
	copy(out, m.members)
	return out
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base returns the declaration Base[T any] in package example.com/shop.
func base(params ...Type) *Ref {
	return NewRef("example.com/shop.Base", CategoryEntity, params...)
}

func TestResolve_NonGenericInput(t *testing.T) {
	// Concrete inputs come back unchanged without any hierarchy search,
	// even when the context entity would otherwise produce a match.
	declaring := base(NewVar("T", nil))
	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))
	entity.AddSupertype(&Supertype{
		Ref:    base(StringType),
		Entity: NewEntity(declaring),
	})

	got := Resolve(StringType, declaring, entity)
	assert.Same(t, Type(StringType), got)
}

func TestResolve_NoSupertypes(t *testing.T) {
	declaring := base(NewVar("T", nil))
	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))

	v := NewVar("T", nil)
	got := Resolve(v, declaring, entity)
	assert.Same(t, Type(v), got)
}

func TestResolve_UnlinkedEdge(t *testing.T) {
	// An edge recorded before its ancestor was resolved contributes
	// nothing, even when its ref names the declaring type with arguments.
	declaring := base(NewVar("T", nil))
	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))
	entity.AddSupertype(NewSupertype(base(StringType)))

	v := NewVar("T", nil)
	got := Resolve(v, declaring, entity)
	assert.Same(t, Type(v), got)
}

func TestResolve_UnrelatedHierarchy(t *testing.T) {
	// Hierarchy reaches Parent only; the declaring type Unrelated[T]
	// appears nowhere, so the variable stays unresolved.
	declaring := NewRef("example.com/shop.Unrelated", CategoryEntity, NewVar("T", nil))

	parent := NewEntity(NewRef("example.com/shop.Parent", CategoryEntity))
	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))
	entity.AddSupertype(&Supertype{Ref: parent.Type, Entity: parent})

	v := NewVar("T", nil)
	got := Resolve(v, declaring, entity)
	assert.Same(t, Type(v), got)
}

func TestResolve_MatchWithArguments(t *testing.T) {
	declaring := base(NewVar("T", nil))

	baseEntity := NewEntity(declaring)
	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))
	entity.AddSupertype(&Supertype{Ref: base(StringType), Entity: baseEntity})

	got := Resolve(NewVar("T", nil), declaring, entity)
	require.IsType(t, &Ref{}, got)
	assert.Equal(t, "string", got.(*Ref).Name)
}

func TestResolve_RawReference(t *testing.T) {
	// Base embedded without arguments: a match is found, but no binding
	// can be derived from a raw reference.
	declaring := base(NewVar("T", nil))

	baseEntity := NewEntity(declaring)
	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))
	entity.AddSupertype(&Supertype{Ref: base(), Entity: baseEntity})

	v := NewVar("T", nil)
	got := Resolve(v, declaring, entity)
	assert.Same(t, Type(v), got)
}

func TestResolve_PositionalSubstitution(t *testing.T) {
	declaring := NewRef("example.com/shop.Pair", CategoryEntity,
		NewVar("K", nil), NewVar("V", nil))

	pairEntity := NewEntity(declaring)
	entity := NewEntity(NewRef("example.com/shop.Settings", CategoryEntity))
	entity.AddSupertype(&Supertype{
		Ref:    NewRef("example.com/shop.Pair", CategoryEntity, StringType, Int64),
		Entity: pairEntity,
	})

	gotK := Resolve(NewVar("K", nil), declaring, entity)
	gotV := Resolve(NewVar("V", nil), declaring, entity)
	assert.Equal(t, "string", gotK.(*Ref).Name)
	assert.Equal(t, "int64", gotV.(*Ref).Name)
}

func TestResolve_TransitiveWalk(t *testing.T) {
	// Product -> Middle -> Base[string]: the match is two levels up.
	declaring := base(NewVar("T", nil))

	baseEntity := NewEntity(declaring)
	middle := NewEntity(NewRef("example.com/shop.Middle", CategoryEntity))
	middle.AddSupertype(&Supertype{Ref: base(StringType), Entity: baseEntity})

	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))
	entity.AddSupertype(&Supertype{Ref: middle.Type, Entity: middle})

	got := Resolve(NewVar("T", nil), declaring, entity)
	assert.Equal(t, "string", got.(*Ref).Name)
}

func TestResolve_UnknownVariableName(t *testing.T) {
	// The variable's name is not among the declaring type's parameters.
	declaring := base(NewVar("T", nil))

	baseEntity := NewEntity(declaring)
	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))
	entity.AddSupertype(&Supertype{Ref: base(StringType), Entity: baseEntity})

	v := NewVar("U", nil)
	got := Resolve(v, declaring, entity)
	assert.Same(t, Type(v), got)
}

func TestResolve_ArityShortfall(t *testing.T) {
	// The embedding site supplies fewer arguments than the declaration
	// has parameters; the overflowing variable gets no binding.
	declaring := NewRef("example.com/shop.Pair", CategoryEntity,
		NewVar("K", nil), NewVar("V", nil))

	pairEntity := NewEntity(declaring)
	entity := NewEntity(NewRef("example.com/shop.Settings", CategoryEntity))
	entity.AddSupertype(&Supertype{
		Ref:    NewRef("example.com/shop.Pair", CategoryEntity, StringType),
		Entity: pairEntity,
	})

	gotK := Resolve(NewVar("K", nil), declaring, entity)
	assert.Equal(t, "string", gotK.(*Ref).Name)

	v := NewVar("V", nil)
	gotV := Resolve(v, declaring, entity)
	assert.Same(t, Type(v), gotV)
}

func TestResolve_CyclicGraphTerminates(t *testing.T) {
	// Malformed input: a cycle between two entities. The resolver must
	// exhaust the reachable hierarchy and return the input unchanged.
	declaring := base(NewVar("T", nil))

	a := NewEntity(NewRef("example.com/shop.A", CategoryEntity))
	b := NewEntity(NewRef("example.com/shop.B", CategoryEntity))
	a.AddSupertype(&Supertype{Ref: b.Type, Entity: b})
	b.AddSupertype(&Supertype{Ref: a.Type, Entity: a})

	v := NewVar("T", nil)
	got := Resolve(v, declaring, a)
	assert.Same(t, Type(v), got)
}

func TestResolve_SkipsUnlinkedContinuesToLinked(t *testing.T) {
	// The first edge is unlinked and contributes nothing; the search
	// continues to the linked sibling edge.
	declaring := base(NewVar("T", nil))

	baseEntity := NewEntity(declaring)
	entity := NewEntity(NewRef("example.com/shop.Product", CategoryEntity))
	entity.AddSupertype(NewSupertype(NewRef("example.com/vendor.Mixin", CategoryEntity)))
	entity.AddSupertype(&Supertype{Ref: base(Int64), Entity: baseEntity})

	got := Resolve(NewVar("T", nil), declaring, entity)
	assert.Equal(t, "int64", got.(*Ref).Name)
}

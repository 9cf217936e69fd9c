package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityNamed(name string) *Entity {
	return NewEntity(NewRef(name, CategoryEntity))
}

func TestSchema_AddEntity_Sorted(t *testing.T) {
	s := &Schema{}
	s.AddEntity(entityNamed("example.com/shop.Cart"))
	s.AddEntity(entityNamed("example.com/shop.Account"))
	s.AddEntity(entityNamed("example.com/shop.Product"))

	names := make([]string, len(s.Entities))
	for i, e := range s.Entities {
		names[i] = e.Type.Name
	}
	assert.Equal(t, []string{
		"example.com/shop.Account",
		"example.com/shop.Cart",
		"example.com/shop.Product",
	}, names)
}

func TestSchema_FindEntity(t *testing.T) {
	s := &Schema{}
	e := entityNamed("example.com/shop.Product")
	s.AddEntity(e)

	assert.Same(t, e, s.FindEntity("example.com/shop.Product"))
	assert.Nil(t, s.FindEntity("example.com/shop.Missing"))
}

func TestSchema_Validate_Clean(t *testing.T) {
	s := &Schema{}
	base := entityNamed("example.com/shop.Base")
	product := entityNamed("example.com/shop.Product")
	product.AddSupertype(&Supertype{Ref: base.Type, Entity: base})
	// Edge to an entity outside the schema stays unlinked; that is fine.
	product.AddSupertype(NewSupertype(NewRef("example.com/vendor.Mixin", CategoryEntity)))
	s.AddEntity(base)
	s.AddEntity(product)

	assert.Nil(t, s.Validate())
}

func TestSchema_Validate_DuplicateEntity(t *testing.T) {
	s := &Schema{}
	s.AddEntity(entityNamed("example.com/shop.Product"))
	s.AddEntity(entityNamed("example.com/shop.Product"))

	errs := s.Validate()
	require.Len(t, errs, 1)
	var verr *ValidationError
	require.ErrorAs(t, errs[0], &verr)
	assert.Equal(t, "duplicate_entity", verr.Code)
}

func TestSchema_Validate_DanglingEdge(t *testing.T) {
	s := &Schema{}
	base := entityNamed("example.com/shop.Base")
	product := entityNamed("example.com/shop.Product")
	// Base is in the schema but the edge was never linked.
	product.AddSupertype(NewSupertype(base.Type))
	s.AddEntity(base)
	s.AddEntity(product)

	errs := s.Validate()
	require.Len(t, errs, 1)
	var verr *ValidationError
	require.ErrorAs(t, errs[0], &verr)
	assert.Equal(t, "dangling_edge", verr.Code)
}

func TestSchema_Validate_Cycle(t *testing.T) {
	s := &Schema{}
	a := entityNamed("example.com/shop.A")
	b := entityNamed("example.com/shop.B")
	a.AddSupertype(&Supertype{Ref: b.Type, Entity: b})
	b.AddSupertype(&Supertype{Ref: a.Type, Entity: a})
	s.AddEntity(a)
	s.AddEntity(b)

	errs := s.Validate()
	require.NotEmpty(t, errs)
	var verr *ValidationError
	require.ErrorAs(t, errs[0], &verr)
	assert.Equal(t, "circular_inheritance", verr.Code)
	assert.Contains(t, verr.Message, " -> ")
}

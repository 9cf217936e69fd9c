// Package shop contains fixture entities for provider tests.
package shop

import "time"

//querygen:entity
type Base[T any] struct {
	// ID is the primary identifier.
	ID        T
	CreatedAt time.Time
}

// Product is a sellable item.
//
//querygen:entity
type Product struct {
	Base[int64]

	// Name is the product's display name.
	Name   string
	Price  float64
	Tags   []string
	Attrs  map[string]string
	Photo  []byte
	Secret string `querygen:"-"`

	internal string
}

//querygen:entity
type Category struct {
	Base[string]
	Title string
}

// Audited extends Base with modification tracking.
//
//querygen:entity
type Audited[U any] struct {
	Base[U]
	UpdatedAt time.Time
}

//querygen:entity
type Invoice struct {
	Audited[string]
	Number string
}

// Unmarked has no entity directive and never becomes an entity node.
type Unmarked struct {
	Note string
}

//querygen:entity
type Order struct {
	Unmarked
	Total float64
}

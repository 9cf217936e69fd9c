// Package shop provides simple example code for documentation.
package shop

import "time"

// [snippet:entities collapse]

// Base carries the members every persisted record shares.
//
//querygen:entity
type Base[ID any] struct {
	ID        ID
	CreatedAt time.Time
}

// Product is a sellable item.
//
//querygen:entity
type Product struct {
	Base[int64]

	Name  string
	Price float64
	Tags  []string
}

// [/snippet:entities]

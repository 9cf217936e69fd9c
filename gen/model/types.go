// Package model defines the entity and type model consumed by the
// generator: nominal type references, bounded type variables, entity
// nodes with supertype edges, and the type-variable resolver.
package model

import "strings"

// Category classifies a nominal type for descriptor mapping.
type Category int

const (
	CategorySimple Category = iota
	CategoryEntity
	CategoryString
	CategoryBoolean
	CategoryNumeric
	CategoryComparable
	CategoryTime
	CategoryBytes
	CategoryEnum
	CategoryArray
	CategoryMap
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategorySimple:
		return "Simple"
	case CategoryEntity:
		return "Entity"
	case CategoryString:
		return "String"
	case CategoryBoolean:
		return "Boolean"
	case CategoryNumeric:
		return "Numeric"
	case CategoryComparable:
		return "Comparable"
	case CategoryTime:
		return "Time"
	case CategoryBytes:
		return "Bytes"
	case CategoryEnum:
		return "Enum"
	case CategoryArray:
		return "Array"
	case CategoryMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// Type is a type expression: either a reference to a nominal type (*Ref)
// or a bounded type variable (*Var).
type Type interface {
	// String returns a readable rendering of the type expression.
	String() string

	// Ensure only types in this package can implement Type.
	sealed()
}

// Ref is a possibly-parameterized reference to a nominal type.
//
// Two Refs denote the same declaration when their Names match, independent
// of parameterization: Base[string] and Base[T] reference one declaration.
// A Ref with an empty Params list where the declaration is generic is a
// raw reference.
type Ref struct {
	// Name is the fully qualified type name, e.g. "example.com/shop.Product".
	// Builtin types use their bare name, e.g. "string".
	Name string

	// Category classifies the type for descriptor mapping.
	Category Category

	// Params are the ordered parameter slots. On a declaration they are
	// *Var slots; on a use site they are the supplied arguments, or empty
	// for a raw reference.
	Params []Type
}

// NewRef creates a type reference.
func NewRef(name string, category Category, params ...Type) *Ref {
	return &Ref{Name: name, Category: category, Params: params}
}

// SimpleName returns the name without its package qualifier.
func (r *Ref) SimpleName() string {
	if i := strings.LastIndexByte(r.Name, '.'); i >= 0 {
		return r.Name[i+1:]
	}
	return r.Name
}

// PackagePath returns the package qualifier of the name, or "" for builtins.
func (r *Ref) PackagePath() string {
	if i := strings.LastIndexByte(r.Name, '.'); i >= 0 {
		return r.Name[:i]
	}
	return ""
}

// SameDeclaration reports whether r and other reference the same
// declaration, ignoring parameterization.
func (r *Ref) SameDeclaration(other *Ref) bool {
	return other != nil && r.Name == other.Name
}

// String renders the reference, with arguments when present.
func (r *Ref) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	parts := make([]string, len(r.Params))
	for i, p := range r.Params {
		parts[i] = p.String()
	}
	return r.Name + "[" + strings.Join(parts, ", ") + "]"
}

func (*Ref) sealed() {}

// Var is a bounded type variable: a named placeholder awaiting
// substitution, carrying its upper bound.
type Var struct {
	// Name is the variable name, e.g. "T". Unique among the parameter
	// slots of the declaring type.
	Name string

	// Bound is the upper bound. Never nil; an unconstrained variable is
	// bounded by Object.
	Bound *Ref
}

// NewVar creates a bounded type variable. A nil bound defaults to Object.
func NewVar(name string, bound *Ref) *Var {
	if bound == nil {
		bound = Object
	}
	return &Var{Name: name, Bound: bound}
}

// String renders the variable with its bound.
func (v *Var) String() string {
	if v.Bound == Object {
		return v.Name
	}
	return v.Name + " " + v.Bound.String()
}

func (*Var) sealed() {}

// Well-known type references shared across the generator.
var (
	Object     = &Ref{Name: "any", Category: CategorySimple}
	StringType = &Ref{Name: "string", Category: CategoryString}
	Bool       = &Ref{Name: "bool", Category: CategoryBoolean}
	Int        = &Ref{Name: "int", Category: CategoryNumeric}
	Int64      = &Ref{Name: "int64", Category: CategoryNumeric}
	Float64    = &Ref{Name: "float64", Category: CategoryNumeric}
	TimeType   = &Ref{Name: "time.Time", Category: CategoryTime}
	Bytes      = &Ref{Name: "[]byte", Category: CategoryBytes}
)

// builtinCategories maps builtin and well-known type names to categories.
var builtinCategories = map[string]Category{
	"string":     CategoryString,
	"bool":       CategoryBoolean,
	"int":        CategoryNumeric,
	"int8":       CategoryNumeric,
	"int16":      CategoryNumeric,
	"int32":      CategoryNumeric,
	"int64":      CategoryNumeric,
	"uint":       CategoryNumeric,
	"uint8":      CategoryNumeric,
	"uint16":     CategoryNumeric,
	"uint32":     CategoryNumeric,
	"uint64":     CategoryNumeric,
	"float32":    CategoryNumeric,
	"float64":    CategoryNumeric,
	"time.Time":  CategoryTime,
	"[]byte":     CategoryBytes,
	"rune":       CategoryNumeric,
	"complex64":  CategorySimple,
	"complex128": CategorySimple,
}

// Categorize maps a builtin or well-known type name to its category.
// Unknown names categorize as Simple.
func Categorize(name string) Category {
	if c, ok := builtinCategories[name]; ok {
		return c
	}
	return CategorySimple
}

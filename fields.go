package querygen

import (
	"cmp"
	"time"
)

// Numeric constrains Number to Go's numeric kinds.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// member is the common part of every descriptor kind.
type member struct {
	path Path
}

// Path returns the descriptor's path.
func (m member) Path() Path { return m.path }

// String describes a string-valued member.
type String struct{ member }

// NewString creates a string descriptor for the given path.
func NewString(p Path) String { return String{member{p}} }

func (s String) Eq(v string) Predicate  { return compare(s.path, OpEq, v) }
func (s String) Neq(v string) Predicate { return compare(s.path, OpNeq, v) }

// In matches any of the given values.
func (s String) In(vs ...string) Predicate { return compare(s.path, OpIn, anySlice(vs)...) }

// Contains matches values containing sub.
func (s String) Contains(sub string) Predicate { return compare(s.path, OpContains, sub) }

// HasPrefix matches values starting with prefix.
func (s String) HasPrefix(prefix string) Predicate { return compare(s.path, OpHasPrefix, prefix) }

// HasSuffix matches values ending with suffix.
func (s String) HasSuffix(suffix string) Predicate { return compare(s.path, OpHasSuffix, suffix) }

func (s String) IsNull() Predicate    { return compare(s.path, OpIsNull) }
func (s String) IsNotNull() Predicate { return compare(s.path, OpIsNotNull) }

// Boolean describes a bool-valued member.
type Boolean struct{ member }

// NewBoolean creates a boolean descriptor for the given path.
func NewBoolean(p Path) Boolean { return Boolean{member{p}} }

func (b Boolean) Eq(v bool) Predicate { return compare(b.path, OpEq, v) }
func (b Boolean) IsTrue() Predicate   { return compare(b.path, OpEq, true) }
func (b Boolean) IsFalse() Predicate  { return compare(b.path, OpEq, false) }

// Number describes a numeric member of kind T.
type Number[T Numeric] struct{ member }

// NewNumber creates a numeric descriptor for the given path.
func NewNumber[T Numeric](p Path) Number[T] { return Number[T]{member{p}} }

func (n Number[T]) Eq(v T) Predicate  { return compare(n.path, OpEq, v) }
func (n Number[T]) Neq(v T) Predicate { return compare(n.path, OpNeq, v) }
func (n Number[T]) Lt(v T) Predicate  { return compare(n.path, OpLt, v) }
func (n Number[T]) Lte(v T) Predicate { return compare(n.path, OpLte, v) }
func (n Number[T]) Gt(v T) Predicate  { return compare(n.path, OpGt, v) }
func (n Number[T]) Gte(v T) Predicate { return compare(n.path, OpGte, v) }

// Between matches values in the closed interval [lo, hi].
func (n Number[T]) Between(lo, hi T) Predicate { return compare(n.path, OpBetween, lo, hi) }

// In matches any of the given values.
func (n Number[T]) In(vs ...T) Predicate { return compare(n.path, OpIn, anySlice(vs)...) }

// Time describes a time.Time-valued member.
type Time struct{ member }

// NewTime creates a time descriptor for the given path.
func NewTime(p Path) Time { return Time{member{p}} }

func (t Time) Eq(v time.Time) Predicate     { return compare(t.path, OpEq, v) }
func (t Time) Before(v time.Time) Predicate { return compare(t.path, OpLt, v) }
func (t Time) After(v time.Time) Predicate  { return compare(t.path, OpGt, v) }

// Between matches instants in the closed interval [lo, hi].
func (t Time) Between(lo, hi time.Time) Predicate { return compare(t.path, OpBetween, lo, hi) }

func (t Time) IsNull() Predicate    { return compare(t.path, OpIsNull) }
func (t Time) IsNotNull() Predicate { return compare(t.path, OpIsNotNull) }

// Comparable describes an ordered member that is not one of the dedicated
// kinds, e.g. a defined string type with ordering semantics.
type Comparable[T cmp.Ordered] struct{ member }

// NewComparable creates an ordered descriptor for the given path.
func NewComparable[T cmp.Ordered](p Path) Comparable[T] { return Comparable[T]{member{p}} }

func (c Comparable[T]) Eq(v T) Predicate  { return compare(c.path, OpEq, v) }
func (c Comparable[T]) Neq(v T) Predicate { return compare(c.path, OpNeq, v) }
func (c Comparable[T]) Lt(v T) Predicate  { return compare(c.path, OpLt, v) }
func (c Comparable[T]) Gt(v T) Predicate  { return compare(c.path, OpGt, v) }

// Between matches values in the closed interval [lo, hi].
func (c Comparable[T]) Between(lo, hi T) Predicate { return compare(c.path, OpBetween, lo, hi) }

// In matches any of the given values.
func (c Comparable[T]) In(vs ...T) Predicate { return compare(c.path, OpIn, anySlice(vs)...) }

// Simple describes a member with equality semantics only.
type Simple[T any] struct{ member }

// NewSimple creates an equality-only descriptor for the given path.
func NewSimple[T any](p Path) Simple[T] { return Simple[T]{member{p}} }

func (s Simple[T]) Eq(v T) Predicate  { return compare(s.path, OpEq, v) }
func (s Simple[T]) Neq(v T) Predicate { return compare(s.path, OpNeq, v) }

// In matches any of the given values.
func (s Simple[T]) In(vs ...T) Predicate { return compare(s.path, OpIn, anySlice(vs)...) }

func (s Simple[T]) IsNull() Predicate    { return compare(s.path, OpIsNull) }
func (s Simple[T]) IsNotNull() Predicate { return compare(s.path, OpIsNotNull) }

// Ref describes a member referencing another entity of type T.
type Ref[T any] struct{ member }

// NewRef creates an entity-reference descriptor for the given path.
func NewRef[T any](p Path) Ref[T] { return Ref[T]{member{p}} }

// Eq matches references pointing at the same row as other.
func (r Ref[T]) Eq(other Path) Predicate { return compare(r.path, OpEq, other) }

func (r Ref[T]) IsNull() Predicate    { return compare(r.path, OpIsNull) }
func (r Ref[T]) IsNotNull() Predicate { return compare(r.path, OpIsNotNull) }

// Array describes a collection-valued member with element type E.
type Array[E any] struct{ member }

// NewArray creates a collection descriptor for the given path.
func NewArray[E any](p Path) Array[E] { return Array[E]{member{p}} }

// Contains matches collections containing v.
func (a Array[E]) Contains(v E) Predicate { return compare(a.path, OpContains, v) }

func (a Array[E]) IsEmpty() Predicate { return compare(a.path, OpIsEmpty) }
func (a Array[E]) IsNull() Predicate  { return compare(a.path, OpIsNull) }

// Map describes a map-valued member with key type K and value type V.
type Map[K comparable, V any] struct{ member }

// NewMap creates a map descriptor for the given path.
func NewMap[K comparable, V any](p Path) Map[K, V] { return Map[K, V]{member{p}} }

// HasKey matches maps containing the key k.
func (m Map[K, V]) HasKey(k K) Predicate { return compare(m.path, OpHasKey, k) }

func (m Map[K, V]) IsEmpty() Predicate { return compare(m.path, OpIsEmpty) }
func (m Map[K, V]) IsNull() Predicate  { return compare(m.path, OpIsNull) }

// anySlice widens a typed slice for variadic predicate arguments.
func anySlice[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

package querygen

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Op is a comparison operator appearing in a predicate.
type Op string

const (
	OpEq        Op = "="
	OpNeq       Op = "!="
	OpLt        Op = "<"
	OpLte       Op = "<="
	OpGt        Op = ">"
	OpGte       Op = ">="
	OpIn        Op = "in"
	OpBetween   Op = "between"
	OpIsNull    Op = "is null"
	OpIsNotNull Op = "is not null"
	OpIsEmpty   Op = "is empty"
	OpContains  Op = "contains"
	OpHasPrefix Op = "hasPrefix"
	OpHasSuffix Op = "hasSuffix"
	OpHasKey    Op = "hasKey"
)

// Predicate is a boolean expression over metamodel paths.
//
// String renders a deterministic textual form: operand order follows
// construction order, values render the same way on every run. The
// rendering is meant for query backends and test assertions, not for
// direct execution against a database.
type Predicate interface {
	fmt.Stringer

	// Ensure only types in this package can implement Predicate.
	sealed()
}

// comparison is a single path/operator/arguments leaf.
type comparison struct {
	path Path
	op   Op
	args []any
}

func (c comparison) sealed() {}

func (c comparison) String() string {
	switch c.op {
	case OpIsNull, OpIsNotNull, OpIsEmpty:
		return c.path.String() + " " + string(c.op)
	case OpIn:
		vals := make([]string, len(c.args))
		for i, a := range c.args {
			vals[i] = renderValue(a)
		}
		return c.path.String() + " in (" + strings.Join(vals, ", ") + ")"
	case OpBetween:
		return c.path.String() + " between " + renderValue(c.args[0]) + " and " + renderValue(c.args[1])
	case OpContains, OpHasPrefix, OpHasSuffix, OpHasKey:
		return string(c.op) + "(" + c.path.String() + ", " + renderValue(c.args[0]) + ")"
	default:
		return c.path.String() + " " + string(c.op) + " " + renderValue(c.args[0])
	}
}

// compare builds a comparison leaf. Descriptor methods funnel through here.
func compare(p Path, op Op, args ...any) Predicate {
	return comparison{path: p, op: op, args: args}
}

// junction is an and/or over two or more predicates.
type junction struct {
	op    string
	preds []Predicate
}

func (j junction) sealed() {}

func (j junction) String() string {
	parts := make([]string, len(j.preds))
	for i, p := range j.preds {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, " "+j.op+" ") + ")"
}

// negation inverts a predicate.
type negation struct {
	pred Predicate
}

func (n negation) sealed() {}

func (n negation) String() string {
	return "not (" + n.pred.String() + ")"
}

// And combines predicates conjunctively. Nil predicates are skipped.
// Returns nil when no predicates remain, and the predicate itself when
// exactly one remains.
func And(preds ...Predicate) Predicate {
	return join("and", preds)
}

// Or combines predicates disjunctively. Nil predicates are skipped.
func Or(preds ...Predicate) Predicate {
	return join("or", preds)
}

// Not inverts a predicate. Not(nil) returns nil.
func Not(p Predicate) Predicate {
	if p == nil {
		return nil
	}
	return negation{pred: p}
}

func join(op string, preds []Predicate) Predicate {
	kept := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return junction{op: op, preds: kept}
	}
}

// renderValue renders a predicate argument deterministically.
// Strings are quoted, times use RFC 3339, everything else uses the
// default Go formatting.
func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	case time.Time:
		return strconv.Quote(t.UTC().Format(time.RFC3339Nano))
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

package generator

import (
	"fmt"

	"simgen/internal/schema"
)

// PredicateOp tags the predicate variants.
type PredicateOp int

// Predicate variants. Eq, Neq, Gt and Lt compare a column with a literal.
const (
	OpEq PredicateOp = iota
	OpNeq
	OpGt
	OpLt
	OpAnd
	OpOr
	OpTrue
)

var predicateOpNames = map[PredicateOp]string{
	OpEq:   "eq",
	OpNeq:  "neq",
	OpGt:   "gt",
	OpLt:   "lt",
	OpAnd:  "and",
	OpOr:   "or",
	OpTrue: "true",
}

// String returns the variant name.
func (op PredicateOp) String() string {
	if name, ok := predicateOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// MarshalYAML encodes the op by name.
func (op PredicateOp) MarshalYAML() (any, error) {
	return op.String(), nil
}

// UnmarshalYAML decodes an op name.
func (op *PredicateOp) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	for k, v := range predicateOpNames {
		if v == name {
			*op = k
			return nil
		}
	}
	return fmt.Errorf("unknown predicate op %q", name)
}

// Predicate is a boolean expression over one row.
// An empty And is true and an empty Or is false.
type Predicate struct {
	Op       PredicateOp  `yaml:"op"`
	Column   string       `yaml:"column,omitempty"`
	Value    schema.Value `yaml:"value,omitempty"`
	Children []Predicate  `yaml:"children,omitempty"`
}

// Eq builds column = value.
func Eq(column string, v schema.Value) Predicate {
	return Predicate{Op: OpEq, Column: column, Value: v}
}

// Neq builds column != value.
func Neq(column string, v schema.Value) Predicate {
	return Predicate{Op: OpNeq, Column: column, Value: v}
}

// Gt builds column > value.
func Gt(column string, v schema.Value) Predicate {
	return Predicate{Op: OpGt, Column: column, Value: v}
}

// Lt builds column < value.
func Lt(column string, v schema.Value) Predicate {
	return Predicate{Op: OpLt, Column: column, Value: v}
}

// And builds a conjunction.
func And(children ...Predicate) Predicate {
	return Predicate{Op: OpAnd, Children: children}
}

// Or builds a disjunction.
func Or(children ...Predicate) Predicate {
	return Predicate{Op: OpOr, Children: children}
}

// True builds the constant true predicate.
func True() Predicate {
	return Predicate{Op: OpTrue}
}

// False builds the constant false predicate, an empty Or.
func False() Predicate {
	return Or()
}

// IsLeaf reports whether p is a column comparison.
func (p Predicate) IsLeaf() bool {
	switch p.Op {
	case OpEq, OpNeq, OpGt, OpLt:
		return true
	default:
		return false
	}
}

// Build emits the predicate as a SQL boolean expression.
func (p Predicate) Build(b *SQLBuilder) {
	switch p.Op {
	case OpEq, OpNeq, OpGt, OpLt:
		b.Write("(")
		b.Write(p.Column)
		b.Write(" ")
		b.Write(comparisonSQL(p.Op))
		b.Write(" ")
		b.Write(p.Value.SQLLiteral())
		b.Write(")")
	case OpTrue:
		b.Write("TRUE")
	case OpAnd, OpOr:
		if len(p.Children) == 0 {
			if p.Op == OpAnd {
				b.Write("TRUE")
			} else {
				b.Write("FALSE")
			}
			return
		}
		sep := " AND "
		if p.Op == OpOr {
			sep = " OR "
		}
		b.Write("(")
		for i, child := range p.Children {
			if i > 0 {
				b.Write(sep)
			}
			child.Build(b)
		}
		b.Write(")")
	default:
		b.Write("TRUE")
	}
}

// SQLString renders the predicate.
func (p Predicate) SQLString() string {
	b := SQLBuilder{}
	p.Build(&b)
	return b.String()
}

// String renders the predicate for logs.
func (p Predicate) String() string {
	return p.SQLString()
}

// Columns returns the referenced column names in visit order.
func (p Predicate) Columns() []string {
	var out []string
	p.Walk(func(q Predicate) {
		if q.IsLeaf() {
			out = append(out, q.Column)
		}
	})
	return out
}

// Walk visits p and its descendants depth-first.
func (p Predicate) Walk(fn func(Predicate)) {
	fn(p)
	for _, child := range p.Children {
		child.Walk(fn)
	}
}

// Depth returns the nesting depth; leaves have depth 1.
func (p Predicate) Depth() int {
	depth := 0
	for _, child := range p.Children {
		if d := child.Depth(); d > depth {
			depth = d
		}
	}
	return depth + 1
}

func comparisonSQL(op PredicateOp) string {
	switch op {
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpGt:
		return ">"
	default:
		return "<"
	}
}

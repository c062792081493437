package oracle

import (
	"simgen/internal/generator"
	"simgen/internal/schema"
	"simgen/internal/util"

	"github.com/pkg/errors"
)

// Truth is a SQL three-valued logic result.
type Truth int

const (
	Unknown Truth = iota
	False
	True
)

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

func truthOf(b bool) Truth {
	if b {
		return True
	}
	return False
}

// Eval evaluates pred against row of tbl with SQL NULL semantics:
// a comparison involving NULL is Unknown.
func Eval(tbl schema.Table, row schema.Row, pred generator.Predicate) (Truth, error) {
	switch pred.Op {
	case generator.OpTrue:
		return True, nil
	case generator.OpAnd:
		out := True
		for _, child := range pred.Children {
			t, err := Eval(tbl, row, child)
			if err != nil {
				return Unknown, err
			}
			if t == False {
				return False, nil
			}
			if t == Unknown {
				out = Unknown
			}
		}
		return out, nil
	case generator.OpOr:
		out := False
		for _, child := range pred.Children {
			t, err := Eval(tbl, row, child)
			if err != nil {
				return Unknown, err
			}
			if t == True {
				return True, nil
			}
			if t == Unknown {
				out = Unknown
			}
		}
		return out, nil
	case generator.OpEq, generator.OpNeq, generator.OpGt, generator.OpLt:
		return evalComparison(tbl, row, pred)
	default:
		return Unknown, errors.Wrapf(util.ErrMalformedInput, "unknown predicate op %s", pred.Op)
	}
}

func evalComparison(tbl schema.Table, row schema.Row, pred generator.Predicate) (Truth, error) {
	_, idx, ok := tbl.ColumnByName(pred.Column)
	if !ok {
		return Unknown, errors.Wrapf(util.ErrMalformedInput, "column %s not in %s", pred.Column, tbl.Name)
	}
	if idx >= len(row) {
		return Unknown, errors.Wrapf(util.ErrMalformedInput, "row has %d values, column %s is #%d", len(row), pred.Column, idx)
	}
	v := row[idx]
	if v.Null || pred.Value.Null {
		return Unknown, nil
	}
	c, err := schema.Compare(v, pred.Value)
	if err != nil {
		return Unknown, err
	}
	switch pred.Op {
	case generator.OpEq:
		return truthOf(c == 0), nil
	case generator.OpNeq:
		return truthOf(c != 0), nil
	case generator.OpGt:
		return truthOf(c > 0), nil
	default:
		return truthOf(c < 0), nil
	}
}

// Satisfying returns the indexes of the rows of tbl for which pred is True,
// the rows a WHERE clause would keep.
func Satisfying(tbl schema.Table, pred generator.Predicate) ([]int, error) {
	var out []int
	for i, row := range tbl.Rows {
		t, err := Eval(tbl, row, pred)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		if t == True {
			out = append(out, i)
		}
	}
	return out, nil
}

package oracle

import (
	"fmt"

	"simgen/internal/generator"
)

// SimpleColumn checks the column-level guarantee of simple predicates:
// a true predicate is satisfied by at least one row, a false one by none.
type SimpleColumn struct{}

// Name returns the oracle identifier.
func (o SimpleColumn) Name() string { return "SimpleColumn" }

// Run generates one simple predicate with a random outcome and counts the
// rows that satisfy it.
func (o SimpleColumn) Run(gen *generator.Generator, in Input) Result {
	tbl := in.Table
	outcome := gen.Rand.Intn(2) == 0
	sp, err := gen.GenerateSimplePredicate(tbl, outcome)
	if err != nil {
		return Result{OK: false, Oracle: o.Name(), Err: err, RowIndex: -1}
	}
	pred := sp.Predicate
	querySQL := fmt.Sprintf("SELECT * FROM %s WHERE %s", tbl.Name, pred.SQLString())
	if sp.ColumnIndex < 0 || sp.ColumnIndex >= len(tbl.Columns) || (pred.IsLeaf() && tbl.Columns[sp.ColumnIndex].Name != pred.Column) {
		return Result{
			OK:        false,
			Oracle:    o.Name(),
			SQL:       []string{querySQL},
			Expected:  "column_index_in_range",
			Actual:    fmt.Sprintf("column_index=%d", sp.ColumnIndex),
			RowIndex:  -1,
			Predicate: &pred,
		}
	}
	hits, err := Satisfying(tbl, pred)
	if err != nil {
		return Result{OK: false, Oracle: o.Name(), SQL: []string{querySQL}, Err: err, RowIndex: -1, Predicate: &pred}
	}
	nonNull := 0
	for _, v := range tbl.ColumnValues(sp.ColumnIndex) {
		if !v.Null {
			nonNull++
		}
	}
	broken := false
	expected := "no_rows"
	if outcome {
		// Vacuous when the column holds no values.
		expected = "some_rows"
		broken = nonNull > 0 && len(hits) == 0
	} else {
		broken = len(hits) > 0
	}
	if broken {
		return Result{
			OK:        false,
			Oracle:    o.Name(),
			SQL:       []string{querySQL},
			Expected:  expected,
			Actual:    fmt.Sprintf("rows=%d", len(hits)),
			RowIndex:  firstOr(hits, -1),
			Predicate: &pred,
			Details:   map[string]any{"outcome": outcome, "column": pred.Column},
		}
	}
	return Result{OK: true, Oracle: o.Name(), SQL: []string{querySQL}, RowIndex: -1, Predicate: &pred}
}

// CompoundFalse checks that a compound predicate generated for a false
// outcome is satisfied by no row.
type CompoundFalse struct{}

// Name returns the oracle identifier.
func (o CompoundFalse) Name() string { return "CompoundFalse" }

// Run generates a false compound predicate and evaluates it on every row.
func (o CompoundFalse) Run(gen *generator.Generator, in Input) Result {
	tbl := in.Table
	pred, err := gen.GenerateCompoundPredicate(tbl, false)
	if err != nil {
		return Result{OK: false, Oracle: o.Name(), Err: err, RowIndex: -1}
	}
	querySQL := fmt.Sprintf("SELECT * FROM %s WHERE %s", tbl.Name, pred.SQLString())
	hits, err := Satisfying(tbl, pred)
	if err != nil {
		return Result{OK: false, Oracle: o.Name(), SQL: []string{querySQL}, Err: err, RowIndex: -1, Predicate: &pred}
	}
	if len(hits) > 0 {
		return Result{
			OK:        false,
			Oracle:    o.Name(),
			SQL:       []string{querySQL},
			Expected:  "no_rows",
			Actual:    fmt.Sprintf("rows=%d", len(hits)),
			RowIndex:  hits[0],
			Predicate: &pred,
			Details:   map[string]any{"row": tbl.Rows[hits[0]].String()},
		}
	}
	return Result{OK: true, Oracle: o.Name(), SQL: []string{querySQL}, RowIndex: -1, Predicate: &pred}
}

func firstOr(values []int, fallback int) int {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}

package oracle

import (
	"fmt"

	"simgen/internal/generator"
	"simgen/internal/util"
)

// RowTruth synthesizes a predicate for a pivot row with a random target
// outcome and checks the row evaluates to exactly that outcome.
type RowTruth struct{}

// Name returns the oracle identifier.
func (o RowTruth) Name() string { return "RowTruth" }

// Run picks a pivot row, synthesizes a true or false predicate for it and
// evaluates the predicate on the row.
func (o RowTruth) Run(gen *generator.Generator, in Input) Result {
	tbl := in.Table
	if len(tbl.Rows) == 0 {
		return skipResult(o.Name(), "row_truth:no_rows", nil)
	}
	rowIdx, err := util.PickIndex(gen.Rand, len(tbl.Rows))
	if err != nil {
		return skipResult(o.Name(), "row_truth:no_rows", err)
	}
	row := tbl.Rows[rowIdx]
	outcome := gen.Rand.Intn(2) == 0
	var pred generator.Predicate
	if outcome {
		pred, err = gen.SynthesizeTrue(tbl, row)
	} else {
		pred, err = gen.SynthesizeFalse(tbl, row)
	}
	if err != nil {
		return Result{OK: false, Oracle: o.Name(), Err: err, RowIndex: rowIdx, Details: map[string]any{"error_reason": "row_truth:synthesize"}}
	}
	querySQL := fmt.Sprintf("SELECT * FROM %s WHERE %s", tbl.Name, pred.SQLString())
	got, err := Eval(tbl, row, pred)
	if err != nil {
		return Result{OK: false, Oracle: o.Name(), SQL: []string{querySQL}, Err: err, RowIndex: rowIdx, Predicate: &pred}
	}
	want := truthOf(outcome)
	if got != want {
		return Result{
			OK:        false,
			Oracle:    o.Name(),
			SQL:       []string{querySQL},
			Expected:  want.String(),
			Actual:    got.String(),
			RowIndex:  rowIdx,
			Predicate: &pred,
			Details: map[string]any{
				"row":   row.String(),
				"depth": pred.Depth(),
			},
		}
	}
	return Result{OK: true, Oracle: o.Name(), SQL: []string{querySQL}, RowIndex: rowIdx, Predicate: &pred}
}

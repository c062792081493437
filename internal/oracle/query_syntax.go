package oracle

import (
	"fmt"

	"simgen/internal/config"
	"simgen/internal/generator"
	"simgen/internal/util"
	"simgen/internal/validator"
)

// QuerySyntax draws a statement in budget mode and checks that its SQL
// parses and that its shape stays within the generator's bounds.
type QuerySyntax struct {
	Validator *validator.Validator
}

// Name returns the oracle identifier.
func (o QuerySyntax) Name() string { return "QuerySyntax" }

// Run generates one query from the remaining budget and validates it.
func (o QuerySyntax) Run(gen *generator.Generator, in Input) Result {
	query, err := gen.GenerateQueryBudget(in.Table, in.Remaining)
	if err != nil {
		if util.IsEmptyChoiceSet(err) {
			// Every budget weight is zero.
			return skipResult(o.Name(), "query_syntax:zero_budget", nil)
		}
		return Result{OK: false, Oracle: o.Name(), Err: err, RowIndex: -1}
	}
	querySQL := query.SQLString()
	res := Result{OK: true, Oracle: o.Name(), SQL: []string{querySQL}, RowIndex: -1, Details: map[string]any{"kind": query.Kind().String()}}
	if o.Validator != nil {
		kind, err := o.Validator.StatementKind(querySQL)
		if err != nil {
			res.OK = false
			res.Err = err
			res.Details["error_reason"] = "query_syntax:parse"
			return res
		}
		if kind != query.Kind().String() {
			res.OK = false
			res.Expected = query.Kind().String()
			res.Actual = kind
			res.Details["error_reason"] = "query_syntax:kind"
			return res
		}
	}
	if reason := o.checkShape(query); reason != "" {
		res.OK = false
		res.Expected = "well_formed"
		res.Actual = reason
	}
	return res
}

func (o QuerySyntax) checkShape(query generator.Query) string {
	switch q := query.(type) {
	case *generator.Delete:
		return "delete_in_budget_mode"
	case *generator.Insert:
		if len(q.Rows) < 1 || len(q.Rows) >= config.InsertRowsLimit {
			return fmt.Sprintf("insert_rows=%d", len(q.Rows))
		}
		for _, row := range q.Rows {
			if len(row) != len(q.Columns) {
				return fmt.Sprintf("insert_row_width=%d", len(row))
			}
		}
	case *generator.Create:
		if err := q.Table.Validate(); err != nil {
			return "create_without_columns"
		}
	}
	return ""
}

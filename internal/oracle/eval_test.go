package oracle

import (
	"testing"

	"simgen/internal/generator"
	"simgen/internal/schema"
)

func evalTable() schema.Table {
	return schema.Table{
		Name: "t0",
		Columns: []schema.Column{
			{Name: "c0", Type: schema.TypeInt},
			{Name: "c1", Type: schema.TypeVarchar},
		},
		Rows: []schema.Row{
			{schema.IntValue(1), schema.TextValue("a")},
			{schema.IntValue(5), schema.NullValue(schema.TypeVarchar)},
			{schema.NullValue(schema.TypeInt), schema.TextValue("b")},
		},
	}
}

func TestEvalComparisons(t *testing.T) {
	tbl := evalTable()
	row := tbl.Rows[0]
	cases := []struct {
		pred generator.Predicate
		want Truth
	}{
		{generator.Eq("c0", schema.IntValue(1)), True},
		{generator.Neq("c0", schema.IntValue(1)), False},
		{generator.Gt("c0", schema.IntValue(0)), True},
		{generator.Lt("c0", schema.IntValue(0)), False},
		{generator.Gt("c1", schema.TextValue("")), True},
		{generator.Eq("c0", schema.NullValue(schema.TypeInt)), Unknown},
		{generator.True(), True},
		{generator.False(), False},
		{generator.And(), True},
		{generator.Or(), False},
	}
	for _, tc := range cases {
		got, err := Eval(tbl, row, tc.pred)
		if err != nil {
			t.Fatalf("eval %s: %v", tc.pred, err)
		}
		if got != tc.want {
			t.Fatalf("eval %s: got %s want %s", tc.pred, got, tc.want)
		}
	}
}

func TestEvalNullLogic(t *testing.T) {
	tbl := evalTable()
	row := tbl.Rows[2]
	unknown := generator.Eq("c0", schema.IntValue(1))
	cases := []struct {
		pred generator.Predicate
		want Truth
	}{
		{unknown, Unknown},
		{generator.And(unknown, generator.False()), False},
		{generator.And(unknown, generator.True()), Unknown},
		{generator.Or(unknown, generator.True()), True},
		{generator.Or(unknown, generator.False()), Unknown},
	}
	for _, tc := range cases {
		got, err := Eval(tbl, row, tc.pred)
		if err != nil {
			t.Fatalf("eval %s: %v", tc.pred, err)
		}
		if got != tc.want {
			t.Fatalf("eval %s: got %s want %s", tc.pred, got, tc.want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	tbl := evalTable()
	if _, err := Eval(tbl, tbl.Rows[0], generator.Eq("missing", schema.IntValue(1))); err == nil {
		t.Fatalf("expected unknown column error")
	}
	if _, err := Eval(tbl, tbl.Rows[0], generator.Eq("c0", schema.TextValue("x"))); err == nil {
		t.Fatalf("expected cross-type comparison error")
	}
}

func TestSatisfying(t *testing.T) {
	tbl := evalTable()
	hits, err := Satisfying(tbl, generator.Gt("c0", schema.IntValue(0)))
	if err != nil {
		t.Fatalf("satisfying: %v", err)
	}
	if len(hits) != 2 || hits[0] != 0 || hits[1] != 1 {
		t.Fatalf("unexpected hits: %v", hits)
	}
	hits, err = Satisfying(tbl, generator.Neq("c1", schema.TextValue("a")))
	if err != nil {
		t.Fatalf("satisfying: %v", err)
	}
	if len(hits) != 1 || hits[0] != 2 {
		t.Fatalf("NULL must not satisfy a comparison: %v", hits)
	}
}

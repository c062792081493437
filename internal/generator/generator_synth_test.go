package generator

import (
	"testing"

	"simgen/internal/config"
	"simgen/internal/schema"
)

// constTruth evaluates predicates built only from True, And and Or.
func constTruth(t *testing.T, p Predicate) bool {
	t.Helper()
	switch p.Op {
	case OpTrue:
		return true
	case OpAnd:
		for _, c := range p.Children {
			if !constTruth(t, c) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range p.Children {
			if constTruth(t, c) {
				return true
			}
		}
		return false
	default:
		t.Fatalf("unexpected op %s", p.Op)
		return false
	}
}

func label(truth bool) labeledPredicate {
	if truth {
		return labeledPredicate{truth: true, pred: True()}
	}
	return labeledPredicate{truth: false, pred: False()}
}

func TestFoldWindowKeepsOutcome(t *testing.T) {
	windows := [][]labeledPredicate{
		nil,
		{label(true)},
		{label(false)},
		{label(true), label(false)},
		{label(false), label(false), label(false)},
		{label(true), label(true)},
	}
	for _, outcome := range []bool{true, false} {
		acc := True()
		if !outcome {
			acc = False()
		}
		for rule := foldRule(0); rule < foldRuleCount; rule++ {
			for i, window := range windows {
				got := foldWindow(acc, window, rule, outcome)
				if constTruth(t, got) != outcome {
					t.Fatalf("outcome %v rule %d window %d: %s", outcome, rule, i, got)
				}
			}
		}
	}
}

func TestFoldWindowNeutral(t *testing.T) {
	got := foldWindow(True(), []labeledPredicate{label(false)}, foldKeep, true)
	if got.Op != OpAnd || len(got.Children) != 2 {
		t.Fatalf("unexpected shape %s", got)
	}
	inner := got.Children[1]
	if inner.Op != OpOr || len(inner.Children) != 2 || inner.Children[1].Op != OpTrue {
		t.Fatalf("expected neutral TRUE appended, got %s", inner)
	}
}

func TestGenerateTable(t *testing.T) {
	cfg := config.Default()
	cfg.MaxColumns = 4
	gen := New(cfg, 13)
	names := make(map[string]bool)
	for i := 0; i < 200; i++ {
		tbl := gen.GenerateTable()
		if len(tbl.Columns) < ColumnCountMin || len(tbl.Columns) > 4 {
			t.Fatalf("column count %d", len(tbl.Columns))
		}
		if names[tbl.Name] {
			t.Fatalf("duplicate table name %s", tbl.Name)
		}
		names[tbl.Name] = true
		if err := tbl.Validate(); err != nil {
			t.Fatalf("invalid table: %v", err)
		}
	}
}

func TestGenerateRowsNullProb(t *testing.T) {
	for _, tc := range []struct {
		prob     int
		wantNull bool
	}{{0, false}, {100, true}} {
		cfg := config.Default()
		cfg.NullProb = tc.prob
		gen := New(cfg, 3)
		tbl := gen.GenerateTable()
		rows := gen.GenerateRows(tbl, 20)
		if len(rows) != 20 {
			t.Fatalf("expected 20 rows, got %d", len(rows))
		}
		for _, row := range rows {
			if err := tbl.ValidateRow(row); err != nil {
				t.Fatalf("invalid row: %v", err)
			}
			for _, v := range row {
				if v.Null != tc.wantNull {
					t.Fatalf("null prob %d produced %s", tc.prob, v)
				}
			}
		}
	}
}

func TestRowPredicateNullRow(t *testing.T) {
	gen := newTestGenerator(1)
	tbl := schema.Table{Name: "t0", Columns: []schema.Column{{Name: "c0", Type: schema.TypeDouble}}}
	row := schema.Row{schema.NullValue(schema.TypeDouble)}
	p, err := gen.RowPredicate(tbl, row, true)
	if err != nil || p.Op != OpTrue {
		t.Fatalf("expected TRUE, got %s %v", p, err)
	}
	p, err = gen.RowPredicate(tbl, row, false)
	if err != nil || p.Op != OpOr || len(p.Children) != 0 {
		t.Fatalf("expected FALSE, got %s %v", p, err)
	}
}

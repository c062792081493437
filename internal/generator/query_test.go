package generator

import (
	"math"
	"testing"

	"simgen/internal/config"
	"simgen/internal/schema"
	"simgen/internal/util"
	"simgen/internal/validator"
)

func queryTable() schema.Table {
	return schema.Table{
		Name: "t0",
		Columns: []schema.Column{
			{Name: "c0", Type: schema.TypeInt},
			{Name: "c1", Type: schema.TypeVarchar},
			{Name: "c2", Type: schema.TypeDate},
		},
		Rows: []schema.Row{
			{schema.IntValue(1), schema.TextValue("a"), schema.DateValue(schema.DateDays(2000, 1, 1))},
			{schema.IntValue(2), schema.TextValue("b"), schema.NullValue(schema.TypeDate)},
		},
	}
}

func TestQueryFrequencies(t *testing.T) {
	gen := newTestGenerator(17)
	tbl := queryTable()
	selects, inserts, creates := 0, 0, 0
	for i := 0; i < 40000; i++ {
		q, err := gen.GenerateQuery(tbl)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		switch q.Kind() {
		case QuerySelect:
			selects++
		case QueryInsert:
			inserts++
		case QueryCreate:
			creates++
		default:
			t.Fatalf("unexpected kind %s with delete weight 0", q.Kind())
		}
	}
	ratio := float64(selects) / float64(inserts)
	if math.Abs(ratio-1) > 0.05 {
		t.Fatalf("select/insert ratio %.3f out of range (%d/%d)", ratio, selects, inserts)
	}
	if creates == 0 || creates > 400 {
		t.Fatalf("unexpected create count %d", creates)
	}
}

func TestQueryBudgetNeverDeletes(t *testing.T) {
	cfg := config.Default()
	cfg.Weights.Queries.Delete = 1000
	gen := New(cfg, 9)
	tbl := queryTable()
	rem := Remaining{Create: 0, Read: 1, Write: 1}
	for i := 0; i < 2000; i++ {
		q, err := gen.GenerateQueryBudget(tbl, rem)
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if q.Kind() == QueryDelete || q.Kind() == QueryCreate {
			t.Fatalf("unexpected kind %s", q.Kind())
		}
	}
	if _, err := gen.GenerateQueryBudget(tbl, Remaining{}); !util.IsEmptyChoiceSet(err) {
		t.Fatalf("expected empty choice set, got %v", err)
	}
}

func TestQueryZeroWeights(t *testing.T) {
	cfg := config.Default()
	cfg.Weights.Queries = config.QueryWeights{}
	gen := New(cfg, 1)
	if _, err := gen.GenerateQuery(queryTable()); !util.IsEmptyChoiceSet(err) {
		t.Fatalf("expected empty choice set, got %v", err)
	}
	if _, err := gen.GenerateQuery(schema.Table{Name: "t"}); !util.IsMalformedInput(err) {
		t.Fatalf("expected malformed input, got %v", err)
	}
}

func TestDeleteWhenWeighted(t *testing.T) {
	cfg := config.Default()
	cfg.Weights.Queries = config.QueryWeights{Delete: 1}
	gen := New(cfg, 2)
	q, err := gen.GenerateQuery(queryTable())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	del, ok := q.(*Delete)
	if !ok || del.Table != "t0" {
		t.Fatalf("expected delete on t0, got %#v", q)
	}
}

func TestInsertRowCounts(t *testing.T) {
	gen := newTestGenerator(4)
	tbl := queryTable()
	seen := make(map[int]bool)
	for i := 0; i < 3000; i++ {
		ins, err := gen.GenerateInsert(tbl)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		n := len(ins.Rows)
		if n < 1 || n >= 10 {
			t.Fatalf("row count %d outside [1, 10)", n)
		}
		seen[n] = true
		for _, row := range ins.Rows {
			if len(row) != len(tbl.Columns) {
				t.Fatalf("row width %d", len(row))
			}
		}
	}
	if len(seen) != 9 {
		t.Fatalf("expected every count in [1, 9], saw %v", seen)
	}
}

func TestCreateCopiesSchema(t *testing.T) {
	gen := newTestGenerator(6)
	c := gen.GenerateCreate()
	if err := c.Table.Validate(); err != nil {
		t.Fatalf("generated table invalid: %v", err)
	}
	if len(c.Table.Rows) != 0 {
		t.Fatalf("created table should be empty")
	}
	if c.TableName() != c.Table.Name {
		t.Fatalf("table name mismatch")
	}
}

func TestGenerateSelectPicksTable(t *testing.T) {
	gen := newTestGenerator(12)
	a := queryTable()
	b := queryTable()
	b.Name = "t1"
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		sel, err := gen.GenerateSelect([]schema.Table{a, b})
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		seen[sel.Table] = true
	}
	if !seen["t0"] || !seen["t1"] {
		t.Fatalf("expected both tables, saw %v", seen)
	}
	if _, err := gen.GenerateSelect(nil); !util.IsEmptyChoiceSet(err) {
		t.Fatalf("expected empty choice set, got %v", err)
	}
}

func TestGeneratedSQLParses(t *testing.T) {
	v := validator.New()
	for seed := int64(1); seed <= 300; seed++ {
		gen := newTestGenerator(seed)
		tbl := gen.GenerateTable()
		tbl.Rows = gen.GenerateRows(tbl, gen.Rand.Intn(5))
		if err := v.Validate(CreateTableSQL(tbl)); err != nil {
			t.Fatalf("seed %d: create: %v", seed, err)
		}
		for i := 0; i < 5; i++ {
			q, err := gen.GenerateQueryBudget(tbl, Remaining{Create: 1, Read: 1, Write: 1})
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if err := v.Validate(q.SQLString()); err != nil {
				t.Fatalf("seed %d: %s: %v", seed, q.SQLString(), err)
			}
		}
		del, err := gen.GenerateDelete(tbl)
		if err == nil {
			if err := v.Validate(del.SQLString()); err != nil {
				t.Fatalf("seed %d: %s: %v", seed, del.SQLString(), err)
			}
		}
	}
}

func TestInsertRowsCappedAboveConfig(t *testing.T) {
	cfg := config.Default()
	cfg.InsertRowsMax = 40
	gen := New(cfg, 8)
	for i := 0; i < 500; i++ {
		ins, err := gen.GenerateInsert(queryTable())
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if n := len(ins.Rows); n < 1 || n >= config.InsertRowsLimit {
			t.Fatalf("insert row count %d outside [1, %d)", n, config.InsertRowsLimit)
		}
	}
}

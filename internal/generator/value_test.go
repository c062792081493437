package generator

import (
	"math"
	"testing"

	"simgen/internal/config"
	"simgen/internal/schema"
	"simgen/internal/util"
)

func newTestGenerator(seed int64) *Generator {
	return New(config.Default(), seed)
}

func mustCompare(t *testing.T, a, b schema.Value) int {
	t.Helper()
	c, err := schema.Compare(a, b)
	if err != nil {
		t.Fatalf("compare %s %s: %v", a, b, err)
	}
	return c
}

func TestGreaterLessStrict(t *testing.T) {
	gen := newTestGenerator(11)
	for i := 0; i < 2000; i++ {
		typ := schema.AllColumnTypes[i%len(schema.AllColumnTypes)]
		v := gen.ArbitraryValue(typ)
		if CanGreater(v) {
			up, err := gen.GreaterThan(v)
			if err != nil {
				t.Fatalf("greater than %s: %v", v, err)
			}
			if up.Type != v.Type || mustCompare(t, up, v) <= 0 {
				t.Fatalf("%s is not greater than %s", up, v)
			}
		}
		if CanLess(v) {
			down, err := gen.LessThan(v)
			if err != nil {
				t.Fatalf("less than %s: %v", v, err)
			}
			if down.Type != v.Type || mustCompare(t, down, v) >= 0 {
				t.Fatalf("%s is not less than %s", down, v)
			}
		}
	}
}

func TestBoundsExhausted(t *testing.T) {
	gen := newTestGenerator(3)
	greater := []schema.Value{
		schema.IntValue(math.MaxInt32),
		schema.BigIntValue(math.MaxInt64),
		schema.BoolValue(true),
		schema.DateValue(schema.MaxDate),
		schema.DoubleValue(math.MaxFloat64),
		schema.NullValue(schema.TypeInt),
	}
	for _, v := range greater {
		if CanGreater(v) {
			t.Fatalf("CanGreater(%s) should be false", v)
		}
		if _, err := gen.GreaterThan(v); !util.IsDomainExhausted(err) {
			t.Fatalf("greater than %s: expected domain exhausted, got %v", v, err)
		}
	}
	less := []schema.Value{
		schema.IntValue(math.MinInt32),
		schema.BigIntValue(math.MinInt64),
		schema.BoolValue(false),
		schema.DateValue(schema.MinDate),
		schema.DoubleValue(-math.MaxFloat64),
		schema.TextValue(""),
		schema.BlobValue(nil),
	}
	for _, v := range less {
		if CanLess(v) {
			t.Fatalf("CanLess(%s) should be false", v)
		}
		if _, err := gen.LessThan(v); !util.IsDomainExhausted(err) {
			t.Fatalf("less than %s: expected domain exhausted, got %v", v, err)
		}
	}
}

func TestNearBoundsStayInDomain(t *testing.T) {
	gen := newTestGenerator(5)
	for i := 0; i < 200; i++ {
		up, err := gen.GreaterThan(schema.IntValue(math.MaxInt32 - 1))
		if err != nil || up.Int != math.MaxInt32 {
			t.Fatalf("expected int max, got %v %v", up, err)
		}
		down, err := gen.LessThan(schema.DateValue(schema.MinDate + 1))
		if err != nil || down.Int != schema.MinDate {
			t.Fatalf("expected min date, got %v %v", down, err)
		}
		big, err := gen.GreaterThan(schema.DoubleValue(1e300))
		if err != nil || math.IsInf(big.Float, 0) || big.Float <= 1e300 {
			t.Fatalf("unexpected double %v %v", big, err)
		}
	}
}

func TestGreaterLessAll(t *testing.T) {
	gen := newTestGenerator(8)
	values := []schema.Value{
		schema.IntValue(4),
		schema.NullValue(schema.TypeInt),
		schema.IntValue(-2),
		schema.IntValue(9),
	}
	for i := 0; i < 500; i++ {
		up, err := gen.GreaterThanAll(schema.TypeInt, values)
		if err != nil {
			t.Fatalf("greater than all: %v", err)
		}
		if up.Int <= 9 {
			t.Fatalf("%d is not above 9", up.Int)
		}
		down, err := gen.LessThanAll(schema.TypeInt, values)
		if err != nil {
			t.Fatalf("less than all: %v", err)
		}
		if down.Int >= -2 {
			t.Fatalf("%d is not below -2", down.Int)
		}
	}
	empty, err := gen.GreaterThanAll(schema.TypeVarchar, []schema.Value{schema.NullValue(schema.TypeVarchar)})
	if err != nil || empty.Null || empty.Type != schema.TypeVarchar {
		t.Fatalf("expected arbitrary varchar, got %v %v", empty, err)
	}
}

func TestDifferentValue(t *testing.T) {
	gen := newTestGenerator(21)
	for i := 0; i < 1000; i++ {
		typ := schema.AllColumnTypes[i%len(schema.AllColumnTypes)]
		v := gen.ArbitraryValue(typ)
		w, err := gen.DifferentValue(v)
		if err != nil {
			t.Fatalf("different from %s: %v", v, err)
		}
		if w.Null || w.Equal(v) {
			t.Fatalf("%s is not different from %s", w, v)
		}
	}
}

func TestArbitraryValueFrom(t *testing.T) {
	gen := newTestGenerator(1)
	values := []schema.Value{schema.NullValue(schema.TypeInt), schema.IntValue(7)}
	for i := 0; i < 100; i++ {
		if v := gen.ArbitraryValueFrom(schema.TypeInt, values); v.Null || v.Int != 7 {
			t.Fatalf("expected the only observed value, got %s", v)
		}
	}
	if v := gen.ArbitraryValueFrom(schema.TypeDate, nil); v.Null || v.Type != schema.TypeDate {
		t.Fatalf("expected arbitrary date, got %s", v)
	}
}

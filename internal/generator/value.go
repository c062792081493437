package generator

import (
	"math"

	"simgen/internal/schema"
	"simgen/internal/util"

	"github.com/pkg/errors"
)

// ArbitraryValue returns a random non-NULL value of type t.
func (g *Generator) ArbitraryValue(t schema.ColumnType) schema.Value {
	switch t {
	case schema.TypeInt:
		return schema.IntValue(g.signedLiteral())
	case schema.TypeBigInt:
		return schema.BigIntValue(g.signedLiteral())
	case schema.TypeDouble:
		f := float64(int(g.Rand.Float64()*FloatLiteralScale)) / FloatLiteralDiv
		if g.Rand.Intn(2) == 0 {
			f = -f
		}
		return schema.DoubleValue(f)
	case schema.TypeVarchar:
		return schema.TextValue(g.randomString(g.Rand.Intn(StringLenMax + 1)))
	case schema.TypeBlob:
		return schema.BlobValue(g.randomBytes(g.Rand.Intn(BlobLenMax + 1)))
	case schema.TypeBool:
		return schema.BoolValue(util.Chance(g.Rand, BoolLiteralTrueProb))
	case schema.TypeDate:
		year, month, day := util.RandDate(g.Rand, DateYearMin, DateYearMax)
		return schema.DateValue(schema.DateDays(year, month, day))
	default:
		return schema.IntValue(g.signedLiteral())
	}
}

// ArbitraryValueFrom picks one of the non-NULL observed values, or an
// arbitrary value of type t when none exist.
func (g *Generator) ArbitraryValueFrom(t schema.ColumnType, values []schema.Value) schema.Value {
	observed := nonNull(values)
	if len(observed) == 0 {
		return g.ArbitraryValue(t)
	}
	return observed[g.Rand.Intn(len(observed))]
}

// GreaterThan returns a value strictly greater than v.
func (g *Generator) GreaterThan(v schema.Value) (schema.Value, error) {
	if !CanGreater(v) {
		return schema.Value{}, exhausted("greater", v)
	}
	switch v.Type {
	case schema.TypeInt, schema.TypeBigInt, schema.TypeDate:
		_, hi := intBounds(v.Type)
		step := g.boundStep()
		if v.Int > hi-step {
			step = hi - v.Int
		}
		out := v
		out.Int = v.Int + step
		return out, nil
	case schema.TypeDouble:
		return schema.DoubleValue(g.shiftFloat(v.Float, math.Inf(1))), nil
	case schema.TypeVarchar:
		return schema.TextValue(v.Text + g.randomString(1+g.Rand.Intn(BoundSuffixMax))), nil
	case schema.TypeBlob:
		out := make([]byte, 0, len(v.Bytes)+BoundSuffixMax)
		out = append(out, v.Bytes...)
		out = append(out, g.randomBytes(1+g.Rand.Intn(BoundSuffixMax))...)
		return schema.BlobValue(out), nil
	case schema.TypeBool:
		return schema.BoolValue(true), nil
	default:
		return schema.Value{}, exhausted("greater", v)
	}
}

// LessThan returns a value strictly less than v.
func (g *Generator) LessThan(v schema.Value) (schema.Value, error) {
	if !CanLess(v) {
		return schema.Value{}, exhausted("less", v)
	}
	switch v.Type {
	case schema.TypeInt, schema.TypeBigInt, schema.TypeDate:
		lo, _ := intBounds(v.Type)
		step := g.boundStep()
		if v.Int < lo+step {
			step = v.Int - lo
		}
		out := v
		out.Int = v.Int - step
		return out, nil
	case schema.TypeDouble:
		return schema.DoubleValue(g.shiftFloat(v.Float, math.Inf(-1))), nil
	case schema.TypeVarchar:
		return schema.TextValue(string(g.lesserBytes([]byte(v.Text), stringAlphabet))), nil
	case schema.TypeBlob:
		return schema.BlobValue(g.lesserBytes(v.Bytes, "")), nil
	case schema.TypeBool:
		return schema.BoolValue(false), nil
	default:
		return schema.Value{}, exhausted("less", v)
	}
}

// GreaterThanAll returns a value strictly greater than every non-NULL value.
// With no non-NULL values it returns an arbitrary value of type t.
func (g *Generator) GreaterThanAll(t schema.ColumnType, values []schema.Value) (schema.Value, error) {
	observed := nonNull(values)
	if len(observed) == 0 {
		return g.ArbitraryValue(t), nil
	}
	_, hi, err := minMax(observed)
	if err != nil {
		return schema.Value{}, err
	}
	return g.GreaterThan(hi)
}

// LessThanAll returns a value strictly less than every non-NULL value.
// With no non-NULL values it returns an arbitrary value of type t.
func (g *Generator) LessThanAll(t schema.ColumnType, values []schema.Value) (schema.Value, error) {
	observed := nonNull(values)
	if len(observed) == 0 {
		return g.ArbitraryValue(t), nil
	}
	lo, _, err := minMax(observed)
	if err != nil {
		return schema.Value{}, err
	}
	return g.LessThan(lo)
}

// DifferentValue returns a non-NULL value of v's type that is not equal to v.
func (g *Generator) DifferentValue(v schema.Value) (schema.Value, error) {
	w := g.ArbitraryValue(v.Type)
	if v.Null || !w.Equal(v) {
		return w, nil
	}
	if CanGreater(v) {
		return g.GreaterThan(v)
	}
	return g.LessThan(v)
}

// CanGreater reports whether a value strictly greater than v exists.
func CanGreater(v schema.Value) bool {
	if v.Null {
		return false
	}
	switch v.Type {
	case schema.TypeInt, schema.TypeBigInt, schema.TypeDate:
		_, hi := intBounds(v.Type)
		return v.Int < hi
	case schema.TypeDouble:
		return !math.IsNaN(v.Float) && v.Float < math.MaxFloat64
	case schema.TypeVarchar, schema.TypeBlob:
		return true
	case schema.TypeBool:
		return v.Int == 0
	default:
		return false
	}
}

// CanLess reports whether a value strictly less than v exists.
func CanLess(v schema.Value) bool {
	if v.Null {
		return false
	}
	switch v.Type {
	case schema.TypeInt, schema.TypeBigInt, schema.TypeDate:
		lo, _ := intBounds(v.Type)
		return v.Int > lo
	case schema.TypeDouble:
		return !math.IsNaN(v.Float) && v.Float > -math.MaxFloat64
	case schema.TypeVarchar:
		return v.Text != ""
	case schema.TypeBlob:
		return len(v.Bytes) > 0
	case schema.TypeBool:
		return v.Int != 0
	default:
		return false
	}
}

func exhausted(direction string, v schema.Value) error {
	return errors.Wrapf(util.ErrDomainExhausted, "no %s value than %s %s", direction, v.Type, v.SQLLiteral())
}

func intBounds(t schema.ColumnType) (lo int64, hi int64) {
	switch t {
	case schema.TypeInt:
		return math.MinInt32, math.MaxInt32
	case schema.TypeDate:
		return schema.MinDate, schema.MaxDate
	default:
		return math.MinInt64, math.MaxInt64
	}
}

func (g *Generator) signedLiteral() int64 {
	return g.Rand.Int63n(2*IntLiteralMax+1) - IntLiteralMax
}

func (g *Generator) boundStep() int64 {
	return 1 + g.Rand.Int63n(BoundStepMax)
}

// shiftFloat moves f toward limit by a small random step, falling back to
// the adjacent float when the step is lost to rounding or overflows.
func (g *Generator) shiftFloat(f float64, limit float64) float64 {
	step := float64(1+g.Rand.Intn(BoundStepMax)) / 4
	out := f + step
	if limit < 0 {
		out = f - step
	}
	if out == f || math.IsInf(out, 0) {
		out = math.Nextafter(f, limit)
	}
	return out
}

// lesserBytes returns a value strictly below b: a proper prefix of b,
// sometimes followed by a smaller byte and a random tail.
// alphabet restricts the bytes used; empty means any byte.
func (g *Generator) lesserBytes(b []byte, alphabet string) []byte {
	cut := g.Rand.Intn(len(b))
	out := make([]byte, 0, len(b))
	out = append(out, b[:cut]...)
	if g.Rand.Intn(2) == 0 {
		return out
	}
	var smaller []byte
	if alphabet == "" {
		if b[cut] > 0 {
			smaller = []byte{byte(g.Rand.Intn(int(b[cut])))}
		}
	} else {
		for i := 0; i < len(alphabet); i++ {
			if alphabet[i] < b[cut] {
				smaller = append(smaller, alphabet[i])
			}
		}
		if len(smaller) > 0 {
			smaller = []byte{smaller[g.Rand.Intn(len(smaller))]}
		}
	}
	if len(smaller) == 0 {
		return out
	}
	out = append(out, smaller[0])
	if alphabet == "" {
		return append(out, g.randomBytes(g.Rand.Intn(BoundSuffixMax+1))...)
	}
	return append(out, g.randomString(g.Rand.Intn(BoundSuffixMax+1))...)
}

func (g *Generator) randomString(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = stringAlphabet[g.Rand.Intn(len(stringAlphabet))]
	}
	return string(buf)
}

func (g *Generator) randomBytes(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(g.Rand.Intn(256))
	}
	return buf
}

func nonNull(values []schema.Value) []schema.Value {
	out := make([]schema.Value, 0, len(values))
	for _, v := range values {
		if !v.Null {
			out = append(out, v)
		}
	}
	return out
}

// minMax expects a non-empty list of non-NULL values of one type.
func minMax(values []schema.Value) (lo schema.Value, hi schema.Value, err error) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		c, err := schema.Compare(v, lo)
		if err != nil {
			return schema.Value{}, schema.Value{}, err
		}
		if c < 0 {
			lo = v
		}
		if c, err = schema.Compare(v, hi); err != nil {
			return schema.Value{}, schema.Value{}, err
		}
		if c > 0 {
			hi = v
		}
	}
	return lo, hi, nil
}

func allEqual(values []schema.Value) bool {
	for _, v := range values[1:] {
		if !v.Equal(values[0]) {
			return false
		}
	}
	return true
}

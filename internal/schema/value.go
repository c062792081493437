package schema

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Value is a tagged union over the column types plus NULL.
// Int carries INT, BIGINT, BOOL (0/1) and DATE (days since 1970-01-01).
type Value struct {
	Type  ColumnType
	Null  bool
	Int   int64
	Float float64
	Text  string
	Bytes []byte
}

// Date domain, inclusive.
var (
	MinDate = DateDays(1000, 1, 1)
	MaxDate = DateDays(9999, 12, 31)
)

// DateDays converts a calendar date to days since 1970-01-01.
func DateDays(year, month, day int) int64 {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// NullValue returns a typed NULL.
func NullValue(t ColumnType) Value { return Value{Type: t, Null: true} }

// IntValue returns an INT value.
func IntValue(v int64) Value { return Value{Type: TypeInt, Int: v} }

// BigIntValue returns a BIGINT value.
func BigIntValue(v int64) Value { return Value{Type: TypeBigInt, Int: v} }

// DoubleValue returns a DOUBLE value.
func DoubleValue(v float64) Value { return Value{Type: TypeDouble, Float: v} }

// TextValue returns a VARCHAR value.
func TextValue(v string) Value { return Value{Type: TypeVarchar, Text: v} }

// BlobValue returns a BLOB value.
func BlobValue(v []byte) Value { return Value{Type: TypeBlob, Bytes: v} }

// BoolValue returns a BOOL value.
func BoolValue(v bool) Value {
	if v {
		return Value{Type: TypeBool, Int: 1}
	}
	return Value{Type: TypeBool}
}

// DateValue returns a DATE value from days since 1970-01-01.
func DateValue(days int64) Value { return Value{Type: TypeDate, Int: days} }

// Compare orders two non-NULL values of the same type.
func Compare(a, b Value) (int, error) {
	if a.Null || b.Null {
		return 0, errors.New("compare with NULL")
	}
	if a.Type != b.Type {
		return 0, errors.Errorf("compare %s with %s", a.Type, b.Type)
	}
	switch a.Type {
	case TypeInt, TypeBigInt, TypeBool, TypeDate:
		return cmpOrdered(a.Int, b.Int), nil
	case TypeDouble:
		return cmpOrdered(a.Float, b.Float), nil
	case TypeVarchar:
		return strings.Compare(a.Text, b.Text), nil
	case TypeBlob:
		return bytes.Compare(a.Bytes, b.Bytes), nil
	default:
		return 0, errors.Errorf("compare unknown type %d", a.Type)
	}
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports value identity. Two NULLs of the same type are equal here,
// unlike SQL equality.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type || v.Null != o.Null {
		return false
	}
	if v.Null {
		return true
	}
	c, err := Compare(v, o)
	return err == nil && c == 0
}

// SQLLiteral renders the value as a SQL literal.
func (v Value) SQLLiteral() string {
	if v.Null {
		return "NULL"
	}
	switch v.Type {
	case TypeInt, TypeBigInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeDouble:
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			return "NULL"
		}
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TypeVarchar:
		return "'" + strings.ReplaceAll(v.Text, "'", "''") + "'"
	case TypeBlob:
		return "x'" + hex.EncodeToString(v.Bytes) + "'"
	case TypeBool:
		if v.Int != 0 {
			return "TRUE"
		}
		return "FALSE"
	case TypeDate:
		return "'" + FormatDate(v.Int) + "'"
	default:
		return "NULL"
	}
}

// String renders the value for logs.
func (v Value) String() string {
	return v.SQLLiteral()
}

// FormatDate renders days since 1970-01-01 as YYYY-MM-DD.
func FormatDate(days int64) string {
	return time.Unix(days*86400, 0).UTC().Format("2006-01-02")
}

// ParseDate parses YYYY-MM-DD into days since 1970-01-01.
func ParseDate(s string) (int64, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, err
	}
	return t.Unix() / 86400, nil
}

type valueWire struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value,omitempty"`
	Null  bool   `yaml:"null,omitempty"`
}

// MarshalYAML encodes the value as its type name and a text form.
func (v Value) MarshalYAML() (any, error) {
	w := valueWire{Type: v.Type.String(), Null: v.Null}
	if v.Null {
		return w, nil
	}
	switch v.Type {
	case TypeInt, TypeBigInt, TypeBool:
		w.Value = strconv.FormatInt(v.Int, 10)
	case TypeDouble:
		w.Value = strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TypeVarchar:
		w.Value = v.Text
	case TypeBlob:
		w.Value = hex.EncodeToString(v.Bytes)
	case TypeDate:
		w.Value = FormatDate(v.Int)
	}
	return w, nil
}

// UnmarshalYAML decodes the form written by MarshalYAML.
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var w valueWire
	if err := unmarshal(&w); err != nil {
		return err
	}
	t, err := ParseColumnType(w.Type)
	if err != nil {
		return err
	}
	out := Value{Type: t, Null: w.Null}
	if !w.Null {
		switch t {
		case TypeInt, TypeBigInt, TypeBool:
			out.Int, err = strconv.ParseInt(w.Value, 10, 64)
		case TypeDouble:
			out.Float, err = strconv.ParseFloat(w.Value, 64)
		case TypeVarchar:
			out.Text = w.Value
		case TypeBlob:
			out.Bytes, err = hex.DecodeString(w.Value)
		case TypeDate:
			out.Int, err = ParseDate(w.Value)
		}
		if err != nil {
			return errors.Wrapf(err, "decode %s value %q", w.Type, w.Value)
		}
	}
	*v = out
	return nil
}

// ParseColumnType maps a type name from String back to a ColumnType.
func ParseColumnType(name string) (ColumnType, error) {
	for _, t := range AllColumnTypes {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown column type %q", name)
}

// MarshalYAML encodes the column type by name.
func (t ColumnType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes a column type name.
func (t *ColumnType) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseColumnType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

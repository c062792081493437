// Package schema defines the table model the generators read from.
package schema

import (
	"strings"

	"simgen/internal/util"

	"github.com/pkg/errors"
)

// ColumnType enumerates column data types.
type ColumnType int

// Column type constants for schema generation.
const (
	TypeInt ColumnType = iota
	TypeBigInt
	TypeDouble
	TypeVarchar
	TypeBlob
	TypeBool
	TypeDate
)

// AllColumnTypes lists every supported column type.
var AllColumnTypes = []ColumnType{
	TypeInt,
	TypeBigInt,
	TypeDouble,
	TypeVarchar,
	TypeBlob,
	TypeBool,
	TypeDate,
}

// Column describes a table column.
type Column struct {
	Name string     `yaml:"name"`
	Type ColumnType `yaml:"type"`
}

// Row is an ordered list of values, one per column.
type Row []Value

// String renders the row as a parenthesized literal list.
func (r Row) String() string {
	parts := make([]string, 0, len(r))
	for _, v := range r {
		parts = append(parts, v.SQLLiteral())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Table describes a table and its current rows.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
	Rows    []Row    `yaml:"rows"`
}

// String returns the lower-case type name.
func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBigInt:
		return "bigint"
	case TypeDouble:
		return "double"
	case TypeVarchar:
		return "varchar"
	case TypeBlob:
		return "blob"
	case TypeBool:
		return "bool"
	case TypeDate:
		return "date"
	default:
		return "unknown"
	}
}

// SQLType returns the SQL type string for this column.
func (c Column) SQLType() string {
	switch c.Type {
	case TypeInt:
		return "INT"
	case TypeBigInt:
		return "BIGINT"
	case TypeDouble:
		return "DOUBLE"
	case TypeVarchar:
		return "VARCHAR(255)"
	case TypeBlob:
		return "BLOB"
	case TypeBool:
		return "BOOLEAN"
	case TypeDate:
		return "DATE"
	default:
		return "INT"
	}
}

// Validate rejects tables the generators cannot work with.
func (t Table) Validate() error {
	if len(t.Columns) == 0 {
		return errors.Wrapf(util.ErrMalformedInput, "table %q has no columns", t.Name)
	}
	return nil
}

// ValidateRow checks the table and that row has one value per column.
func (t Table) ValidateRow(row Row) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if len(row) != len(t.Columns) {
		return errors.Wrapf(util.ErrMalformedInput, "row has %d values, table %q has %d columns", len(row), t.Name, len(t.Columns))
	}
	for i, v := range row {
		if !v.Null && v.Type != t.Columns[i].Type {
			return errors.Wrapf(util.ErrMalformedInput, "column %s is %s, row holds %s", t.Columns[i].Name, t.Columns[i].Type, v.Type)
		}
	}
	return nil
}

// ColumnValues returns the values of column idx across all rows.
func (t Table) ColumnValues(idx int) []Value {
	out := make([]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out
}

// ColumnByName returns a column and its index if present.
func (t Table) ColumnByName(name string) (Column, int, bool) {
	for i, col := range t.Columns {
		if col.Name == name {
			return col, i, true
		}
	}
	return Column{}, -1, false
}

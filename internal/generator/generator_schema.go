package generator

import (
	"fmt"
	"strings"

	"simgen/internal/schema"
	"simgen/internal/util"
)

// GenerateTable creates a randomized table definition without rows.
func (g *Generator) GenerateTable() schema.Table {
	maxCols := g.Config.MaxColumns
	if maxCols < ColumnCountMin {
		maxCols = ColumnCountMin
	}
	colCount := util.RandIntRange(g.Rand, ColumnCountMin, maxCols)
	cols := make([]schema.Column, 0, colCount)
	for i := 0; i < colCount; i++ {
		cols = append(cols, schema.Column{
			Name: fmt.Sprintf("c%d", i),
			Type: g.randomColumnType(),
		})
	}
	return schema.Table{Name: g.NextTableName(), Columns: cols}
}

// GenerateRows builds n rows for tbl. Each value is NULL with NullProb percent.
func (g *Generator) GenerateRows(tbl schema.Table, n int) []schema.Row {
	rows := make([]schema.Row, 0, n)
	for i := 0; i < n; i++ {
		row := make(schema.Row, 0, len(tbl.Columns))
		for _, col := range tbl.Columns {
			if util.Chance(g.Rand, g.Config.NullProb) {
				row = append(row, schema.NullValue(col.Type))
				continue
			}
			row = append(row, g.ArbitraryValue(col.Type))
		}
		rows = append(rows, row)
	}
	return rows
}

// CreateTableSQL renders a CREATE TABLE statement for a schema table.
func CreateTableSQL(tbl schema.Table) string {
	parts := make([]string, 0, len(tbl.Columns))
	for _, col := range tbl.Columns {
		parts = append(parts, fmt.Sprintf("%s %s", col.Name, col.SQLType()))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", tbl.Name, strings.Join(parts, ", "))
}

func (g *Generator) randomColumnType() schema.ColumnType {
	return schema.AllColumnTypes[g.Rand.Intn(len(schema.AllColumnTypes))]
}

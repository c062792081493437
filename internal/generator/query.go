package generator

import (
	"fmt"
	"strings"

	"simgen/internal/config"
	"simgen/internal/schema"
	"simgen/internal/util"

	"github.com/pkg/errors"
)

// QueryKind tags the statement variants.
type QueryKind int

// Statement kinds, in the order of the weight tables.
const (
	QueryCreate QueryKind = iota
	QuerySelect
	QueryInsert
	QueryDelete
	queryKindCount
)

// String returns the statement keyword.
func (k QueryKind) String() string {
	switch k {
	case QueryCreate:
		return "CREATE"
	case QuerySelect:
		return "SELECT"
	case QueryInsert:
		return "INSERT"
	case QueryDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("QUERY(%d)", int(k))
	}
}

// Query is a generated statement.
type Query interface {
	Kind() QueryKind
	TableName() string
	SQLString() string
}

// Create wraps a generated table definition.
type Create struct {
	Table schema.Table
}

// Select reads rows matching a predicate.
type Select struct {
	Table     string
	Predicate Predicate
}

// Insert adds rows. Columns lists the target columns in row order.
type Insert struct {
	Table   string
	Columns []string
	Rows    []schema.Row
}

// Delete removes rows matching a predicate.
type Delete struct {
	Table     string
	Predicate Predicate
}

// Remaining carries the driver's budget weights per statement class.
type Remaining struct {
	Create float64 `yaml:"create"`
	Read   float64 `yaml:"read"`
	Write  float64 `yaml:"write"`
}

// Kind implements Query.
func (q *Create) Kind() QueryKind { return QueryCreate }

// TableName implements Query.
func (q *Create) TableName() string { return q.Table.Name }

// SQLString renders a CREATE TABLE statement.
func (q *Create) SQLString() string { return CreateTableSQL(q.Table) }

// Kind implements Query.
func (q *Select) Kind() QueryKind { return QuerySelect }

// TableName implements Query.
func (q *Select) TableName() string { return q.Table }

// SQLString renders a SELECT statement.
func (q *Select) SQLString() string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s", q.Table, q.Predicate.SQLString())
}

// Kind implements Query.
func (q *Insert) Kind() QueryKind { return QueryInsert }

// TableName implements Query.
func (q *Insert) TableName() string { return q.Table }

// SQLString renders an INSERT statement.
func (q *Insert) SQLString() string {
	values := make([]string, 0, len(q.Rows))
	for _, row := range q.Rows {
		values = append(values, row.String())
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", q.Table, strings.Join(q.Columns, ", "), strings.Join(values, ", "))
}

// Kind implements Query.
func (q *Delete) Kind() QueryKind { return QueryDelete }

// TableName implements Query.
func (q *Delete) TableName() string { return q.Table }

// SQLString renders a DELETE statement.
func (q *Delete) SQLString() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", q.Table, q.Predicate.SQLString())
}

// GenerateQuery picks a statement kind by the configured query weights.
func (g *Generator) GenerateQuery(tbl schema.Table) (Query, error) {
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	w := g.Config.Weights.Queries
	kind, err := util.PickWeighted(g.Rand, []int{w.Create, w.Select, w.Insert, w.Delete})
	if err != nil {
		return nil, errors.Wrap(err, "query weights")
	}
	return g.generateQueryKind(QueryKind(kind), tbl)
}

// GenerateQueryBudget picks a statement kind by the driver's remaining
// budget. Delete is never picked in this mode.
func (g *Generator) GenerateQueryBudget(tbl schema.Table, remaining Remaining) (Query, error) {
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	kind, err := util.PickWeightedFloat(g.Rand, []float64{remaining.Create, remaining.Read, remaining.Write, 0})
	if err != nil {
		return nil, errors.Wrap(err, "remaining budget")
	}
	return g.generateQueryKind(QueryKind(kind), tbl)
}

func (g *Generator) generateQueryKind(kind QueryKind, tbl schema.Table) (Query, error) {
	switch kind {
	case QueryCreate:
		return g.GenerateCreate(), nil
	case QuerySelect:
		return g.GenerateSelect([]schema.Table{tbl})
	case QueryInsert:
		return g.GenerateInsert(tbl)
	case QueryDelete:
		return g.GenerateDelete(tbl)
	default:
		return nil, errors.Errorf("unknown query kind %d", int(kind))
	}
}

// GenerateCreate wraps a freshly generated table.
func (g *Generator) GenerateCreate() *Create {
	return &Create{Table: g.GenerateTable()}
}

// GenerateSelect picks one of tables and filters it with a random predicate.
func (g *Generator) GenerateSelect(tables []schema.Table) (*Select, error) {
	tbl, err := util.Pick(g.Rand, tables)
	if err != nil {
		return nil, errors.Wrap(err, "select table")
	}
	pred, err := g.GeneratePredicate(tbl)
	if err != nil {
		return nil, err
	}
	return &Select{Table: tbl.Name, Predicate: pred}, nil
}

// GenerateInsert builds 1 to InsertRowsMax rows of arbitrary values, never
// more than config.InsertRowsLimit-1.
func (g *Generator) GenerateInsert(tbl schema.Table) (*Insert, error) {
	if err := tbl.Validate(); err != nil {
		return nil, err
	}
	cols := make([]string, 0, len(tbl.Columns))
	for _, col := range tbl.Columns {
		cols = append(cols, col.Name)
	}
	rowMax := min(max(g.Config.InsertRowsMax, 1), config.InsertRowsLimit-1)
	rowCount := 1 + g.Rand.Intn(rowMax)
	rows := make([]schema.Row, 0, rowCount)
	for i := 0; i < rowCount; i++ {
		row := make(schema.Row, 0, len(tbl.Columns))
		for _, col := range tbl.Columns {
			row = append(row, g.ArbitraryValue(col.Type))
		}
		rows = append(rows, row)
	}
	return &Insert{Table: tbl.Name, Columns: cols, Rows: rows}, nil
}

// GenerateDelete filters tbl with a random predicate.
func (g *Generator) GenerateDelete(tbl schema.Table) (*Delete, error) {
	pred, err := g.GeneratePredicate(tbl)
	if err != nil {
		return nil, err
	}
	return &Delete{Table: tbl.Name, Predicate: pred}, nil
}

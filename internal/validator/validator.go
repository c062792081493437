// Package validator checks rendered statements with the TiDB parser.
package validator

import (
	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	_ "github.com/pingcap/tidb/pkg/types/parser_driver" // Register TiDB parser driver.
	"github.com/pkg/errors"
)

// Validator parses one statement at a time. It is not safe for concurrent use.
type Validator struct {
	parser *parser.Parser
}

// New returns a Validator instance.
func New() *Validator {
	return &Validator{parser: parser.New()}
}

// Validate parses sql and returns any syntax error.
func (v *Validator) Validate(sql string) error {
	_, err := v.StatementKind(sql)
	return err
}

// StatementKind parses sql as a single statement and returns its keyword:
// CREATE, SELECT, INSERT, DELETE or OTHER.
func (v *Validator) StatementKind(sql string) (string, error) {
	node, err := v.parser.ParseOneStmt(sql, "", "")
	if err != nil {
		return "", errors.Wrapf(err, "parse %q", sql)
	}
	switch node.(type) {
	case *ast.CreateTableStmt:
		return "CREATE", nil
	case *ast.SelectStmt:
		return "SELECT", nil
	case *ast.InsertStmt:
		return "INSERT", nil
	case *ast.DeleteStmt:
		return "DELETE", nil
	default:
		return "OTHER", nil
	}
}

package generator

import "strings"

// SQLBuilder accumulates rendered SQL text.
type SQLBuilder struct {
	sb strings.Builder
}

// Write appends raw SQL text to the builder.
func (b *SQLBuilder) Write(s string) {
	b.sb.WriteString(s)
}

// String returns the assembled SQL statement.
func (b *SQLBuilder) String() string {
	return b.sb.String()
}

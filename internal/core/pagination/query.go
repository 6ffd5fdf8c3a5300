package pagination

import (
	"context"
	"strings"
)

// Direction of an order-by clause
type Direction string

// Directions
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Operator is a comparison the paginator adds to a query
type Operator string

// Operators
const (
	OpEq  Operator = "="
	OpGte Operator = ">="
	OpLte Operator = "<="
)

// Order is one order-by clause
type Order struct {
	Column    string
	Direction Direction
}

// Row is one result keyed by column name
type Row = map[string]any

// Query is the ordered query the paginator decorates
// Where and Limit may return a new value or the receiver; callers always use the result
type Query interface {
	Orders() []Order
	From() string
	Where(column string, op Operator, value any) Query
	Limit(n int) Query
	Get(ctx context.Context) ([]Row, error)
	Clone() Query
}

// Alias returns the name rows are addressed by in a from clause: "queues q" -> "q", "queues" -> "queues"
func Alias(from string) string {
	f := strings.Fields(from)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

// qualify prefixes column with alias unless it already carries one
func qualify(alias, column string) string {
	if alias == "" || strings.Contains(column, ".") {
		return column
	}
	return alias + "." + column
}

// lookup reads column from row, falling back to its unqualified name
func lookup(row Row, column string) (any, bool) {
	if v, ok := row[column]; ok {
		return v, true
	}
	if i := strings.LastIndex(column, "."); i >= 0 {
		v, ok := row[column[i+1:]]
		return v, ok
	}
	return nil, false
}

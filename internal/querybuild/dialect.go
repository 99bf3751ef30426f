package querybuild

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavour a plan is rendered for.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MSSQL    Dialect = "mssql"
	HANA     Dialect = "hana"
)

// ParseDialect maps a configured dialect name to a Dialect. An empty name
// selects Postgres.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "postgres", "postgresql":
		return Postgres, nil
	case "mssql", "sqlserver":
		return MSSQL, nil
	case "hana":
		return HANA, nil
	default:
		return "", fmt.Errorf("unsupported db dialect: %s", name)
	}
}

// Placeholder renders the i-th (1-based) positional bind placeholder.
func (d Dialect) Placeholder(i int) string {
	switch d {
	case MSSQL:
		return "@p" + strconv.Itoa(i)
	case HANA:
		return "?"
	default:
		return "$" + strconv.Itoa(i)
	}
}

// QuoteLabel quotes an output column label. Callers must only pass labels
// that already passed an allow-list predicate.
func (d Dialect) QuoteLabel(label string) string {
	if d == MSSQL {
		return "[" + label + "]"
	}
	return `"` + label + `"`
}

// Limit renders a row limit clause. The query it is appended to must end
// with an ORDER BY for MSSQL.
func (d Dialect) Limit(n int) string {
	if d == MSSQL {
		return fmt.Sprintf("OFFSET 0 ROWS FETCH NEXT %d ROWS ONLY", n)
	}
	return fmt.Sprintf("LIMIT %d", n)
}

package querybuild

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mikeschinkel/go-sqlparams"
)

// Plan is a SQL text plus the ordered bind arguments for one request.
type Plan struct {
	Dialect Dialect
	SQL     string
	Args    []any
	// Columns lists output columns whose names were derived from input,
	// e.g. the year labels of a pivot.
	Columns []string
}

// Fixed wraps a query that takes no parameters.
func Fixed(d Dialect, sql string) Plan {
	return Plan{Dialect: d, SQL: sql}
}

var (
	dollarPlaceholder = regexp.MustCompile(`\$(\d+)`)
	atPlaceholder     = regexp.MustCompile(`@p(\d+)`)
)

// Placeholders returns the positional placeholder indexes in order of
// appearance. HANA placeholders carry no index and are numbered by position.
func (p Plan) Placeholders() []int {
	var re *regexp.Regexp
	switch p.Dialect {
	case MSSQL:
		re = atPlaceholder
	case HANA:
		n := strings.Count(p.SQL, "?")
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	default:
		re = dollarPlaceholder
	}

	matches := re.FindAllStringSubmatch(p.SQL, -1)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// Validate checks that placeholders are numbered 1..n in ascending order,
// each used once, and that n equals the number of bind arguments.
func (p Plan) Validate() error {
	idx := p.Placeholders()
	if len(idx) != len(p.Args) {
		return fmt.Errorf("plan has %d placeholders but %d bind arguments", len(idx), len(p.Args))
	}
	for i, n := range idx {
		if n != i+1 {
			return fmt.Errorf("placeholder %d found at position %d", n, i+1)
		}
	}
	return nil
}

// bind rewrites :name markers in tmpl into the dialect's positional form and
// orders values to match. Markers must be unique and all present in values.
func bind(d Dialect, tmpl string, values map[string]any) Plan {
	parsed, err := sqlparams.ParseSQL(sqlparams.SQLQuery(tmpl), d.Placeholder)
	if err != nil {
		panic(fmt.Sprintf("querybuild: bad template: %v", err))
	}

	params := parsed.Parameters()
	args := make([]any, 0, len(params))
	for _, param := range params {
		v, ok := values[string(param.Name)]
		if !ok {
			panic(fmt.Sprintf("querybuild: no value for :%s", param.Name))
		}
		args = append(args, v)
	}

	return Plan{
		Dialect: d,
		SQL:     string(parsed.SQL),
		Args:    args,
	}
}

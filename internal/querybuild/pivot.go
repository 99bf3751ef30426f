package querybuild

import (
	"fmt"
	"regexp"
	"strings"
)

// yearToken is the allow-list for values interpolated into SQL text.
var yearToken = regexp.MustCompile(`^[0-9]{4}$`)

// IsYear reports whether token is exactly four ASCII digits.
func IsYear(token string) bool {
	return yearToken.MatchString(token)
}

// ValidYears keeps the tokens that are years, in first-seen order, without
// duplicates. Anything else is dropped.
func ValidYears(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !IsYear(token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// YearPivot builds the revenue-by-platform query with one conditional-sum
// column per year and a total column. It returns false when no token is a
// valid year, in which case there is nothing to run.
func YearPivot(d Dialect, tokens []string) (Plan, bool) {
	years := ValidYears(tokens)
	if len(years) == 0 {
		return Plan{}, false
	}

	columns := make([]string, 0, len(years))
	for _, year := range years {
		columns = append(columns, fmt.Sprintf(
			"    SUM(CASE WHEN fs.year = %s THEN fs.revenue_estimate ELSE 0 END) AS %s",
			year, d.QuoteLabel(year),
		))
	}

	var sb strings.Builder
	sb.WriteString("SELECT\n    p.platform_name,\n")
	sb.WriteString(strings.Join(columns, ",\n"))
	sb.WriteString(",\n    SUM(fs.revenue_estimate) AS total_revenue\n")
	sb.WriteString("FROM fact_sales fs\n")
	sb.WriteString("JOIN dim_game gm ON fs.game_id = gm.game_id\n")
	sb.WriteString("JOIN dim_platform p ON gm.platform_id = p.platform_id\n")
	fmt.Fprintf(&sb, "WHERE fs.year IN (%s)\n", strings.Join(years, ", "))
	sb.WriteString("GROUP BY p.platform_name\n")
	sb.WriteString("ORDER BY total_revenue DESC")

	return Plan{
		Dialect: d,
		SQL:     sb.String(),
		Columns: years,
	}, true
}

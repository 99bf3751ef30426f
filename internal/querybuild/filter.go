package querybuild

import (
	"strings"
)

// AllSentinel disables a selector filter.
const AllSentinel = "ALL"

// TopPlaytimeLimit caps the top playtime report.
const TopPlaytimeLimit = 50

type selector struct {
	name   string
	column string
	value  string
}

// TopPlaytime builds the average-playtime ranking filtered by genre and
// platform. Each selector other than ALL adds one bound equality predicate;
// genre is always considered before platform.
func TopPlaytime(d Dialect, genre, platform string) Plan {
	selectors := []selector{
		{name: "genre", column: "g.genre_name", value: genre},
		{name: "platform", column: "p.platform_name", value: platform},
	}

	clauses := make([]string, 0, len(selectors))
	values := make(map[string]any, len(selectors))
	for _, s := range selectors {
		if s.value == AllSentinel {
			continue
		}
		clauses = append(clauses, s.column+" = :"+s.name)
		values[s.name] = s.value
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ") + "\n"
	}

	tmpl := `SELECT
    gm.game_name,
    g.genre_name,
    p.platform_name,
    AVG(fs.avg_playtime) AS average_playtime
FROM fact_sales fs
JOIN dim_game gm ON fs.game_id = gm.game_id
JOIN dim_genre g ON gm.genre_id = g.genre_id
JOIN dim_platform p ON gm.platform_id = p.platform_id
` + where + `GROUP BY gm.game_name, g.genre_name, p.platform_name
HAVING AVG(fs.avg_playtime) IS NOT NULL AND AVG(fs.avg_playtime) > 0
ORDER BY average_playtime DESC
` + d.Limit(TopPlaytimeLimit)

	return bind(d, tmpl, values)
}

// GenreDrillDownLimit caps the per-genre game revenue report.
const GenreDrillDownLimit = 50

// GenreDrillDown builds the per-game revenue query for a single genre. The
// genre travels as a bind argument.
func GenreDrillDown(d Dialect, genre string) Plan {
	tmpl := `SELECT
    gm.game_name,
    SUM(fs.revenue_estimate) AS total_revenue
FROM fact_sales fs
JOIN dim_game gm ON fs.game_id = gm.game_id
JOIN dim_genre g ON gm.genre_id = g.genre_id
WHERE g.genre_name = :genre
GROUP BY gm.game_name
HAVING SUM(fs.revenue_estimate) IS NOT NULL AND SUM(fs.revenue_estimate) > 0
ORDER BY total_revenue DESC
` + d.Limit(GenreDrillDownLimit)

	return bind(d, tmpl, map[string]any{"genre": genre})
}

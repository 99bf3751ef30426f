package sales

import (
	"context"

	"github.com/rs/zerolog"

	"game-reports/internal/querybuild"
	"game-reports/internal/report"
	"game-reports/pkg/req"
)

const (
	GenreRevenueReport = "total-revenue-by-genre"
	GameRevenueReport  = "total-revenue-by-game-per-genre"
	PlatformYearReport = "revenue-by-platform-and-year"
	TopPlaytimeReport  = "top-playtime-games"
	totalRevenueColumn = "total_revenue"
	avgPlaytimeColumn  = "average_playtime"
)

const genreRevenueQuery = `SELECT
    g.genre_name,
    SUM(fs.revenue_estimate) AS total_revenue
FROM fact_sales fs
JOIN dim_game gm ON fs.game_id = gm.game_id
JOIN dim_genre g ON gm.genre_id = g.genre_id
GROUP BY g.genre_name
ORDER BY total_revenue DESC`

type SalesService struct {
	engine report.Engine
}

func NewSalesService(engine report.Engine) *SalesService {
	return &SalesService{engine: engine}
}

// GenreRevenue totals estimated revenue per genre.
func (service *SalesService) GenreRevenue(ctx context.Context) ([]report.Row, error) {
	plan := querybuild.Fixed(service.engine.Dialect(), genreRevenueQuery)
	rows, err := service.engine.Query(ctx, GenreRevenueReport, plan)
	if err != nil {
		return nil, err
	}
	return report.Columns(report.Numeric, totalRevenueColumn).Normalize(rows), nil
}

// GameRevenue ranks the games of one genre by estimated revenue.
func (service *SalesService) GameRevenue(ctx context.Context, query GameRevenueQuery) ([]report.Row, error) {
	if err := req.IsValid(query); err != nil {
		return nil, report.BadRequest(genreRequired)
	}

	plan := querybuild.GenreDrillDown(service.engine.Dialect(), query.Genre)
	rows, err := service.engine.Query(ctx, GameRevenueReport, plan)
	if err != nil {
		return nil, err
	}
	return report.Columns(report.Numeric, totalRevenueColumn).Normalize(rows), nil
}

// PlatformYear pivots platform revenue into one column per requested year.
// When no requested year is valid the result is empty and no query runs.
func (service *SalesService) PlatformYear(ctx context.Context, query PlatformYearQuery) ([]report.Row, error) {
	plan, ok := querybuild.YearPivot(service.engine.Dialect(), query.Years)
	if !ok {
		zerolog.Ctx(ctx).Debug().Strs("years", query.Years).Msg("no valid year requested")
		return []report.Row{}, nil
	}
	if dropped := len(query.Years) - len(plan.Columns); dropped > 0 {
		zerolog.Ctx(ctx).Debug().Int("dropped", dropped).Msg("ignored year parameters")
	}

	rows, err := service.engine.Query(ctx, PlatformYearReport, plan)
	if err != nil {
		return nil, err
	}
	policy := report.Columns(report.Numeric, plan.Columns...).With(report.Numeric, totalRevenueColumn)
	return policy.Normalize(rows), nil
}

// TopPlaytime ranks games by average playtime, optionally narrowed to one
// genre and one platform. ALL disables either filter.
func (service *SalesService) TopPlaytime(ctx context.Context, query TopPlaytimeQuery) ([]report.Row, error) {
	if err := req.IsValid(query); err != nil {
		return nil, report.BadRequest(genreAndPlatformRequired)
	}

	plan := querybuild.TopPlaytime(service.engine.Dialect(), query.Genre, query.Platform)
	rows, err := service.engine.Query(ctx, TopPlaytimeReport, plan)
	if err != nil {
		return nil, err
	}
	return report.Columns(report.Rounded, avgPlaytimeColumn).Normalize(rows), nil
}

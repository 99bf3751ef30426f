package catalog

import (
	"context"

	"game-reports/internal/querybuild"
	"game-reports/internal/report"
)

// Report names, used for logging and query metrics.
const (
	GenresReport           = "available-genres"
	RevenueGenresReport    = "available-genres-for-revenue"
	RevenuePlatformsReport = "available-platforms"
	YearsReport            = "available-years"
)

// CatalogService lists the values the dashboard offers as filters.
type CatalogService struct {
	engine report.Engine
}

func NewCatalogService(engine report.Engine) *CatalogService {
	return &CatalogService{engine: engine}
}

// Genres returns every genre name, alphabetically.
func (service *CatalogService) Genres(ctx context.Context) ([]any, error) {
	return service.list(ctx, GenresReport, genresQuery, "genre_name", nil)
}

// RevenueGenres returns the genres that have at least one sale with a
// positive revenue estimate.
func (service *CatalogService) RevenueGenres(ctx context.Context) ([]any, error) {
	return service.list(ctx, RevenueGenresReport, revenueGenresQuery, "genre_name", nil)
}

// RevenuePlatforms returns the platforms that have at least one sale with a
// positive revenue estimate.
func (service *CatalogService) RevenuePlatforms(ctx context.Context) ([]any, error) {
	return service.list(ctx, RevenuePlatformsReport, revenuePlatformsQuery, "platform_name", nil)
}

// Years returns the distinct sales years, newest first, as strings.
func (service *CatalogService) Years(ctx context.Context) ([]any, error) {
	return service.list(ctx, YearsReport, yearsQuery, "year", report.Columns(report.Text, "year"))
}

func (service *CatalogService) list(ctx context.Context, name, sql, column string, policy report.Policy) ([]any, error) {
	plan := querybuild.Fixed(service.engine.Dialect(), sql)
	rows, err := service.engine.Query(ctx, name, plan)
	if err != nil {
		return nil, err
	}
	return report.Column(policy.Normalize(rows), column), nil
}

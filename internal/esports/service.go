package esports

import (
	"context"

	"game-reports/internal/querybuild"
	"game-reports/internal/report"
)

const (
	EarningsReport  = "player-vs-team-earnings"
	EcosystemReport = "esports-ecosystem"
)

var (
	earningsPolicy = report.Columns(report.Numeric,
		"total_player_earnings",
		"total_team_earnings",
	)
	ecosystemPolicy = report.Columns(report.Decimal,
		"tournament_prizes",
		"player_earnings",
		"team_earnings",
		"total_ecosystem_value",
	)
)

type EsportsService struct {
	engine report.Engine
}

func NewEsportsService(engine report.Engine) *EsportsService {
	return &EsportsService{engine: engine}
}

// Earnings compares accumulated player and team earnings per game.
func (service *EsportsService) Earnings(ctx context.Context) ([]report.Row, error) {
	d := service.engine.Dialect()
	rows, err := service.engine.Query(ctx, EarningsReport, querybuild.Fixed(d, playerVsTeamQuery(d)))
	if err != nil {
		return nil, err
	}
	return earningsPolicy.Normalize(rows), nil
}

// Ecosystem sums tournament prizes with player and team earnings per game.
// Amounts are returned as decimal strings.
func (service *EsportsService) Ecosystem(ctx context.Context) ([]report.Row, error) {
	d := service.engine.Dialect()
	rows, err := service.engine.Query(ctx, EcosystemReport, querybuild.Fixed(d, ecosystemQuery))
	if err != nil {
		return nil, err
	}
	return ecosystemPolicy.Normalize(rows), nil
}

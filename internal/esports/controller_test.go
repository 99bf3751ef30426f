package esports_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-reports/internal/esports"
	"game-reports/internal/querybuild"
	"game-reports/internal/report"
	"game-reports/pkg/db"
)

func setup(t *testing.T, dialect querybuild.Dialect) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	router := chi.NewRouter()
	esports.NewEsportsController(router, esports.EsportsControllerDeps{
		EsportsService: esports.NewEsportsService(report.NewRepository(db.Wrap(conn, dialect))),
	})
	return router, mock
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestEarnings(t *testing.T) {
	router, mock := setup(t, querybuild.Postgres)

	mock.ExpectQuery(`ORDER BY total_player_earnings DESC, total_team_earnings DESC LIMIT 50$`).
		WillReturnRows(sqlmock.NewRows([]string{"game_name", "total_player_earnings", "total_team_earnings"}).
			AddRow("Dota 2", []byte("250000000.50"), []byte("300000000.00")).
			AddRow("Chess", []byte("0"), []byte("1200.00")))

	w := get(router, "/player-vs-team-earnings")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"game_name":"Dota 2","total_player_earnings":250000000.5,"total_team_earnings":300000000},
		{"game_name":"Chess","total_player_earnings":0,"total_team_earnings":1200}
	]`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEarnings_MSSQLLimit(t *testing.T) {
	router, mock := setup(t, querybuild.MSSQL)

	mock.ExpectQuery(`OFFSET 0 ROWS FETCH NEXT 50 ROWS ONLY$`).
		WillReturnRows(sqlmock.NewRows([]string{"game_name", "total_player_earnings", "total_team_earnings"}))

	w := get(router, "/player-vs-team-earnings")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEcosystemAmountsAreDecimalStrings(t *testing.T) {
	router, mock := setup(t, querybuild.Postgres)

	mock.ExpectQuery(`ORDER BY total_ecosystem_value DESC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"game_name", "tournament_prizes", "player_earnings", "team_earnings", "total_ecosystem_value",
		}).AddRow("Dota 2", []byte("100.00"), []byte("20.50"), int64(0), []byte("120.50")))

	w := get(router, "/esports-ecosystem")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{
		"game_name":"Dota 2",
		"tournament_prizes":"100.00",
		"player_earnings":"20.50",
		"team_earnings":"0",
		"total_ecosystem_value":"120.50"
	}]`, w.Body.String())
	assert.True(t, strings.Index(w.Body.String(), "tournament_prizes") < strings.Index(w.Body.String(), "total_ecosystem_value"))
}

func TestEcosystemFailure(t *testing.T) {
	router, mock := setup(t, querybuild.Postgres)
	mock.ExpectQuery(`fact_esports`).WillReturnError(errors.New(`relation "fact_esports" does not exist`))

	w := get(router, "/esports-ecosystem")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"relation \"fact_esports\" does not exist"}`, w.Body.String())
}

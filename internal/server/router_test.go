package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"game-reports/configs"
	"game-reports/internal/querybuild"
	"game-reports/internal/report"
	"game-reports/pkg/db"
	"game-reports/pkg/logger"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, pinger Pinger, rateLimit int) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	handler := NewRouter(RouterDeps{
		Config: &configs.ServerConfig{CorsOrigins: "http://localhost:3000", RateLimit: rateLimit},
		Logger: zerolog.Nop(),
		Engine: report.NewRepository(db.Wrap(conn, querybuild.Postgres)),
		Pinger: pinger,
	})
	return handler, mock
}

func serve(handler http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestRouter_ReportsMounted(t *testing.T) {
	handler, mock := newTestRouter(t, stubPinger{}, 0)
	mock.ExpectQuery(`FROM dim_genre`).
		WillReturnRows(sqlmock.NewRows([]string{"genre_name"}).AddRow("Action"))

	w := serve(handler, httptest.NewRequest(http.MethodGet, ReportsPrefix+"/available-genres", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Action"]`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(logger.RequestIDHeader))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_RequestIDIsEchoed(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{}, 0)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set(logger.RequestIDHeader, "abc-123")

	w := serve(handler, r)

	assert.Equal(t, "abc-123", w.Header().Get(logger.RequestIDHeader))
}

func TestRouter_Health(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{}, 0)

	w := serve(handler, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestRouter_HealthUnavailable(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{err: errors.New("dial tcp: connection refused")}, 0)

	w := serve(handler, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"dial tcp: connection refused"}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	handler, mock := newTestRouter(t, stubPinger{}, 0)
	mock.ExpectQuery(`dim_genre`).WillReturnError(errors.New("boom"))
	serve(handler, httptest.NewRequest(http.MethodGet, ReportsPrefix+"/available-genres", nil))

	w := serve(handler, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `report_query_errors_total{report="available-genres"}`)
	assert.Contains(t, body, `route="/api/reports/available-genres"`)
}

func TestRouter_NotFound(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{}, 0)

	w := serve(handler, httptest.NewRequest(http.MethodGet, ReportsPrefix+"/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{}, 0)

	w := serve(handler, httptest.NewRequest(http.MethodPost, ReportsPrefix+"/available-genres", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{}, 0)
	r := httptest.NewRequest(http.MethodOptions, ReportsPrefix+"/available-genres", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", http.MethodGet)

	w := serve(handler, r)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimit(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{}, 1)
	target := ReportsPrefix + "/revenue-by-platform-and-year?year=bad"

	first := serve(handler, httptest.NewRequest(http.MethodGet, target, nil))
	second := serve(handler, httptest.NewRequest(http.MethodGet, target, nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRecoverer(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "error value", value: errors.New("nil map write"), want: `{"error":"nil map write"}`},
		{name: "non-error value", value: 42, want: `{"error":"An unknown error occurred"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic(tt.value)
			}))

			w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
			assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))
		})
	}
}

func TestMiddlewares_PanickingRequestIsCounted(t *testing.T) {
	router := chi.NewRouter()
	router.Use(middlewares(RouterDeps{
		Config: &configs.ServerConfig{CorsOrigins: "*"},
		Logger: zerolog.Nop(),
	})...)
	router.Get("/panicking-report", func(http.ResponseWriter, *http.Request) {
		panic("unexpected driver state")
	})
	router.Handle("/metrics", promhttp.Handler())

	w := serve(router, httptest.NewRequest(http.MethodGet, "/panicking-report", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An unknown error occurred"}`, w.Body.String())

	scrape := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(),
		`http_requests_total{method="GET",route="/panicking-report",status="500"}`)
}

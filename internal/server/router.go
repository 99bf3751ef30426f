package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"game-reports/configs"
	"game-reports/internal/catalog"
	"game-reports/internal/esports"
	"game-reports/internal/report"
	"game-reports/internal/sales"
	"game-reports/pkg/logger"
	"game-reports/pkg/metrics"
	"game-reports/pkg/res"
)

// ReportsPrefix is where the dashboard report endpoints are mounted.
const ReportsPrefix = "/api/reports"

const healthTimeout = 2 * time.Second

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	Config *configs.ServerConfig
	Logger zerolog.Logger
	Engine report.Engine
	Pinger Pinger
}

// NewRouter wires every controller and the shared middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	router := chi.NewRouter()
	router.Use(middlewares(deps)...)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		res.Error(w, "Not found", http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		res.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	router.Get("/health", health(deps.Pinger))
	router.Handle("/metrics", promhttp.Handler())

	router.Route(ReportsPrefix, func(r chi.Router) {
		if deps.Config.RateLimit > 0 {
			r.Use(httprate.LimitByIP(deps.Config.RateLimit, time.Minute))
		}

		catalog.NewCatalogController(r, catalog.CatalogControllerDeps{
			CatalogService: catalog.NewCatalogService(deps.Engine),
		})
		sales.NewSalesController(r, sales.SalesControllerDeps{
			SalesService: sales.NewSalesService(deps.Engine),
		})
		esports.NewEsportsController(r, esports.EsportsControllerDeps{
			EsportsService: esports.NewEsportsService(deps.Engine),
		})
	})

	return router
}

// middlewares is the shared stack, outermost first. metrics stays outside
// recoverer: a panicking request is counted with the 500 recoverer writes.
func middlewares(deps RouterDeps) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		logger.Middleware(deps.Logger),
		middleware.RealIP,
		metrics.Middleware,
		recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: deps.Config.AllowedOrigins(),
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", logger.RequestIDHeader},
			ExposedHeaders: []string{logger.RequestIDHeader},
			MaxAge:         300,
		}),
	}
}

func health(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			logger.FromRequest(r).Warn().Err(err).Msg("health check failed")
			res.Error(w, report.ErrorMessage(err), http.StatusServiceUnavailable)
			return
		}
		res.Json(w, map[string]string{"status": "healthy"}, http.StatusOK)
	}
}

// recoverer turns a panic escaping a handler into the error envelope.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			err := report.Recovered(v)
			logger.FromRequest(r).Error().Err(err).Msg("handler panicked")
			res.Error(w, report.ErrorMessage(err), http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

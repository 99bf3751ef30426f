package sales

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"game-reports/internal/report"
)

type SalesControllerDeps struct {
	SalesService *SalesService
}

type SalesController struct {
	service *SalesService
}

func NewSalesController(router chi.Router, deps SalesControllerDeps) *SalesController {
	controller := &SalesController{
		service: deps.SalesService,
	}

	router.Get("/total-revenue-by-genre", controller.GenreRevenue())
	router.Get("/total-revenue-by-game-per-genre", controller.GameRevenue())
	router.Get("/revenue-by-platform-and-year", controller.PlatformYear())
	router.Get("/top-playtime-games", controller.TopPlaytime())
	return controller
}

func (controller *SalesController) GenreRevenue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := controller.service.GenreRevenue(context.WithoutCancel(r.Context()))
		report.Respond(w, r, GenreRevenueReport, data, err)
	}
}

func (controller *SalesController) GameRevenue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := gameRevenueQuery(r.URL.Query())
		data, err := controller.service.GameRevenue(context.WithoutCancel(r.Context()), query)
		report.Respond(w, r, GameRevenueReport, data, err)
	}
}

func (controller *SalesController) PlatformYear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := platformYearQuery(r.URL.Query())
		data, err := controller.service.PlatformYear(context.WithoutCancel(r.Context()), query)
		report.Respond(w, r, PlatformYearReport, data, err)
	}
}

func (controller *SalesController) TopPlaytime() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := topPlaytimeQuery(r.URL.Query())
		data, err := controller.service.TopPlaytime(context.WithoutCancel(r.Context()), query)
		report.Respond(w, r, TopPlaytimeReport, data, err)
	}
}

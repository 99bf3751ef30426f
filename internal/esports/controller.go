package esports

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"game-reports/internal/report"
)

type EsportsControllerDeps struct {
	EsportsService *EsportsService
}

type EsportsController struct {
	service *EsportsService
}

func NewEsportsController(router chi.Router, deps EsportsControllerDeps) *EsportsController {
	controller := &EsportsController{
		service: deps.EsportsService,
	}

	router.Get("/player-vs-team-earnings", controller.Earnings())
	router.Get("/esports-ecosystem", controller.Ecosystem())
	return controller
}

func (controller *EsportsController) Earnings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := controller.service.Earnings(context.WithoutCancel(r.Context()))
		report.Respond(w, r, EarningsReport, data, err)
	}
}

func (controller *EsportsController) Ecosystem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := controller.service.Ecosystem(context.WithoutCancel(r.Context()))
		report.Respond(w, r, EcosystemReport, data, err)
	}
}

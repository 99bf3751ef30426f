package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"game-reports/internal/report"
)

type CatalogControllerDeps struct {
	CatalogService *CatalogService
}

type CatalogController struct {
	service *CatalogService
}

func NewCatalogController(router chi.Router, deps CatalogControllerDeps) *CatalogController {
	controller := &CatalogController{
		service: deps.CatalogService,
	}

	router.Get("/available-genres", controller.list(GenresReport, controller.service.Genres))
	router.Get("/available-genres-for-revenue", controller.list(RevenueGenresReport, controller.service.RevenueGenres))
	router.Get("/available-platforms", controller.list(RevenuePlatformsReport, controller.service.RevenuePlatforms))
	router.Get("/available-years", controller.list(YearsReport, controller.service.Years))
	return controller
}

func (controller *CatalogController) list(name string, fetch func(context.Context) ([]any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fetch(context.WithoutCancel(r.Context()))
		report.Respond(w, r, name, data, err)
	}
}

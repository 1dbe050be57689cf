package router

import (
	"fantasy-grid/internal/http/v1/handler"
	"fantasy-grid/internal/service"
	"github.com/go-chi/chi/v5"
	"log/slog"
)

type CatalogRouter struct {
	handler *handler.CatalogHandler
}

func NewCatalogRouter(catalogService *service.CatalogService, log *slog.Logger) *CatalogRouter {
	return &CatalogRouter{
		handler: handler.NewCatalogHandler(catalogService, log),
	}
}

func (cr *CatalogRouter) SetupRoutes(r chi.Router) {

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/drivers", cr.handler.ListDrivers)

		r.Get("/constructors", cr.handler.ListConstructors)
	})

}

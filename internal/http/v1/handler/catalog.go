package handler

import (
	"fantasy-grid/internal/domain/models"
	"fantasy-grid/internal/lib/logger/sl"
	"fantasy-grid/internal/service"
	"log/slog"
	"net/http"
)

type (
	ListDriversResponse struct {
		Drivers []models.Driver `json:"drivers"`
	}

	ListConstructorsResponse struct {
		Constructors []models.Constructor `json:"constructors"`
	}
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	log            *slog.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		log:            log,
	}
}

func (h *CatalogHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	const op = "handler.catalog.ListDrivers"

	log := h.log.With(
		slog.String("op", op),
	)

	drivers, err := h.catalogService.ListDrivers(r.Context())
	if err != nil {
		log.Error("failed to list drivers", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListDriversResponse{Drivers: drivers})
}

func (h *CatalogHandler) ListConstructors(w http.ResponseWriter, r *http.Request) {
	const op = "handler.catalog.ListConstructors"

	log := h.log.With(
		slog.String("op", op),
	)

	constructors, err := h.catalogService.ListConstructors(r.Context())
	if err != nil {
		log.Error("failed to list constructors", sl.Err(err))
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ListConstructorsResponse{Constructors: constructors})
}

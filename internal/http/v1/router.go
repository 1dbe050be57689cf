package v1

import (
	"fantasy-grid/internal/http/v1/router"
	"fantasy-grid/internal/service"
	"github.com/go-chi/chi/v5"
	"log/slog"
)

type Router interface {
	SetupRoutes(r chi.Router)
}

type RouterDependencies struct {
	RosterService  *service.RosterService
	LeagueService  *service.LeagueService
	CatalogService *service.CatalogService
}

func SetupRoutes(r chi.Router, deps *RouterDependencies, log *slog.Logger) {
	routers := []Router{
		router.NewTeamRouter(deps.RosterService, log),
		router.NewLeagueRouter(deps.LeagueService, log),
		router.NewCatalogRouter(deps.CatalogService, log),
	}

	for _, serviceRouter := range routers {
		serviceRouter.SetupRoutes(r)
	}
}

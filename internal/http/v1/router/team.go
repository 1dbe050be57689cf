package router

import (
	"fantasy-grid/internal/http/v1/handler"
	"fantasy-grid/internal/service"
	"github.com/go-chi/chi/v5"
	"log/slog"
)

type TeamRouter struct {
	handler *handler.TeamHandler
}

func NewTeamRouter(rosterService *service.RosterService, log *slog.Logger) *TeamRouter {
	return &TeamRouter{
		handler: handler.NewTeamHandler(rosterService, log),
	}
}

func (tr *TeamRouter) SetupRoutes(r chi.Router) {

	r.Route("/team", func(r chi.Router) {
		r.Post("/create", tr.handler.CreateTeam)

		r.Get("/get", tr.handler.GetTeam)
		r.Get("/my", tr.handler.GetMyTeam)

		r.Post("/slots/add", tr.handler.AddSlot)
		r.Post("/slots/remove", tr.handler.RemoveSlot)
	})

}

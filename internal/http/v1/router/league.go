package router

import (
	"fantasy-grid/internal/http/v1/handler"
	"fantasy-grid/internal/service"
	"github.com/go-chi/chi/v5"
	"log/slog"
)

type LeagueRouter struct {
	handler       *handler.LeagueHandler
	inviteHandler *handler.InviteHandler
}

func NewLeagueRouter(leagueService *service.LeagueService, log *slog.Logger) *LeagueRouter {
	return &LeagueRouter{
		handler:       handler.NewLeagueHandler(leagueService, log),
		inviteHandler: handler.NewInviteHandler(leagueService, log),
	}
}

func (lr *LeagueRouter) SetupRoutes(r chi.Router) {

	r.Route("/league", func(r chi.Router) {
		r.Post("/create", lr.handler.CreateLeague)

		r.Get("/get", lr.handler.GetLeague)
		r.Get("/list", lr.handler.ListLeagues)

		r.Post("/join", lr.handler.JoinLeague)

		r.Route("/invite", func(r chi.Router) {
			r.Post("/create", lr.inviteHandler.CreateInvite)
			r.Get("/preview", lr.inviteHandler.PreviewInvite)
			r.Post("/join", lr.inviteHandler.JoinViaInvite)
		})
	})

}

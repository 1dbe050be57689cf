package app

import (
	"context"
	"fantasy-grid/internal/app/rest"
	"fantasy-grid/internal/config"
	v1 "fantasy-grid/internal/http/v1"
	"fantasy-grid/internal/lib/migrator"
	"fantasy-grid/internal/repo"
	"fantasy-grid/internal/service"
	"fantasy-grid/internal/storage/postgresql"
	"log/slog"
	"time"
)

type App struct {
	log     *slog.Logger
	storage *postgresql.Storage
	restApp *rest.App
}

func MustNew(log *slog.Logger) *App {
	cfg := config.MustLoad()

	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		log.Error("failed to run migrations", "error", err)
		panic(err)
	}

	storage := postgresql.Init(cfg.Postgres)

	teamRepo := repo.NewTeamRepo(storage.GetDB())
	leagueRepo := repo.NewLeagueRepo(storage.GetDB())
	inviteRepo := repo.NewInviteRepo(storage.GetDB())
	catalogRepo := repo.NewCatalogRepo(storage.GetDB())

	rosterService := service.NewRosterService(log, cfg.Roster, teamRepo, catalogRepo)
	leagueService := service.NewLeagueService(log, cfg.Invite, leagueRepo, inviteRepo, teamRepo)
	catalogService := service.NewCatalogService(log, catalogRepo)

	routerDependencies := v1.RouterDependencies{
		RosterService:  rosterService,
		LeagueService:  leagueService,
		CatalogService: catalogService,
	}

	restApp := rest.New(
		log,
		&routerDependencies,
		cfg.Server.Port,
	)

	return &App{
		log:     log,
		storage: storage,
		restApp: restApp,
	}
}

func (a *App) MustRun() {
	const op = "app.MustRun"
	a.log.With(slog.String("op", op)).Info("starting application")

	if err := a.restApp.Run(); err != nil {
		panic(err)
	}
}

func (a *App) GracefulShutdown() {
	const op = "app.GracefulShutdown"
	a.log.With(slog.String("op", op)).Info("shutting down application")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.restApp.Stop(ctx); err != nil {
		a.log.Error("failed to stop HTTP server", "error", err)
	}

	if a.storage != nil {
		a.storage.Close()
		a.log.Info("database connection closed")
	}
}

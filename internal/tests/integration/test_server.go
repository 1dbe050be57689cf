package integration

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"log/slog"
	"net/http/httptest"
	"os"

	"fantasy-grid/internal/config"
	"fantasy-grid/internal/http/v1/router"
	"fantasy-grid/internal/lib/migrator"
	"fantasy-grid/internal/repo"
	"fantasy-grid/internal/service"
)

type TestServer struct {
	DB     *sqlx.DB
	Server *httptest.Server
}

func NewTestServer() (*TestServer, error) {
	cfg := config.MustLoad()

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User,
		cfg.Postgres.Password, cfg.Postgres.DbName, cfg.Postgres.SslMode)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	if err := migrator.RunMigrations(cfg.Postgres, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	teamRepo := repo.NewTeamRepo(db)
	leagueRepo := repo.NewLeagueRepo(db)
	inviteRepo := repo.NewInviteRepo(db)
	catalogRepo := repo.NewCatalogRepo(db)

	rosterService := service.NewRosterService(log, cfg.Roster, teamRepo, catalogRepo)
	leagueService := service.NewLeagueService(log, cfg.Invite, leagueRepo, inviteRepo, teamRepo)
	catalogService := service.NewCatalogService(log, catalogRepo)

	r := chi.NewRouter()
	router.NewTeamRouter(rosterService, log).SetupRoutes(r)
	router.NewLeagueRouter(leagueService, log).SetupRoutes(r)
	router.NewCatalogRouter(catalogService, log).SetupRoutes(r)

	ts := httptest.NewServer(r)

	return &TestServer{
		DB:     db,
		Server: ts,
	}, nil
}

// LoadFixtures resets the mutable tables and seeds a few users. The catalog
// tables stay as migrated.
func (s *TestServer) LoadFixtures() error {
	tables := []string{"invite_tokens", "league_memberships", "leagues",
		"team_driver_slots", "team_constructor_slots", "teams", "users"}
	for _, table := range tables {
		_, err := s.DB.Exec(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	users := map[int]string{
		1: "fernando",
		2: "susie",
		3: "guenther",
	}
	for id, username := range users {
		_, err := s.DB.Exec(`INSERT INTO users (user_id, username) VALUES ($1, $2)`, id, username)
		if err != nil {
			return fmt.Errorf("failed to seed user %d: %w", id, err)
		}
	}

	return nil
}

func (s *TestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}

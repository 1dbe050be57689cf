package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"time"
)

type Config struct {
	Env      string         `env:"ENV" env-default:"dev"`
	Server   HTTPServer     `env-prefix:"SERVER_"`
	Postgres PostgresConfig `env-prefix:"PG_"`
	Roster   RosterConfig   `env-prefix:"ROSTER_"`
	Invite   InviteConfig   `env-prefix:"INVITE_"`
}

type HTTPServer struct {
	Port    string        `env:"PORT" env-default:"8080"`
	Timeout time.Duration `env:"TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host     string `env:"HOST" env-default:"localhost"`
	Port     string `env:"PORT" env-default:"5432"`
	User     string `env:"USER" env-default:"postgres"`
	Password string `env:"PASSWORD" env-default:"postgres"`
	DbName   string `env:"DBNAME" env-default:"fantasygrid_db"`
	SslMode  string `env:"SSLMODE" env-default:"disable"`
}

// RosterConfig holds the per-kind slot capacities. The current ruleset is
// 5 drivers and 2 constructors, but these are product knobs, not invariants.
type RosterConfig struct {
	DriverSlots      int `env:"DRIVER_SLOTS" env-default:"5"`
	ConstructorSlots int `env:"CONSTRUCTOR_SLOTS" env-default:"2"`
}

type InviteConfig struct {
	CodeLength  int `env:"CODE_LENGTH" env-default:"10"`
	MaxAttempts int `env:"MAX_ATTEMPTS" env-default:"5"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("failed to read config from environment: " + err.Error())
	}

	return &cfg
}

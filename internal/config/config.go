package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/powerengine/internal/game/combat"
	"github.com/udisondev/powerengine/internal/game/duel"
	"github.com/udisondev/powerengine/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. POWERENGINE_WORKERS.
const EnvPrefix = "POWERENGINE_"

// Engine holds all configuration for the power engine.
type Engine struct {
	Log logger.Config `yaml:"log" envPrefix:"LOG_"`

	// Content and population sources
	ContentPath    string `yaml:"content_path" env:"CONTENT_PATH"`
	PopulationPath string `yaml:"population_path" env:"POPULATION_PATH"`

	// Database
	UseDatabase bool           `yaml:"use_database" env:"USE_DATABASE"`
	Database    DatabaseConfig `yaml:"database" envPrefix:"DB_"`

	// Randomness: 0 means a fresh seed per run
	WorldSeed uint64 `yaml:"world_seed" env:"WORLD_SEED"`

	// Ranking
	Workers int `yaml:"workers" env:"WORKERS"` // 0 = GOMAXPROCS
	TopN    int `yaml:"top_n" env:"TOP_N"`

	// Combat
	Combat       combat.Balance `yaml:"combat" envPrefix:"COMBAT_"`
	DuelMaxTurns int            `yaml:"duel_max_turns" env:"DUEL_MAX_TURNS"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Engine config with sensible defaults.
func Default() Engine {
	return Engine{
		Log:            logger.DefaultConfig(),
		ContentPath:    "content/content.yaml",
		PopulationPath: "content/population.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "powerengine",
			Password: "powerengine",
			DBName:   "powerengine",
			SSLMode:  "disable",
		},
		TopN:         20,
		Combat:       combat.DefaultBalance(),
		DuelMaxTurns: duel.DefaultMaxTurns,
	}
}

// Load loads engine config from a YAML file and applies POWERENGINE_*
// environment overrides on top. If the file doesn't exist, defaults are used.
func Load(path string) (Engine, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside the engine.
func (c Engine) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.DuelMaxTurns < 0 {
		return fmt.Errorf("config: duel_max_turns must not be negative, got %d", c.DuelMaxTurns)
	}
	if err := c.Combat.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/powerengine/internal/config"
	"github.com/udisondev/powerengine/internal/db"
	"github.com/udisondev/powerengine/internal/game/ranking"
	"github.com/udisondev/powerengine/internal/model"
)

// store is where the population lives: PostgreSQL or a read-only YAML file.
type store interface {
	LoadAll(ctx context.Context) ([]*model.Character, error)
	Save(ctx context.Context, c *model.Character) error
	SaveSnapshot(ctx context.Context, lb *ranking.Leaderboard) error
	Close()
}

func openStore(ctx context.Context, cfg config.Engine) (store, error) {
	if !cfg.UseDatabase {
		return &fileStore{path: cfg.PopulationPath}, nil
	}

	dsn := cfg.Database.DSN()
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, dsn); err != nil {
		database.Close()
		return nil, err
	}
	slog.Info("database ready", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)

	return &dbStore{
		db:       database,
		chars:    db.NewCharacterRepository(database.Pool()),
		rankings: db.NewRankingRepository(database.Pool()),
	}, nil
}

type dbStore struct {
	db       *db.DB
	chars    *db.CharacterRepository
	rankings *db.RankingRepository
}

func (s *dbStore) LoadAll(ctx context.Context) ([]*model.Character, error) {
	return s.chars.LoadAll(ctx)
}

func (s *dbStore) Save(ctx context.Context, c *model.Character) error {
	return s.chars.Save(ctx, c)
}

func (s *dbStore) SaveSnapshot(ctx context.Context, lb *ranking.Leaderboard) error {
	id, err := s.rankings.SaveSnapshot(ctx, lb)
	if err != nil {
		return err
	}
	slog.Info("ranking snapshot saved", "snapshot", id, "entries", len(lb.Entries))
	return nil
}

func (s *dbStore) Close() {
	s.db.Close()
}

type fileStore struct {
	path string
}

func (s *fileStore) LoadAll(context.Context) ([]*model.Character, error) {
	chars, err := model.LoadPopulation(s.path)
	if err != nil {
		return nil, fmt.Errorf("file population: %w", err)
	}
	return chars, nil
}

func (s *fileStore) Save(_ context.Context, c *model.Character) error {
	slog.Warn("file population is read-only, change not persisted", "character", c.ID, "path", s.path)
	return nil
}

func (s *fileStore) SaveSnapshot(context.Context, *ranking.Leaderboard) error {
	return nil
}

func (s *fileStore) Close() {}

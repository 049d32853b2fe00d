package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/powerengine/internal/game/ranking"
)

// Snapshot is a stored leaderboard.
type Snapshot struct {
	ID          int64
	TakenAt     time.Time
	Leaderboard *ranking.Leaderboard
}

// RankingRepository хранит снапшоты лидерборда.
type RankingRepository struct {
	db *pgxpool.Pool
}

// NewRankingRepository создаёт новый RankingRepository.
func NewRankingRepository(db *pgxpool.Pool) *RankingRepository {
	return &RankingRepository{db: db}
}

// SaveSnapshot stores lb and returns the snapshot id.
func (r *RankingRepository) SaveSnapshot(ctx context.Context, lb *ranking.Leaderboard) (int64, error) {
	raw, err := json.Marshal(lb.Entries)
	if err != nil {
		return 0, fmt.Errorf("encoding leaderboard: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx,
		`INSERT INTO ranking_snapshots (entry_count, entries) VALUES ($1, $2) RETURNING snapshot_id`,
		len(lb.Entries), raw,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("saving ranking snapshot: %w", err)
	}
	return id, nil
}

// LatestSnapshot returns the most recent snapshot.
// Returns nil, nil if none was stored yet.
func (r *RankingRepository) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	var (
		s   Snapshot
		raw []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT snapshot_id, taken_at, entries FROM ranking_snapshots
		 ORDER BY taken_at DESC, snapshot_id DESC LIMIT 1`,
	).Scan(&s.ID, &s.TakenAt, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}

	var entries []ranking.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding snapshot %d: %w", s.ID, err)
	}
	s.Leaderboard = &ranking.Leaderboard{Entries: entries}
	return &s, nil
}

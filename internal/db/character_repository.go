package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/powerengine/internal/model"
)

// CharacterRepository хранит состояние персонажей.
// Вся изменяемая часть персонажа лежит в JSONB-колонке state; id, name и
// is_npc продублированы в колонки для фильтрации.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// LoadByID загружает персонажа по ID.
// Возвращает nil если персонаж не найден (не ошибка).
func (r *CharacterRepository) LoadByID(ctx context.Context, id string) (*model.Character, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT state FROM characters WHERE character_id = $1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying character %q: %w", id, err)
	}
	return decodeCharacter(raw)
}

// LoadAll загружает всю популяцию, упорядоченную по ID.
func (r *CharacterRepository) LoadAll(ctx context.Context) ([]*model.Character, error) {
	return r.load(ctx, `SELECT state FROM characters ORDER BY character_id`)
}

// LoadNPCs загружает только NPC.
func (r *CharacterRepository) LoadNPCs(ctx context.Context) ([]*model.Character, error) {
	return r.load(ctx, `SELECT state FROM characters WHERE is_npc ORDER BY character_id`)
}

func (r *CharacterRepository) load(ctx context.Context, query string) ([]*model.Character, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	var out []*model.Character
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		c, err := decodeCharacter(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}
	return out, nil
}

const upsertCharacter = `
	INSERT INTO characters (character_id, name, is_npc, state, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (character_id) DO UPDATE
	SET name = EXCLUDED.name, is_npc = EXCLUDED.is_npc, state = EXCLUDED.state, updated_at = now()
`

// Save вставляет или обновляет персонажа.
func (r *CharacterRepository) Save(ctx context.Context, c *model.Character) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding character %q: %w", c.ID, err)
	}
	if _, err := r.db.Exec(ctx, upsertCharacter, c.ID, c.Name, c.IsNPC, raw); err != nil {
		return fmt.Errorf("saving character %q: %w", c.ID, err)
	}
	return nil
}

// SaveAll сохраняет всех персонажей в одной транзакции: либо все, либо никто.
func (r *CharacterRepository) SaveAll(ctx context.Context, chars []*model.Character) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	batch := &pgx.Batch{}
	for _, c := range chars {
		raw, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encoding character %q: %w", c.ID, err)
		}
		batch.Queue(upsertCharacter, c.ID, c.Name, c.IsNPC, raw)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving characters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Delete удаляет персонажа. Отсутствие строки не ошибка.
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM characters WHERE character_id = $1`, id); err != nil {
		return fmt.Errorf("deleting character %q: %w", id, err)
	}
	return nil
}

func decodeCharacter(raw []byte) (*model.Character, error) {
	var c model.Character
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decoding character state: %w", err)
	}
	return &c, nil
}

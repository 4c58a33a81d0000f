package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ericogr/fight-tracker/internal/tracker"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS fights (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	rows_json JSONB NOT NULL DEFAULT '[]',
	death_saves_json JSONB NOT NULL,
	current_attacker_id TEXT,
	round INTEGER NOT NULL DEFAULT 0,
	log_json JSONB NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS inventory_items (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	origin TEXT,
	estimated_price TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const fightColumns = `id, name, created_at, updated_at, rows_json, death_saves_json, current_attacker_id, round, log_json`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to url, checks the connection and creates the
// schema when it is missing.
func OpenPostgres(ctx context.Context, url string) (Repository, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return NewPostgresRepository(pool), nil
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListFights(ctx context.Context) ([]tracker.FightSummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM fights ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list fights: %w", err)
	}
	defer rows.Close()

	out := []tracker.FightSummary{}
	for rows.Next() {
		var (
			s  tracker.FightSummary
			id int64
		)
		if err := rows.Scan(&id, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fight: %w", err)
		}
		s.ID = uint(id)
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanFight(row pgx.Row) (*tracker.Fight, error) {
	var (
		f  tracker.Fight
		id int64
	)
	err := row.Scan(&id, &f.Name, &f.CreatedAt, &f.UpdatedAt, &f.Rows, &f.DeathSaves, &f.CurrentAttackerID, &f.Round, &f.Log)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	f.ID = uint(id)
	normalizeFight(&f)
	return &f, nil
}

func (r *postgresRepository) GetFight(ctx context.Context, id uint) (*tracker.Fight, error) {
	return scanFight(r.pool.QueryRow(ctx, `SELECT `+fightColumns+` FROM fights WHERE id = $1`, int64(id)))
}

func (r *postgresRepository) CreateFight(ctx context.Context, name string) (*tracker.Fight, error) {
	s := tracker.NewFightState()
	return scanFight(r.pool.QueryRow(ctx,
		`INSERT INTO fights (name, rows_json, death_saves_json, current_attacker_id, round, log_json)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+fightColumns,
		tracker.FightName(name), s.Rows, s.DeathSaves, s.CurrentAttackerID, s.Round, s.Log))
}

func (r *postgresRepository) SaveFightState(ctx context.Context, id uint, state tracker.FightState) error {
	s := state.Normalized()
	tag, err := r.pool.Exec(ctx,
		`UPDATE fights
		 SET rows_json = $2, death_saves_json = $3, current_attacker_id = $4,
		     round = $5, log_json = $6, updated_at = NOW()
		 WHERE id = $1`,
		int64(id), s.Rows, s.DeathSaves, s.CurrentAttackerID, s.Round, s.Log)
	if err != nil {
		return fmt.Errorf("save fight %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteFight(ctx context.Context, id uint) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM fights WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete fight %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateFightName(ctx context.Context, id uint, name string) (*tracker.Fight, error) {
	return scanFight(r.pool.QueryRow(ctx,
		`UPDATE fights SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING `+fightColumns,
		int64(id), tracker.RenamedFightName(name)))
}

func scanItem(row pgx.Row) (*tracker.InventoryItem, error) {
	var (
		item tracker.InventoryItem
		id   int64
	)
	if err := row.Scan(&id, &item.Name, &item.Origin, &item.EstimatedPrice, &item.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.ID = uint(id)
	return &item, nil
}

func (r *postgresRepository) ListInventoryItems(ctx context.Context) ([]tracker.InventoryItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, origin, estimated_price, created_at FROM inventory_items ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	out := []tracker.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, *item)
	}
	return out, rows.Err()
}

func (r *postgresRepository) CreateInventoryItem(ctx context.Context, in tracker.InventoryInput) (*tracker.InventoryItem, error) {
	name, origin, price, ok := in.Normalize()
	if !ok {
		return nil, ErrNameRequired
	}
	return scanItem(r.pool.QueryRow(ctx,
		`INSERT INTO inventory_items (name, origin, estimated_price)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, origin, estimated_price, created_at`,
		name, origin, price))
}

func (r *postgresRepository) UpdateInventoryItem(ctx context.Context, id uint, in tracker.InventoryInput) (*tracker.InventoryItem, error) {
	name, origin, price, ok := in.Normalize()
	if !ok {
		return nil, ErrNameRequired
	}
	return scanItem(r.pool.QueryRow(ctx,
		`UPDATE inventory_items SET name = $2, origin = $3, estimated_price = $4
		 WHERE id = $1
		 RETURNING id, name, origin, estimated_price, created_at`,
		int64(id), name, origin, price))
}

func (r *postgresRepository) DeleteInventoryItem(ctx context.Context, id uint) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) Close() error {
	r.pool.Close()
	return nil
}

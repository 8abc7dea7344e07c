package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nktomer45/planboard/internal/domain"
)

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const planningSchema = `
	CREATE TABLE IF NOT EXISTS stores (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS skus (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL,
		name       TEXT NOT NULL,
		price      NUMERIC(12, 2) NOT NULL DEFAULT 0,
		cost       NUMERIC(12, 2) NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS planning_units (
		store_id   TEXT NOT NULL,
		sku_id     TEXT NOT NULL,
		week_id    TEXT NOT NULL,
		units      INTEGER NOT NULL DEFAULT 0 CHECK (units >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (store_id, sku_id, week_id)
	);
`

// IngestRepository writes planning reference data. It is used by tooling
// that seeds the database; the API only reads.
type IngestRepository struct {
	db Execer
}

func NewIngestRepository(db Execer) *IngestRepository {
	return &IngestRepository{db: db}
}

// EnsureSchema creates the planning tables when they do not exist.
func (r *IngestRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, planningSchema); err != nil {
		return fmt.Errorf("failed to create planning schema: %w", err)
	}
	return nil
}

func (r *IngestRepository) UpsertStore(ctx context.Context, store domain.Store) error {
	query := `
		INSERT INTO stores (id, name, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, store.ID, store.Name); err != nil {
		return fmt.Errorf("failed to upsert store %s: %w", store.ID, err)
	}
	return nil
}

func (r *IngestRepository) UpsertSKU(ctx context.Context, sku domain.SKU) error {
	query := `
		INSERT INTO skus (id, code, name, price, cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			code = EXCLUDED.code,
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			cost = EXCLUDED.cost,
			updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, sku.ID, sku.Code, sku.Name, sku.Price, sku.Cost); err != nil {
		return fmt.Errorf("failed to upsert sku %s: %w", sku.ID, err)
	}
	return nil
}

func (r *IngestRepository) UpsertUnitEntry(ctx context.Context, entry domain.UnitEntry) error {
	query := `
		INSERT INTO planning_units (store_id, sku_id, week_id, units, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (store_id, sku_id, week_id)
		DO UPDATE SET units = EXCLUDED.units, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, entry.StoreID, entry.SKUID, entry.WeekID, entry.Units); err != nil {
		return fmt.Errorf("failed to upsert units for %s/%s/%s: %w", entry.StoreID, entry.SKUID, entry.WeekID, err)
	}
	return nil
}

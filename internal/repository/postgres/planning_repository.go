package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nktomer45/planboard/internal/domain"
)

type planningRepository struct {
	db *DB
}

func NewPlanningRepository(db *DB) *planningRepository {
	return &planningRepository{db: db}
}

func (r *planningRepository) ListStores(ctx context.Context) ([]domain.Store, error) {
	stores := []domain.Store{}
	err := r.db.withSem(ctx, func() error {
		return r.db.SelectContext(ctx, &stores, `SELECT id, name FROM stores ORDER BY id`)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (r *planningRepository) ListSKUs(ctx context.Context) ([]domain.SKU, error) {
	skus := []domain.SKU{}
	err := r.db.withSem(ctx, func() error {
		return r.db.SelectContext(ctx, &skus, `
			SELECT id, code, name, price::float8 AS price, cost::float8 AS cost
			FROM skus
			ORDER BY id
		`)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list skus: %w", err)
	}
	return skus, nil
}

func (r *planningRepository) ListUnitEntries(ctx context.Context, weekIDs []string) ([]domain.UnitEntry, error) {
	query := `SELECT store_id, sku_id, week_id, units FROM planning_units`
	var args []interface{}

	if len(weekIDs) > 0 {
		var err error
		query, args, err = sqlx.In(query+` WHERE week_id IN (?)`, weekIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to build unit query: %w", err)
		}
		query = r.db.Rebind(query)
	}
	query += ` ORDER BY store_id, sku_id, week_id`

	entries := []domain.UnitEntry{}
	err := r.db.withSem(ctx, func() error {
		return r.db.SelectContext(ctx, &entries, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list unit entries: %w", err)
	}
	return entries, nil
}

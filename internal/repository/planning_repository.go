package repository

import (
	"context"

	"github.com/nktomer45/planboard/internal/domain"
)

// PlanningRepository reads the planning reference data from a database.
type PlanningRepository interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	ListSKUs(ctx context.Context) ([]domain.SKU, error)
	// ListUnitEntries returns entries for the given weeks; nil means all weeks.
	ListUnitEntries(ctx context.Context, weekIDs []string) ([]domain.UnitEntry, error)
}

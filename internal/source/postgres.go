package source

import (
	"context"

	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/repository"
)

// PostgresSource reads planning data through a PlanningRepository.
type PostgresSource struct {
	repo repository.PlanningRepository
}

func NewPostgresSource(repo repository.PlanningRepository) *PostgresSource {
	return &PostgresSource{repo: repo}
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Stores(ctx context.Context) ([]domain.Store, error) {
	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeStores(stores), nil
}

func (s *PostgresSource) SKUs(ctx context.Context) ([]domain.SKU, error) {
	skus, err := s.repo.ListSKUs(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeSKUs(skus), nil
}

func (s *PostgresSource) UnitEntries(ctx context.Context, calendar []domain.CalendarWeek) ([]domain.UnitEntry, error) {
	return s.repo.ListUnitEntries(ctx, calendarIDs(calendar))
}

func calendarIDs(calendar []domain.CalendarWeek) []string {
	ids := make([]string, len(calendar))
	for i, w := range calendar {
		ids[i] = w.ID
	}
	return ids
}

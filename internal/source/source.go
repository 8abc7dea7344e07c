package source

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/nktomer45/planboard/internal/domain"
)

// Source provides the dimension lists and the unit-count table the planning
// grid is built from.
type Source interface {
	Name() string
	Stores(ctx context.Context) ([]domain.Store, error)
	SKUs(ctx context.Context) ([]domain.SKU, error)
	// UnitEntries returns the sparse unit table. Sources that lay weeks out
	// positionally map them onto calendar.
	UnitEntries(ctx context.Context, calendar []domain.CalendarWeek) ([]domain.UnitEntry, error)
}

// Dataset is everything fetched from a source in one load.
type Dataset struct {
	Stores  []domain.Store     `json:"stores"`
	SKUs    []domain.SKU       `json:"skus"`
	Entries []domain.UnitEntry `json:"entries"`
}

// Empty returns a dataset with non-nil, empty slices.
func Empty() Dataset {
	return Dataset{
		Stores:  []domain.Store{},
		SKUs:    []domain.SKU{},
		Entries: []domain.UnitEntry{},
	}
}

// Load fetches stores, SKUs and unit entries concurrently. Any failure yields
// an empty dataset together with the error; Load does not retry.
func Load(ctx context.Context, src Source, calendar []domain.CalendarWeek) (Dataset, error) {
	var ds Dataset

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stores, err := src.Stores(gctx)
		if err != nil {
			return fmt.Errorf("fetch stores from %s: %w", src.Name(), err)
		}
		ds.Stores = stores
		return nil
	})
	g.Go(func() error {
		skus, err := src.SKUs(gctx)
		if err != nil {
			return fmt.Errorf("fetch skus from %s: %w", src.Name(), err)
		}
		ds.SKUs = skus
		return nil
	})
	g.Go(func() error {
		entries, err := src.UnitEntries(gctx, calendar)
		if err != nil {
			return fmt.Errorf("fetch unit entries from %s: %w", src.Name(), err)
		}
		ds.Entries = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return Empty(), err
	}

	return ds, nil
}

// NormalizeStores fills blank ids and names with index-based fallbacks
// ("store-1", "Store 1").
func NormalizeStores(stores []domain.Store) []domain.Store {
	out := make([]domain.Store, len(stores))
	for i, s := range stores {
		n := strconv.Itoa(i + 1)
		if s.ID == "" {
			s.ID = "store-" + n
		}
		if s.Name == "" {
			s.Name = "Store " + n
		}
		out[i] = s
	}
	return out
}

// NormalizeSKUs fills blank ids, codes and names with index-based fallbacks
// ("sku-1", "SKU1", "Product 1"). Negative prices and costs are clamped to 0.
func NormalizeSKUs(skus []domain.SKU) []domain.SKU {
	out := make([]domain.SKU, len(skus))
	for i, s := range skus {
		n := strconv.Itoa(i + 1)
		if s.ID == "" {
			s.ID = "sku-" + n
		}
		if s.Code == "" {
			s.Code = "SKU" + n
		}
		if s.Name == "" {
			s.Name = "Product " + n
		}
		if s.Price < 0 {
			s.Price = 0
		}
		if s.Cost < 0 {
			s.Cost = 0
		}
		out[i] = s
	}
	return out
}

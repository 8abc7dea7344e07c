package source

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nktomer45/planboard/internal/cache"
	"github.com/nktomer45/planboard/internal/domain"
)

// Cached is a read-through cache in front of another source. Cache failures
// are logged and the upstream source is used instead.
type Cached struct {
	next  Source
	cache cache.SourceCache
}

func NewCached(next Source, c cache.SourceCache) *Cached {
	if c == nil {
		c = cache.NewNoopSourceCache()
	}
	return &Cached{next: next, cache: c}
}

func (s *Cached) Name() string { return s.next.Name() }

func (s *Cached) Stores(ctx context.Context) ([]domain.Store, error) {
	return readThrough(ctx, s, "stores", nil, func() ([]domain.Store, error) {
		return s.next.Stores(ctx)
	})
}

func (s *Cached) SKUs(ctx context.Context) ([]domain.SKU, error) {
	return readThrough(ctx, s, "skus", nil, func() ([]domain.SKU, error) {
		return s.next.SKUs(ctx)
	})
}

func (s *Cached) UnitEntries(ctx context.Context, calendar []domain.CalendarWeek) ([]domain.UnitEntry, error) {
	return readThrough(ctx, s, "units", calendarIDs(calendar), func() ([]domain.UnitEntry, error) {
		return s.next.UnitEntries(ctx, calendar)
	})
}

// Invalidate drops every cached source result.
func (s *Cached) Invalidate(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func readThrough[T any](ctx context.Context, s *Cached, dataset string, params []string, fetch func() ([]T, error)) ([]T, error) {
	params = append([]string{s.next.Name()}, params...)

	var cached []T
	hit, err := s.cache.Get(ctx, dataset, params, &cached)
	if err != nil {
		log.Warn().Err(err).Str("dataset", dataset).Msg("source cache read failed")
	} else if hit {
		return cached, nil
	}

	fresh, err := fetch()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, dataset, params, fresh); err != nil {
		log.Warn().Err(err).Str("dataset", dataset).Msg("source cache write failed")
	}

	return fresh, nil
}

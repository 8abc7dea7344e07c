package source

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nktomer45/planboard/internal/cache"
	"github.com/nktomer45/planboard/internal/config"
	"github.com/nktomer45/planboard/internal/repository/postgres"
)

const (
	KindFixture  = "fixture"
	KindSheets   = "sheets"
	KindPostgres = "postgres"
	KindWorkbook = "workbook"
)

// Opened is a configured source plus the resources backing it.
type Opened struct {
	Source  *Cached
	closers []func() error
}

// Close releases database and cache connections.
func (o *Opened) Close() error {
	var first error
	for i := len(o.closers) - 1; i >= 0; i-- {
		if err := o.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open builds the source selected by cfg.Source.Kind, wrapped in the source
// cache. A redis outage at startup degrades to an uncached source.
func Open(ctx context.Context, cfg *config.Config, kind string) (*Opened, error) {
	if kind == "" {
		kind = cfg.Source.Kind
	}

	opened := &Opened{}
	var src Source

	switch kind {
	case KindFixture, "":
		fixture, err := NewFixtureSource(cfg.Source.FixturePath)
		if err != nil {
			return nil, err
		}
		src = fixture
	case KindSheets:
		sheetsSrc, err := NewSheetsSource(ctx, cfg.Sheets)
		if err != nil {
			return nil, err
		}
		src = sheetsSrc
	case KindWorkbook:
		workbook, err := NewWorkbookSource(cfg.Source.WorkbookPath, cfg.Sheets)
		if err != nil {
			return nil, err
		}
		src = workbook
	case KindPostgres:
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		opened.closers = append(opened.closers, db.Close)
		src = NewPostgresSource(postgres.NewPlanningRepository(db))
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}

	sourceCache, err := cache.NewSourceCache(ctx, cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("source cache unavailable, continuing without cache")
		sourceCache = cache.NewNoopSourceCache()
	}
	opened.closers = append(opened.closers, sourceCache.Close)
	opened.Source = NewCached(src, sourceCache)

	log.Info().
		Str("source", src.Name()).
		Bool("cache", cfg.Cache.Enabled).
		Msg("planning source ready")

	return opened, nil
}

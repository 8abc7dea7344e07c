package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/planning"
	"github.com/nktomer45/planboard/internal/source"
	"github.com/nktomer45/planboard/internal/storage"
)

// ErrUnsupportedFormat is returned for export formats other than csv/xlsx.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// GridRow is a planning row plus its derived cells, keyed by week id.
type GridRow struct {
	domain.PlanningRow
	Cells map[string]planning.CellMetrics `json:"cells"`
}

// Grid is everything the planning grid needs to render.
type Grid struct {
	Calendar []domain.CalendarWeek `json:"calendar"`
	Schema   []domain.ColumnNode   `json:"schema"`
	Rows     []GridRow             `json:"rows"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// RefreshResult summarizes a reload from the source.
type RefreshResult struct {
	Source  string `json:"source"`
	Stores  int    `json:"stores"`
	SKUs    int    `json:"skus"`
	Entries int    `json:"entries"`
	Rows    int    `json:"rows"`
}

type PlanningOptions struct {
	FillMissingWeeks bool
	StoragePrefix    string
}

type PlanningService struct {
	source   source.Source
	snapshot *planning.Snapshot
	storage  storage.ObjectStorage
	opts     PlanningOptions
	now      func() time.Time

	mu      sync.RWMutex
	dataset source.Dataset
}

func NewPlanningService(src source.Source, calendar []domain.CalendarWeek, store storage.ObjectStorage, opts PlanningOptions) *PlanningService {
	if store == nil {
		store = storage.Disabled()
	}
	return &PlanningService{
		source:   src,
		snapshot: planning.NewSnapshot(calendar),
		storage:  store,
		opts:     opts,
		now:      time.Now,
		dataset:  source.Empty(),
	}
}

// Refresh reloads dimensions and units from the source and rebuilds the
// snapshot, discarding unsaved edits. On failure the grid is emptied and the
// error returned.
func (s *PlanningService) Refresh(ctx context.Context) (RefreshResult, error) {
	calendar := s.snapshot.Calendar()

	ds, err := source.Load(ctx, s.source, calendar)
	if err != nil {
		s.setDataset(source.Empty())
		s.snapshot.Replace(nil)
		log.Error().Err(err).Str("source", s.source.Name()).Msg("planning refresh failed")
		return RefreshResult{Source: s.source.Name()}, err
	}

	rows := planning.BuildRows(ds.Stores, ds.SKUs, ds.Entries, calendar)
	s.setDataset(ds)
	s.snapshot.Replace(rows)

	result := RefreshResult{
		Source:  s.source.Name(),
		Stores:  len(ds.Stores),
		SKUs:    len(ds.SKUs),
		Entries: len(ds.Entries),
		Rows:    len(rows),
	}
	log.Info().
		Str("source", result.Source).
		Int("stores", result.Stores).
		Int("skus", result.SKUs).
		Int("rows", result.Rows).
		Msg("planning data refreshed")

	return result, nil
}

func (s *PlanningService) setDataset(ds source.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
}

// Stores returns the stores of the last successful load.
func (s *PlanningService) Stores() []domain.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Store{}, s.dataset.Stores...)
}

// SKUs returns the SKUs of the last successful load.
func (s *PlanningService) SKUs() []domain.SKU {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SKU{}, s.dataset.SKUs...)
}

func (s *PlanningService) Calendar() []domain.CalendarWeek {
	return s.snapshot.Calendar()
}

// Grid returns the current rows with derived cells and the column schema.
func (s *PlanningService) Grid() Grid {
	rows := s.snapshot.Rows()
	calendar := s.snapshot.Calendar()

	out := make([]GridRow, len(rows))
	for i, r := range rows {
		out[i] = s.gridRow(r, calendar)
	}

	return Grid{
		Calendar: calendar,
		Schema:   s.snapshot.Schema(),
		Rows:     out,
		LoadedAt: s.snapshot.LoadedAt(),
	}
}

func (s *PlanningService) gridRow(r domain.PlanningRow, calendar []domain.CalendarWeek) GridRow {
	cells := make(map[string]planning.CellMetrics, len(calendar))
	for _, w := range calendar {
		cells[w.ID] = planning.WeekMetrics(r, w.ID)
	}
	return GridRow{PlanningRow: r, Cells: cells}
}

// UpdateUnits edits one Sales Units cell in memory.
func (s *PlanningService) UpdateUnits(rowID, weekID string, units int) (GridRow, error) {
	row, err := s.snapshot.SetUnits(rowID, weekID, units)
	if err != nil {
		return GridRow{}, err
	}
	return s.gridRow(row, s.snapshot.Calendar()), nil
}

// Weekly returns the weekly sales and margin series for a store, or for all
// stores when storeID is empty. A non-empty tier keeps only the weeks that
// fall in that margin band.
func (s *PlanningService) Weekly(storeID string, tier domain.MarginTier) []domain.WeekPoint {
	points := planning.WeeklySeries(s.snapshot.Rows(), s.snapshot.Calendar(), storeID)
	if tier == "" {
		return points
	}

	filtered := make([]domain.WeekPoint, 0, len(points))
	for _, p := range points {
		if p.Tier == tier {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// LoadedAt is the time of the last successful refresh.
func (s *PlanningService) LoadedAt() time.Time {
	return s.snapshot.LoadedAt()
}

// Export writes the current grid in the given format. fill overrides the
// configured missing-week policy when non-nil.
func (s *PlanningService) Export(w io.Writer, format string, fill *bool) error {
	opts := planning.ExportOptions{FillMissingWeeks: s.opts.FillMissingWeeks}
	if fill != nil {
		opts.FillMissingWeeks = *fill
	}

	rows := s.snapshot.Rows()
	schema := s.snapshot.Schema()

	switch NormalizeFormat(format) {
	case FormatCSV:
		return planning.WriteCSV(w, rows, schema, opts)
	case FormatXLSX:
		return planning.WriteXLSX(w, rows, schema, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Publish uploads an export of the current grid to object storage.
func (s *PlanningService) Publish(ctx context.Context, format string) (storage.ObjectInfo, error) {
	format = NormalizeFormat(format)

	var buf bytes.Buffer
	if err := s.Export(&buf, format, nil); err != nil {
		return storage.ObjectInfo{}, err
	}

	key := s.opts.StoragePrefix + ExportFileName(format, s.now())
	if err := s.storage.UploadObject(ctx, key, buf.Bytes()); err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("publish export: %w", err)
	}

	log.Info().Str("key", key).Int("bytes", buf.Len()).Msg("planning export published")

	return storage.ObjectInfo{Key: key, Size: int64(buf.Len())}, nil
}

// Published lists exports previously uploaded by Publish.
func (s *PlanningService) Published(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.storage.ListObjects(ctx, s.opts.StoragePrefix)
}

// ExportFileName is the download/object name for an export taken at t.
func ExportFileName(format string, t time.Time) string {
	return fmt.Sprintf("planning-data-export-%s.%s", t.UTC().Format("20060102-150405"), NormalizeFormat(format))
}

// NormalizeFormat lower-cases and trims an export format, defaulting to CSV.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatCSV
	}
	return format
}

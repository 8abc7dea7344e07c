package planning

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nktomer45/planboard/internal/domain"
)

var (
	ErrRowNotFound   = errors.New("planning row not found")
	ErrUnknownWeek   = errors.New("week is not part of the planning calendar")
	ErrNegativeUnits = errors.New("units must not be negative")
)

// Snapshot holds the planning grid currently being edited. Edits live only in
// memory and are discarded by the next Replace.
type Snapshot struct {
	mu       sync.RWMutex
	calendar []domain.CalendarWeek
	schema   []domain.ColumnNode
	weeks    map[string]int
	rows     []domain.PlanningRow
	index    map[string]int
	loadedAt time.Time
}

// NewSnapshot creates an empty snapshot over calendar.
func NewSnapshot(calendar []domain.CalendarWeek) *Snapshot {
	return &Snapshot{
		calendar: calendar,
		schema:   BuildColumnSchema(calendar),
		weeks:    weekIndex(calendar),
		rows:     []domain.PlanningRow{},
		index:    map[string]int{},
	}
}

// Replace swaps in a freshly built row set.
func (s *Snapshot) Replace(rows []domain.PlanningRow) {
	rows = CloneRows(rows)
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		index[r.ID] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = rows
	s.index = index
	s.loadedAt = time.Now()
}

// Rows returns a copy of the current rows.
func (s *Snapshot) Rows() []domain.PlanningRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return CloneRows(s.rows)
}

// Row returns a copy of a single row.
func (s *Snapshot) Row(id string) (domain.PlanningRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.PlanningRow{}, fmt.Errorf("%w: %s", ErrRowNotFound, id)
	}
	return s.rows[i].Clone(), nil
}

func (s *Snapshot) Calendar() []domain.CalendarWeek {
	return s.calendar
}

func (s *Snapshot) Schema() []domain.ColumnNode {
	return s.schema
}

// LoadedAt is the time of the last Replace, zero before the first load.
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadedAt
}

// SetUnits edits the Sales Units cell of a row and returns the updated row.
// Derived cells are recomputed on read, so nothing else is touched.
func (s *Snapshot) SetUnits(rowID, weekID string, units int) (domain.PlanningRow, error) {
	if units < 0 {
		return domain.PlanningRow{}, fmt.Errorf("%w: %d", ErrNegativeUnits, units)
	}
	if _, ok := s.weeks[weekID]; !ok {
		return domain.PlanningRow{}, fmt.Errorf("%w: %s", ErrUnknownWeek, weekID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[rowID]
	if !ok {
		return domain.PlanningRow{}, fmt.Errorf("%w: %s", ErrRowNotFound, rowID)
	}
	s.rows[i].Units[weekID] = units

	return s.rows[i].Clone(), nil
}

package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nktomer45/planboard/internal/config"
	"github.com/nktomer45/planboard/internal/domain"
)

// WorkbookSource reads an XLSX file laid out like the planning spreadsheet:
// a Stores, a SKUs and a Planning sheet. The file is reopened on every read
// so a refresh picks up edits.
type WorkbookSource struct {
	path          string
	storesSheet   string
	skusSheet     string
	planningSheet string
}

func NewWorkbookSource(path string, sheets config.SheetsConfig) (*WorkbookSource, error) {
	if path == "" {
		return nil, fmt.Errorf("workbook source requires SOURCE_WORKBOOK_PATH")
	}
	return &WorkbookSource{
		path:          path,
		storesSheet:   sheets.StoresSheet,
		skusSheet:     sheets.SKUsSheet,
		planningSheet: sheets.PlanningSheet,
	}, nil
}

func (s *WorkbookSource) Name() string { return "workbook" }

func (s *WorkbookSource) Stores(ctx context.Context) ([]domain.Store, error) {
	values, err := s.values(s.storesSheet)
	if err != nil {
		return nil, err
	}
	return ParseStoreRows(values), nil
}

func (s *WorkbookSource) SKUs(ctx context.Context) ([]domain.SKU, error) {
	values, err := s.values(s.skusSheet)
	if err != nil {
		return nil, err
	}
	return ParseSKURows(values), nil
}

func (s *WorkbookSource) UnitEntries(ctx context.Context, calendar []domain.CalendarWeek) ([]domain.UnitEntry, error) {
	values, err := s.values(s.planningSheet)
	if err != nil {
		return nil, err
	}
	return ParsePlanningRows(values, calendar), nil
}

// values streams one sheet into the same shape the Sheets API returns.
func (s *WorkbookSource) values(sheet string) ([][]interface{}, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var values [][]interface{}
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row from %s: %w", s.path, err)
		}
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = v
		}
		values = append(values, row)
	}

	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in %s: %w", s.path, err)
	}

	return values, nil
}

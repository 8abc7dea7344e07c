package source

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/nktomer45/planboard/internal/config"
	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/metrics"
)

const planningHeaderMarker = "Store ID"

// SheetsSource reads the Stores, SKUs and Planning tabs of a spreadsheet
// through the Sheets v4 API.
type SheetsSource struct {
	srv           *sheets.Service
	spreadsheetID string
	storesSheet   string
	skusSheet     string
	planningSheet string
}

// NewSheetsSource authenticates with a service-account JSON when configured,
// otherwise with an API key (the spreadsheet must then be readable by link).
func NewSheetsSource(ctx context.Context, cfg config.SheetsConfig) (*SheetsSource, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets source requires SHEETS_SPREADSHEET_ID")
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		jwt, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse sheets credentials: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(jwt.Client(ctx)))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	default:
		return nil, fmt.Errorf("sheets source requires SHEETS_API_KEY or SHEETS_CREDENTIALS_JSON")
	}

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	return newSheetsSource(ctx, cfg, opts...)
}

func newSheetsSource(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (*SheetsSource, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	return &SheetsSource{
		srv:           srv,
		spreadsheetID: cfg.SpreadsheetID,
		storesSheet:   orDefault(cfg.StoresSheet, "Stores"),
		skusSheet:     orDefault(cfg.SKUsSheet, "SKUs"),
		planningSheet: orDefault(cfg.PlanningSheet, "Planning"),
	}, nil
}

func (s *SheetsSource) Name() string { return "sheets" }

func (s *SheetsSource) Stores(ctx context.Context) ([]domain.Store, error) {
	values, err := s.values(ctx, s.storesSheet)
	if err != nil {
		return nil, err
	}
	return ParseStoreRows(values), nil
}

func (s *SheetsSource) SKUs(ctx context.Context) ([]domain.SKU, error) {
	values, err := s.values(ctx, s.skusSheet)
	if err != nil {
		return nil, err
	}
	return ParseSKURows(values), nil
}

func (s *SheetsSource) UnitEntries(ctx context.Context, calendar []domain.CalendarWeek) ([]domain.UnitEntry, error) {
	values, err := s.values(ctx, s.planningSheet)
	if err != nil {
		return nil, err
	}
	return ParsePlanningRows(values, calendar), nil
}

func (s *SheetsSource) values(ctx context.Context, sheet string) ([][]interface{}, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return resp.Values, nil
}

// ParseStoreRows maps `id, name` rows, skipping the header row.
func ParseStoreRows(values [][]interface{}) []domain.Store {
	if len(values) <= 1 {
		return []domain.Store{}
	}

	stores := make([]domain.Store, 0, len(values)-1)
	for _, row := range values[1:] {
		stores = append(stores, domain.Store{
			ID:   cellString(row, 0),
			Name: cellString(row, 1),
		})
	}
	return NormalizeStores(stores)
}

// ParseSKURows maps `id, code, name, price, cost` rows, skipping the header row.
func ParseSKURows(values [][]interface{}) []domain.SKU {
	if len(values) <= 1 {
		return []domain.SKU{}
	}

	skus := make([]domain.SKU, 0, len(values)-1)
	for _, row := range values[1:] {
		skus = append(skus, domain.SKU{
			ID:    cellString(row, 0),
			Code:  cellString(row, 1),
			Name:  cellString(row, 2),
			Price: metrics.ParseNumber(cell(row, 3)),
			Cost:  metrics.ParseNumber(cell(row, 4)),
		})
	}
	return NormalizeSKUs(skus)
}

// ParsePlanningRows maps `Store ID, SKU ID, <week 1>, <week 2>, ...` rows
// onto calendar positionally. The header row is skipped when it starts with
// "Store ID". Blank cells produce no entry; rows without a store or SKU id
// are dropped.
func ParsePlanningRows(values [][]interface{}, calendar []domain.CalendarWeek) []domain.UnitEntry {
	if len(values) > 0 && cellString(values[0], 0) == planningHeaderMarker {
		values = values[1:]
	}

	entries := make([]domain.UnitEntry, 0, len(values))
	for _, row := range values {
		storeID := cellString(row, 0)
		skuID := cellString(row, 1)
		if storeID == "" || skuID == "" {
			continue
		}

		for i, week := range calendar {
			raw := cellString(row, i+2)
			if raw == "" {
				continue
			}
			units := metrics.ParseInt(raw)
			if units < 0 {
				units = 0
			}
			entries = append(entries, domain.UnitEntry{
				StoreID: storeID,
				SKUID:   skuID,
				WeekID:  week.ID,
				Units:   units,
			})
		}
	}

	return entries
}

func cell(row []interface{}, i int) interface{} {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

func cellString(row []interface{}, i int) string {
	v := cell(row, i)
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

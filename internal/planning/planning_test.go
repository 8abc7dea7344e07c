package planning

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/metrics"
)

var (
	storeA = domain.Store{ID: "S1", Name: "A"}
	prod   = domain.SKU{ID: "P1", Code: "C1", Name: "Prod", Price: 10, Cost: 4}
)

func TestBuildCalendar(t *testing.T) {
	weeks := BuildCalendar()
	if len(weeks) != 16 {
		t.Fatalf("len = %d, want 16", len(weeks))
	}

	checks := []struct {
		i     int
		id    string
		week  string
		month string
	}{
		{0, "w1", "W1", "Jan"},
		{3, "w4", "W4", "Jan"},
		{4, "w5", "W5", "Feb"},
		{15, "w16", "W16", "Apr"},
	}
	for _, c := range checks {
		w := weeks[c.i]
		if w.ID != c.id || w.Week != c.week || w.Month != c.month {
			t.Errorf("weeks[%d] = %+v, want {%s %s %s}", c.i, w, c.id, c.week, c.month)
		}
	}

	if !reflect.DeepEqual(weeks, BuildCalendar()) {
		t.Error("BuildCalendar is not deterministic")
	}
}

func TestBuildCalendarN(t *testing.T) {
	weeks := BuildCalendarN([]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}, 4)
	if len(weeks) != 48 {
		t.Fatalf("len = %d, want 48", len(weeks))
	}
	if last := weeks[47]; last.ID != "w48" || last.Month != "Dec" {
		t.Errorf("last week = %+v", last)
	}

	if got := BuildCalendarN(nil, 4); len(got) != 0 {
		t.Errorf("empty months produced %d weeks", len(got))
	}
	if got := BuildCalendarN([]string{"Jan"}, 0); len(got) != 0 {
		t.Errorf("zero weeks per month produced %d weeks", len(got))
	}
}

func TestBuildRowsEndToEnd(t *testing.T) {
	calendar := BuildCalendar()

	tests := []struct {
		name      string
		units     int
		wantSales float64
		wantGM    float64
		wantPct   float64
		wantTier  domain.MarginTier
	}{
		{"five units", 5, 50, 30, 60, domain.TierTarget},
		{"zero units", 0, 0, 0, 0, domain.TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildRows(
				[]domain.Store{storeA},
				[]domain.SKU{prod},
				[]domain.UnitEntry{{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: tt.units}},
				calendar,
			)
			if len(rows) != 1 {
				t.Fatalf("len(rows) = %d, want 1", len(rows))
			}

			row := rows[0]
			if row.ID != "S1_P1" {
				t.Errorf("row id = %q", row.ID)
			}
			if u, ok := row.Units["w1"]; !ok || u != tt.units {
				t.Errorf("units[w1] = %d (present %v), want %d", u, ok, tt.units)
			}

			m := WeekMetrics(row, "w1")
			if m.SalesDollars != tt.wantSales || m.GMDollars != tt.wantGM {
				t.Errorf("sales/gm = %v/%v, want %v/%v", m.SalesDollars, m.GMDollars, tt.wantSales, tt.wantGM)
			}
			if math.IsNaN(m.GMPercent) || m.GMPercent != tt.wantPct {
				t.Errorf("gm%% = %v, want %v", m.GMPercent, tt.wantPct)
			}
			if m.Tier != tt.wantTier || metrics.ClassifyMargin(m.GMPercent) != tt.wantTier {
				t.Errorf("tier = %s, want %s", m.Tier, tt.wantTier)
			}
		})
	}
}

func TestBuildRowsUnknownWeek(t *testing.T) {
	rows := BuildRows(
		[]domain.Store{storeA},
		[]domain.SKU{prod},
		[]domain.UnitEntry{{StoreID: "S1", SKUID: "P1", WeekID: "wXX", Units: 10}},
		BuildCalendar(),
	)

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if len(rows[0].Units) != 0 {
		t.Errorf("units = %v, want empty", rows[0].Units)
	}
}

func TestBuildRowsPlaceholders(t *testing.T) {
	rows := BuildRows(
		[]domain.Store{storeA},
		[]domain.SKU{prod},
		[]domain.UnitEntry{{StoreID: "S9", SKUID: "P9", WeekID: "w2", Units: 3}},
		BuildCalendar(),
	)

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	got := rows[0]
	if got.Store != (domain.Store{ID: "S9", Name: "Store S9"}) {
		t.Errorf("store = %+v", got.Store)
	}
	if got.SKU != (domain.SKU{ID: "P9", Code: "CODE-P9", Name: "SKU P9"}) {
		t.Errorf("sku = %+v", got.SKU)
	}
	if WeekMetrics(got, "w2").SalesDollars != 0 {
		t.Error("placeholder sku should have zero price")
	}
}

func TestBuildRowsEmptyDimensions(t *testing.T) {
	entries := []domain.UnitEntry{{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 1}}

	if rows := BuildRows(nil, []domain.SKU{prod}, entries, BuildCalendar()); len(rows) != 0 {
		t.Errorf("no stores: got %d rows", len(rows))
	}
	if rows := BuildRows([]domain.Store{storeA}, nil, entries, BuildCalendar()); len(rows) != 0 {
		t.Errorf("no skus: got %d rows", len(rows))
	}
}

func TestBuildRowsOrderAndOverwrite(t *testing.T) {
	stores := []domain.Store{storeA, {ID: "S2", Name: "B"}}
	skus := []domain.SKU{prod}
	entries := []domain.UnitEntry{
		{StoreID: "S2", SKUID: "P1", WeekID: "w1", Units: 1},
		{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 2},
		{StoreID: "S2", SKUID: "P1", WeekID: "w1", Units: 7},
		{StoreID: "S2", SKUID: "P1", WeekID: "w3", Units: 4},
	}

	rows := BuildRows(stores, skus, entries, BuildCalendar())
	if len(rows) != 2 || rows[0].ID != "S2_P1" || rows[1].ID != "S1_P1" {
		t.Fatalf("rows order = %v", rowIDs(rows))
	}
	if !reflect.DeepEqual(rows[0].Units, map[string]int{"w1": 7, "w3": 4}) {
		t.Errorf("S2 units = %v", rows[0].Units)
	}
}

func TestBuildRowsIdempotent(t *testing.T) {
	stores := []domain.Store{storeA, {ID: "S2", Name: "B"}}
	skus := []domain.SKU{prod, {ID: "P2", Code: "C2", Name: "Other", Price: 3, Cost: 1}}
	entries := []domain.UnitEntry{
		{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 5},
		{StoreID: "S2", SKUID: "P2", WeekID: "w2", Units: 8},
		{StoreID: "S1", SKUID: "P2", WeekID: "w5", Units: 1},
	}
	reversed := []domain.UnitEntry{entries[2], entries[1], entries[0]}

	first := byID(BuildRows(stores, skus, entries, BuildCalendar()))
	second := byID(BuildRows(stores, skus, entries, BuildCalendar()))
	shuffled := byID(BuildRows(stores, skus, reversed, BuildCalendar()))

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different rows")
	}
	if !reflect.DeepEqual(first, shuffled) {
		t.Error("entry order changed row contents")
	}
}

func TestBuildFullGrid(t *testing.T) {
	stores := []domain.Store{storeA, {ID: "S2", Name: "B"}}
	skus := []domain.SKU{prod, {ID: "P2", Code: "C2", Name: "Other"}}
	entries := []domain.UnitEntry{
		{StoreID: "S2", SKUID: "P1", WeekID: "w1", Units: 3},
		{StoreID: "S3", SKUID: "P1", WeekID: "w1", Units: 9},
		{StoreID: "S1", SKUID: "P2", WeekID: "w99", Units: 9},
	}

	rows := BuildFullGrid(stores, skus, entries, BuildCalendar())
	want := []string{"S1_P1", "S1_P2", "S2_P1", "S2_P2"}
	if got := rowIDs(rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("row ids = %v, want %v", got, want)
	}
	if rows[2].Units["w1"] != 3 {
		t.Errorf("S2_P1 w1 = %d, want 3", rows[2].Units["w1"])
	}
	if len(rows[1].Units) != 0 {
		t.Errorf("S1_P2 units = %v, want empty", rows[1].Units)
	}
}

func TestBuildColumnSchema(t *testing.T) {
	calendar := BuildCalendar()
	schema := BuildColumnSchema(calendar)

	if len(schema) != 3+4 {
		t.Fatalf("top-level nodes = %d, want 7", len(schema))
	}
	for i, h := range []string{"Store", "SKU", "SKU Code"} {
		if schema[i].Header != h || !schema[i].Pinned || !schema[i].IsLeaf() {
			t.Errorf("identity column %d = %+v", i, schema[i])
		}
	}

	jan := schema[3]
	if jan.Header != "Jan" || len(jan.Children) != 4 {
		t.Fatalf("jan group = %+v", jan)
	}
	w1 := jan.Children[0]
	if w1.Header != "W1" || len(w1.Children) != 4 {
		t.Fatalf("w1 group = %+v", w1)
	}

	wantLeaves := []struct {
		header   string
		editable bool
		tiered   bool
	}{
		{"Sales Units", true, false},
		{"Sales $", false, false},
		{"GM $", false, false},
		{"GM %", false, true},
	}
	for i, want := range wantLeaves {
		leaf := w1.Children[i]
		if leaf.Header != want.header || leaf.Editable != want.editable || leaf.Tiered != want.tiered || leaf.WeekID != "w1" {
			t.Errorf("leaf %d = %+v", i, leaf)
		}
	}

	if leaves := domain.Leaves(schema); len(leaves) != 3+16*4 {
		t.Errorf("leaf count = %d, want %d", len(leaves), 3+16*4)
	}
}

func TestCellValue(t *testing.T) {
	row := BuildRows(
		[]domain.Store{storeA},
		[]domain.SKU{prod},
		[]domain.UnitEntry{{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 5}},
		BuildCalendar(),
	)[0]
	leaves := domain.Leaves(BuildColumnSchema(BuildCalendar()))

	want := []any{"A", "Prod", "C1", 5, 50.0, 30.0, 60.0}
	for i, w := range want {
		if got := CellValue(row, leaves[i]); got != w {
			t.Errorf("CellValue(%s) = %v, want %v", leaves[i].ID, got, w)
		}
	}

	if tier, ok := CellTier(row, leaves[6]); !ok || tier != domain.TierTarget {
		t.Errorf("CellTier = %s %v", tier, ok)
	}
	if _, ok := CellTier(row, leaves[4]); ok {
		t.Error("sales leaf should not be tier-tagged")
	}
}

func TestGMPercentNegativeMargin(t *testing.T) {
	sku := domain.SKU{ID: "P", Price: 4, Cost: 10}
	sales := SalesDollars(2, sku)
	gm := GMDollars(2, sku)

	if got := GMPercent(sales, gm); got != -150 {
		t.Errorf("gm%% = %v, want -150", got)
	}
}

func TestWeeklySeries(t *testing.T) {
	calendar := BuildCalendarN([]string{"Jan"}, 2)
	stores := []domain.Store{storeA, {ID: "S2", Name: "B"}}
	rows := BuildRows(stores, []domain.SKU{prod}, []domain.UnitEntry{
		{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 5},
		{StoreID: "S2", SKUID: "P1", WeekID: "w1", Units: 5},
	}, calendar)

	all := WeeklySeries(rows, calendar, "")
	if len(all) != 2 {
		t.Fatalf("points = %d, want 2", len(all))
	}
	if all[0].Units != 10 || all[0].SalesDollars != 100 || all[0].GMDollars != 60 || all[0].GMPercent != 60 {
		t.Errorf("w1 = %+v", all[0])
	}
	if all[1].SalesDollars != 0 || all[1].GMPercent != 0 || all[1].Tier != domain.TierCritical {
		t.Errorf("w2 = %+v", all[1])
	}

	one := WeeklySeries(rows, calendar, "S2")
	if one[0].Units != 5 {
		t.Errorf("S2 w1 units = %d, want 5", one[0].Units)
	}
}

func TestFlatten(t *testing.T) {
	calendar := BuildCalendarN([]string{"Jan"}, 2)
	schema := BuildColumnSchema(calendar)
	rows := BuildRows([]domain.Store{storeA}, []domain.SKU{prod}, []domain.UnitEntry{
		{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 5},
	}, calendar)

	header, records := Flatten(rows, schema, ExportOptions{})
	wantHeader := []string{
		"Store", "SKU", "SKU Code",
		"Jan W1 Sales Units", "Jan W1 Sales $", "Jan W1 GM $", "Jan W1 GM %",
		"Jan W2 Sales Units", "Jan W2 Sales $", "Jan W2 GM $", "Jan W2 GM %",
	}
	if !reflect.DeepEqual(header, wantHeader) {
		t.Fatalf("header = %v", header)
	}

	sparse := []string{"A", "Prod", "C1", "5", "50.00", "30.00", "60.0", "", "", "", ""}
	if !reflect.DeepEqual(records[0], sparse) {
		t.Errorf("sparse record = %v", records[0])
	}

	_, filled := Flatten(rows, schema, ExportOptions{FillMissingWeeks: true})
	wantFilled := []string{"A", "Prod", "C1", "5", "50.00", "30.00", "60.0", "0", "0.00", "0.00", "0.0"}
	if !reflect.DeepEqual(filled[0], wantFilled) {
		t.Errorf("filled record = %v", filled[0])
	}
}

func TestWriteCSV(t *testing.T) {
	calendar := BuildCalendarN([]string{"Jan"}, 1)
	rows := BuildRows([]domain.Store{storeA}, []domain.SKU{prod}, []domain.UnitEntry{
		{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 2},
	}, calendar)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows, BuildColumnSchema(calendar), ExportOptions{}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 2 || records[1][3] != "2" || records[1][4] != "20.00" {
		t.Errorf("records = %v", records)
	}
}

func TestWriteXLSX(t *testing.T) {
	calendar := BuildCalendarN([]string{"Jan"}, 1)
	rows := BuildRows([]domain.Store{storeA}, []domain.SKU{prod}, []domain.UnitEntry{
		{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 2},
	}, calendar)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, rows, BuildColumnSchema(calendar), ExportOptions{}); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue(exportSheet, "D1")
	if err != nil || header != "Jan W1 Sales Units" {
		t.Errorf("D1 = %q (%v)", header, err)
	}
	store, _ := f.GetCellValue(exportSheet, "A2")
	if store != "A" {
		t.Errorf("A2 = %q, want A", store)
	}
	units, _ := f.GetCellValue(exportSheet, "D2")
	if units != "2" {
		t.Errorf("D2 = %q, want 2", units)
	}
}

func TestSnapshotSetUnits(t *testing.T) {
	calendar := BuildCalendar()
	snap := NewSnapshot(calendar)
	snap.Replace(BuildRows([]domain.Store{storeA}, []domain.SKU{prod}, []domain.UnitEntry{
		{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 5},
	}, calendar))

	tests := []struct {
		name    string
		rowID   string
		weekID  string
		units   int
		wantErr error
	}{
		{"valid edit", "S1_P1", "w2", 12, nil},
		{"negative", "S1_P1", "w2", -1, ErrNegativeUnits},
		{"unknown week", "S1_P1", "w99", 1, ErrUnknownWeek},
		{"unknown row", "S9_P1", "w1", 1, ErrRowNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := snap.SetUnits(tt.rowID, tt.weekID, tt.units)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && row.Units[tt.weekID] != tt.units {
				t.Errorf("units = %d, want %d", row.Units[tt.weekID], tt.units)
			}
		})
	}

	row, err := snap.Row("S1_P1")
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if row.Units["w2"] != 12 || WeekMetrics(row, "w2").SalesDollars != 120 {
		t.Errorf("edited row = %+v", row)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	calendar := BuildCalendar()
	built := BuildRows([]domain.Store{storeA}, []domain.SKU{prod}, []domain.UnitEntry{
		{StoreID: "S1", SKUID: "P1", WeekID: "w1", Units: 5},
	}, calendar)

	snap := NewSnapshot(calendar)
	snap.Replace(built)

	built[0].Units["w1"] = 99
	rows := snap.Rows()
	rows[0].Units["w1"] = 42

	if got, _ := snap.Row("S1_P1"); got.Units["w1"] != 5 {
		t.Errorf("snapshot leaked mutation: w1 = %d", got.Units["w1"])
	}
	if snap.LoadedAt().IsZero() {
		t.Error("LoadedAt not set by Replace")
	}
}

func rowIDs(rows []domain.PlanningRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func byID(rows []domain.PlanningRow) map[string]domain.PlanningRow {
	out := make(map[string]domain.PlanningRow, len(rows))
	for _, r := range rows {
		out[r.ID] = r
	}
	return out
}

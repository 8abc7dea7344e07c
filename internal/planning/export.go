package planning

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nktomer45/planboard/internal/domain"
)

const exportSheet = "Planning"

// ExportOptions control how the sparse unit map is flattened.
type ExportOptions struct {
	// FillMissingWeeks writes weeks without an entry as zeros instead of
	// leaving their cells blank.
	FillMissingWeeks bool
}

// Table is a flattened planning grid: one record per row, one column per
// schema leaf. Blank cells are nil.
type Table struct {
	Header []string
	Values [][]any
}

// FlattenTable walks the schema leaves for every row.
func FlattenTable(rows []domain.PlanningRow, schema []domain.ColumnNode, opts ExportOptions) Table {
	leaves := domain.Leaves(schema)

	t := Table{
		Header: leafHeaders(schema),
		Values: make([][]any, 0, len(rows)),
	}

	for _, row := range rows {
		record := make([]any, len(leaves))
		for i, leaf := range leaves {
			if leaf.WeekID != "" && !opts.FillMissingWeeks {
				if _, ok := row.Units[leaf.WeekID]; !ok {
					continue
				}
			}
			record[i] = CellValue(row, leaf)
		}
		t.Values = append(t.Values, record)
	}

	return t
}

// Flatten returns the table as strings, ready for a delimited writer.
func Flatten(rows []domain.PlanningRow, schema []domain.ColumnNode, opts ExportOptions) ([]string, [][]string) {
	t := FlattenTable(rows, schema, opts)
	leaves := domain.Leaves(schema)

	records := make([][]string, len(t.Values))
	for i, values := range t.Values {
		record := make([]string, len(values))
		for j, v := range values {
			record[j] = formatExportValue(v, leaves[j].Format)
		}
		records[i] = record
	}

	return t.Header, records
}

// leafHeaders joins the group path of every leaf, e.g. "Jan W1 Sales Units".
func leafHeaders(schema []domain.ColumnNode) []string {
	var out []string
	var walk func(nodes []domain.ColumnNode, prefix []string)
	walk = func(nodes []domain.ColumnNode, prefix []string) {
		for _, n := range nodes {
			path := append(append([]string{}, prefix...), n.Header)
			if n.IsLeaf() {
				out = append(out, strings.Join(path, " "))
				continue
			}
			walk(n.Children, path)
		}
	}
	walk(schema, nil)

	return out
}

func formatExportValue(v any, format domain.ColumnFormat) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		if format == domain.FormatPercent {
			return strconv.FormatFloat(val, 'f', 1, 64)
		}
		return strconv.FormatFloat(val, 'f', 2, 64)
	default:
		return fmt.Sprint(val)
	}
}

// WriteCSV writes the flattened grid as CSV.
func WriteCSV(w io.Writer, rows []domain.PlanningRow, schema []domain.ColumnNode, opts ExportOptions) error {
	header, records := Flatten(rows, schema, opts)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv records: %w", err)
	}

	return nil
}

// WriteXLSX writes the flattened grid as a single-sheet workbook with the
// header row and identity columns frozen.
func WriteXLSX(w io.Writer, rows []domain.PlanningRow, schema []domain.ColumnNode, opts ExportOptions) error {
	t := FlattenTable(rows, schema, opts)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style xlsx header: %w", err)
	}

	for i, values := range t.Values {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		record := values
		if err := f.SetSheetRow(exportSheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write xlsx row %d: %w", i+1, err)
		}
	}

	pinned := 0
	for _, n := range schema {
		if n.Pinned {
			pinned++
		}
	}
	if pinned > 0 {
		topLeft, err := excelize.CoordinatesToCellName(pinned+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetPanes(exportSheet, &excelize.Panes{
			Freeze:      true,
			XSplit:      pinned,
			YSplit:      1,
			TopLeftCell: topLeft,
			ActivePane:  "bottomRight",
		}); err != nil {
			return fmt.Errorf("failed to freeze identity columns: %w", err)
		}
		if err := f.SetColWidth(exportSheet, "A", "B", 24); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}

	return nil
}

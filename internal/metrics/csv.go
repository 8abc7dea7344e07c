package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nktomer45/planboard/internal/domain"
)

// ErrMissingColumn is returned when a CSV lacks a value1 or value2 column.
var ErrMissingColumn = errors.New("missing required column")

// ReadRawRows reads rows from a CSV with a header naming dim1, dim2, value1
// and value2 in any order and case. Dimension columns are optional. Values
// are kept as strings and coerced on derivation.
func ReadRawRows(r io.Reader) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.RawRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"value1", "value2"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]domain.RawRow, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		rows = append(rows, domain.RawRow{
			Dim1:   field(record, "dim1"),
			Dim2:   field(record, "dim2"),
			Value1: field(record, "value1"),
			Value2: field(record, "value2"),
		})
	}

	return rows, nil
}

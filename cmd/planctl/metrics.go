package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/nktomer45/planboard/internal/domain"
	"github.com/nktomer45/planboard/internal/metrics"
)

func runMetrics(c *cli.Context) error {
	file, err := os.Open(c.String("in"))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.String("in"), err)
	}
	defer file.Close()

	raws, err := metrics.ReadRawRows(file)
	if err != nil {
		return err
	}

	result := metrics.Calculate(raws)

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DIM1\tDIM2\tVALUE1\tVALUE2\tSUM\tPRODUCT\tRATIO\tFLAGS")
	for i, row := range result.Rows {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%s\t%s\n",
			row.Dim1, row.Dim2, row.Value1, row.Value2, row.Sum, row.Product,
			metrics.FormatRatio(row.Ratio), flags(result.Hints[i]))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer)
	for _, col := range []domain.Column{domain.ColumnValue1, domain.ColumnValue2} {
		s, ok := result.Summaries[col]
		if !ok {
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s: min=%g max=%g avg=%.2f median=%g std_dev=%.2f\n",
			col, s.Min, s.Max, s.Avg, s.Median, s.StdDev)
	}

	return nil
}

// flags lists the non-empty hints of a row as "column:hint" pairs.
func flags(hints domain.RowHints) string {
	var out []string
	for _, col := range domain.DerivedColumns {
		if h := hints[col]; h != domain.HintNone && h != "" {
			out = append(out, string(col)+":"+string(h))
		}
	}
	return strings.Join(out, " ")
}

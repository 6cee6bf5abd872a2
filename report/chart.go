package report

import (
	"fmt"
	"io"

	"github.com/Leosirius2597/dwave-factor/factor"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders the valid candidates as a standalone HTML bar chart of
// occurrence percentages.
func WriteChart(w io.Writer, rs *factor.ResultSet) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Factor candidates",
			Subtitle: fmt.Sprintf("%d total reads", rs.TotalReads),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "percentage of reads",
		}),
	)

	var labels []string
	var values []opts.BarData
	for _, c := range rs.Candidates {
		if !c.Valid {
			continue
		}
		labels = append(labels, fmt.Sprintf("(%d,%d)", c.A, c.B))
		values = append(values, opts.BarData{Value: c.PercentageOfReads})
	}
	bar.SetXAxis(labels).AddSeries("occurrences", values)

	return bar.Render(w)
}

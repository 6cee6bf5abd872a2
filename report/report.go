// Package report renders an aggregated factoring result. The text table
// shows valid candidates only: invalid pairs are noise from an imperfect
// oracle and stay out of the rendered report, while remaining available on
// the ResultSet for inspection.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Leosirius2597/dwave-factor/factor"
)

const (
	header = "Factors    Valid?  Percentage of Occurrences"
	scale  = "0         50        100"

	// column offset of "Percentage" in the header; the scale line and the
	// proportional bars hang under it
	scaleOffset = 19

	// width of the bar area: bars never run past the separator rule
	availableWidth = 21
)

// Write renders the result set as the canonical text report.
func Write(w io.Writer, rs *factor.ResultSet) error {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", scaleOffset))
	sb.WriteString(scale)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("-", len(header)))
	sb.WriteByte('\n')

	for _, c := range rs.Candidates {
		if !c.Valid {
			continue
		}
		pct := int(math.Round(c.PercentageOfReads))
		nbars := int(math.Round(c.PercentageOfReads / 100 * availableWidth))
		fmt.Fprintf(&sb, "(%3d,%3d)   Yes    %3d %s\n", c.A, c.B, pct, strings.Repeat("*", nbars))
	}

	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "QPU processing time: %.3f ms\n", float64(rs.OracleTimeMicros)/1000)
	fmt.Fprintf(&sb, "Total reads: %d\n", rs.TotalReads)

	_, err := io.WriteString(w, sb.String())
	return err
}

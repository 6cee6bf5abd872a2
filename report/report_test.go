package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Leosirius2597/dwave-factor/factor"
	"github.com/stretchr/testify/require"
)

func TestWriteGolden(t *testing.T) {
	assert := require.New(t)

	rs := &factor.ResultSet{
		Candidates: []factor.FactorCandidate{
			{A: 2, B: 2, Product: 4, Valid: true, Occurrences: 700, PercentageOfReads: 70},
			{A: 1, B: 3, Product: 4, Valid: false, Occurrences: 300, PercentageOfReads: 30},
		},
		TotalReads:       1000,
		OracleTimeMicros: 164500,
	}

	var buf bytes.Buffer
	assert.NoError(Write(&buf, rs))

	want := strings.Join([]string{
		"Factors    Valid?  Percentage of Occurrences",
		"                   0         50        100",
		"--------------------------------------------",
		"(  2,  2)   Yes     70 ***************",
		"",
		"QPU processing time: 164.500 ms",
		"Total reads: 1000",
		"",
	}, "\n")
	assert.Equal(want, buf.String())
}

func TestWriteFiltersInvalid(t *testing.T) {
	assert := require.New(t)

	rs := &factor.ResultSet{
		Candidates: []factor.FactorCandidate{
			{A: 5, B: 5, Product: 6, Valid: false, Occurrences: 10, PercentageOfReads: 100},
		},
		TotalReads:       10,
		OracleTimeMicros: 1000,
	}
	var buf bytes.Buffer
	assert.NoError(Write(&buf, rs))
	assert.NotContains(buf.String(), "(  5,  5)")
	assert.Contains(buf.String(), "Total reads: 10")
}

func TestWriteBarProportions(t *testing.T) {
	assert := require.New(t)

	rs := &factor.ResultSet{
		Candidates: []factor.FactorCandidate{
			{A: 2, B: 3, Valid: true, Occurrences: 500, PercentageOfReads: 50},
			{A: 3, B: 2, Valid: true, Occurrences: 500, PercentageOfReads: 50},
		},
		TotalReads: 1000,
	}
	var buf bytes.Buffer
	assert.NoError(Write(&buf, rs))

	// 50% of a 21-column bar area rounds to 11 stars
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "(") {
			assert.Equal(11, strings.Count(line, "*"))
		}
	}
}

func TestWriteChart(t *testing.T) {
	assert := require.New(t)

	rs := &factor.ResultSet{
		Candidates: []factor.FactorCandidate{
			{A: 2, B: 3, Valid: true, Occurrences: 500, PercentageOfReads: 50},
		},
		TotalReads: 1000,
	}
	var buf bytes.Buffer
	assert.NoError(WriteChart(&buf, rs))
	assert.Contains(buf.String(), "(2,3)")
}

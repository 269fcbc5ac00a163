package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lblanes25/tabvalid/internal/dataset"
)

func boolCol(vals ...dataset.Value) *dataset.Column {
	return dataset.NewColumn("", vals)
}

func TestAggregateRowsAllTrueIsGC(t *testing.T) {
	cols := []*dataset.Column{
		boolCol(dataset.Bool(true), dataset.Bool(true)),
		boolCol(dataset.Bool(true), dataset.Bool(true)),
	}
	got := AggregateRows(cols, 2)
	assert.Equal(t, []Verdict{GC, GC}, got)
}

func TestAggregateRowsAllFalseIsDNC(t *testing.T) {
	cols := []*dataset.Column{
		boolCol(dataset.Bool(false)),
		boolCol(dataset.Bool(false)),
	}
	got := AggregateRows(cols, 1)
	assert.Equal(t, []Verdict{DNC}, got)
}

func TestAggregateRowsMixedIsPC(t *testing.T) {
	cols := []*dataset.Column{
		boolCol(dataset.Bool(true)),
		boolCol(dataset.Bool(false)),
	}
	got := AggregateRows(cols, 1)
	assert.Equal(t, []Verdict{PC}, got)
}

func TestAggregateRowsMissingIsPC(t *testing.T) {
	cols := []*dataset.Column{
		boolCol(dataset.Bool(true)),
		boolCol(dataset.Missing()),
	}
	got := AggregateRows(cols, 1)
	assert.Equal(t, []Verdict{PC}, got)
}

// TestAggregatorMonotonicity checks how a uniform extra rule moves
// verdicts: a uniformly-true rule leaves GC and PC rows unchanged and
// turns a DNC row (every rule false) into PC; a uniformly-false rule
// turns every GC into PC and leaves DNC unchanged.
func TestAggregatorMonotonicity(t *testing.T) {
	base := []*dataset.Column{
		boolCol(dataset.Bool(true), dataset.Bool(false), dataset.Bool(true)),
		boolCol(dataset.Bool(true), dataset.Bool(false), dataset.Bool(false)),
	}
	before := AggregateRows(base, 3)

	withTrueRule := append(append([]*dataset.Column{}, base...), boolCol(dataset.Bool(true), dataset.Bool(true), dataset.Bool(true)))
	afterTrue := AggregateRows(withTrueRule, 3)
	for i, v := range before {
		if v == DNC {
			assert.Equal(t, PC, afterTrue[i])
		} else {
			assert.Equal(t, v, afterTrue[i])
		}
	}

	withFalseRule := append(append([]*dataset.Column{}, base...), boolCol(dataset.Bool(false), dataset.Bool(false), dataset.Bool(false)))
	afterFalse := AggregateRows(withFalseRule, 3)
	for i, v := range before {
		if v == GC {
			assert.Equal(t, PC, afterFalse[i])
		} else if v == DNC {
			assert.Equal(t, DNC, afterFalse[i])
		}
	}
}

func TestScenarioS5Aggregation(t *testing.T) {
	keys := make([]string, 0, 100)
	verdicts := make([]Verdict, 0, 100)

	// Group A: 40 rows, 38 GC, 2 DNC.
	for i := 0; i < 38; i++ {
		keys = append(keys, "A")
		verdicts = append(verdicts, GC)
	}
	for i := 0; i < 2; i++ {
		keys = append(keys, "A")
		verdicts = append(verdicts, DNC)
	}
	// Group B: 60 rows, 50 GC, 10 DNC.
	for i := 0; i < 50; i++ {
		keys = append(keys, "B")
		verdicts = append(verdicts, GC)
	}
	for i := 0; i < 10; i++ {
		keys = append(keys, "B")
		verdicts = append(verdicts, DNC)
	}

	report := Group(keys, verdicts, 5.0)
	require.Len(t, report.Groups, 2)

	a := report.Groups[0]
	assert.Equal(t, "A", a.Key)
	assert.Equal(t, 40, a.Total)
	assert.InDelta(t, 5.0, a.DNCPercentage, 0.001)
	assert.False(t, a.Exceeded, "5.0%% at a 5%% threshold must pass")

	b := report.Groups[1]
	assert.Equal(t, "B", b.Key)
	assert.InDelta(t, 16.6666, b.DNCPercentage, 0.001)
	assert.True(t, b.Exceeded)

	assert.Equal(t, DNC, report.Overall)
}

func TestGrouperConservation(t *testing.T) {
	keys := []string{"A", "B", "A", "A", "B"}
	verdicts := []Verdict{GC, PC, DNC, GC, GC}
	report := Group(keys, verdicts, 10)

	sum := 0
	for _, g := range report.Groups {
		sum += g.Total
		assert.Equal(t, g.Total, g.GC+g.PC+g.DNC)
	}
	assert.Equal(t, len(keys), sum)
}

func TestEmptyDatasetOverallVerdictIsGC(t *testing.T) {
	report := Group(nil, nil, 5)
	assert.Empty(t, report.Groups)
	assert.Equal(t, GC, report.Overall)
}

func TestGroupInsertionOrderPreserved(t *testing.T) {
	keys := []string{"Z", "A", "Z", "M"}
	verdicts := []Verdict{GC, GC, GC, GC}
	report := Group(keys, verdicts, 10)
	got := make([]string, len(report.Groups))
	for i, g := range report.Groups {
		got[i] = g.Key
	}
	assert.Equal(t, []string{"Z", "A", "M"}, got)
}

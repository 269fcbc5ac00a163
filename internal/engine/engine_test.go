package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lblanes25/tabvalid/internal/config"
	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/rules"
)

func buildConfig() *config.Configuration {
	return &config.Configuration{
		AnalyticID:   "AN-1",
		AnalyticName: "Segregation test",
		DataSource:   config.DataSource{RequiredColumns: []string{"Submitter", "Approver", "Region"}},
		Validations: []config.RuleDescriptor{
			{
				Rule:        "segregation_of_duties",
				Description: "submitter differs from approver",
				Parameters: map[string]any{
					"submitter_field": "Submitter",
					"approver_fields": []any{"Approver"},
				},
			},
		},
		Thresholds: config.Thresholds{ErrorPercentage: 5},
		Reporting:  config.Reporting{GroupBy: "Region"},
	}
}

func buildDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(
		dataset.NewColumn("Submitter", []dataset.Value{dataset.Str("X"), dataset.Str("X")}),
		dataset.NewColumn("Approver", []dataset.Value{dataset.Str("Y"), dataset.Str("X")}),
		dataset.NewColumn("Region", []dataset.Value{dataset.Str("East"), dataset.Str("East")}),
	)
	require.NoError(t, err)
	return ds
}

func TestEngineRunProducesVerdicts(t *testing.T) {
	e := New(rules.NewRegistry(), nil, nil)
	result, err := e.Run(context.Background(), buildConfig(), buildDataset(t), time.Now())
	require.NoError(t, err)
	require.Len(t, result.Verdicts, 2)
	require.Len(t, result.Report.Groups, 1)
	assert.Equal(t, "East", result.Report.Groups[0].Key)
}

func TestEngineRunFatalRuleErrorBecomesMissingNotAbort(t *testing.T) {
	cfg := buildConfig()
	cfg.Validations[0].Parameters["approver_fields"] = []any{"DoesNotExist"}

	e := New(rules.NewRegistry(), nil, nil)
	result, err := e.Run(context.Background(), cfg, buildDataset(t), time.Now())
	require.NoError(t, err, "a rule-level failure must not abort the analytic")
	require.NotNil(t, result.Rules[0].Err)
	for _, v := range result.Verdicts {
		assert.Equal(t, "PC", v.String(), "a missing rule contribution must yield PC, not abort the run")
	}
}

func TestEngineRunMany(t *testing.T) {
	e := New(rules.NewRegistry(), nil, nil)
	jobs := []Job{
		{Config: buildConfig(), Dataset: buildDataset(t)},
		{Config: buildConfig(), Dataset: buildDataset(t)},
	}
	results, err := e.RunMany(context.Background(), jobs, time.Now())
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Len(t, r.Verdicts, 2)
	}
}

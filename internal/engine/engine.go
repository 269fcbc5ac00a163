// Package engine orchestrates one analytic run end to end: resolving
// each configured validation rule, aggregating per-row verdicts,
// grouping, and judging against the configured threshold.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lblanes25/tabvalid/internal/aggregate"
	"github.com/lblanes25/tabvalid/internal/config"
	"github.com/lblanes25/tabvalid/internal/dataset"
	"github.com/lblanes25/tabvalid/internal/eval"
	"github.com/lblanes25/tabvalid/internal/lang"
	"github.com/lblanes25/tabvalid/internal/rules"
	"github.com/lblanes25/tabvalid/internal/telemetry"
)

// RuleOutcome records what happened evaluating one configured rule:
// either a Boolean column, or a fatal error that downgrades that rule's
// contribution to missing at every row.
type RuleOutcome struct {
	Rule        string
	Description string
	Column      *dataset.Column
	Warnings    []eval.Warning
	Err         error
}

// Result is the outcome of one complete analytic run.
type Result struct {
	AnalyticID string
	RunID      string
	Rules      []RuleOutcome
	Verdicts   []aggregate.Verdict
	Report     aggregate.Report
	Warnings   []eval.Warning
}

// Engine runs analytics against datasets using a shared rule registry.
// An Engine holds no per-run mutable state, so the same instance can
// drive many concurrent runs safely.
type Engine struct {
	Registry  *rules.Registry
	Telemetry *telemetry.Provider
	Logger    *slog.Logger
}

// New builds an Engine. A nil logger is replaced with slog.Default(); a
// nil telemetry provider turns off spans and metrics for every run, so
// callers may omit collaborators they don't need.
func New(registry *rules.Registry, tp *telemetry.Provider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Registry: registry, Telemetry: tp, Logger: logger}
}

// Run evaluates every validation in cfg against ds and returns the
// aggregated, grouped, threshold-judged result. cfg must already have
// passed Configuration.Validate; Run does not re-check structural
// invariants.
func (e *Engine) Run(ctx context.Context, cfg *config.Configuration, ds *dataset.Dataset, now time.Time) (*Result, error) {
	runID := uuid.NewString()
	logger := e.Logger.With("analytic_id", cfg.AnalyticID, "run_id", runID)

	start := time.Now()

	if e.Telemetry != nil {
		var endSpan func()
		ctx, endSpan = e.startRunSpan(ctx, cfg.AnalyticID)
		defer endSpan()
	}

	ruleCtx := rules.Context{Cache: lang.NewCache(), Now: now}
	outcomes := make([]RuleOutcome, len(cfg.Validations))
	cols := make([]*dataset.Column, 0, len(cfg.Validations))
	var warnings []eval.Warning

	for i, v := range cfg.Validations {
		fn, ok := e.Registry.Lookup(v.Rule)
		if !ok {
			return nil, fmt.Errorf("engine: rule %q resolved to nothing despite passing validation", v.Rule)
		}

		var endRuleSpan func()
		if e.Telemetry != nil {
			_, endRuleSpan = e.startRuleSpan(ctx, v.Rule)
		}

		col, ruleWarnings, err := fn(ds, rules.Params(v.Parameters), ruleCtx)
		if endRuleSpan != nil {
			endRuleSpan()
		}
		outcome := RuleOutcome{Rule: v.Rule, Description: v.Description, Warnings: ruleWarnings}
		if err != nil {
			logger.Warn("rule evaluation failed, treating as missing for every row",
				"rule", v.Rule, "error", err)
			if e.Telemetry != nil {
				e.Telemetry.RecordRuleError(ctx, v.Rule)
			}
			outcome.Err = err
			col = dataset.Broadcast("", dataset.ErrorValue(), ds.Len())
		}
		outcome.Column = col
		outcomes[i] = outcome
		cols = append(cols, col)
		warnings = append(warnings, ruleWarnings...)
	}

	verdicts := aggregate.AggregateRows(cols, ds.Len())

	groupCol, ok := ds.Column(cfg.Reporting.GroupBy)
	if !ok {
		return nil, fmt.Errorf("engine: group-by column %q not found in dataset", cfg.Reporting.GroupBy)
	}
	groupKeys := make([]string, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		groupKeys[i] = groupCol.At(i).String()
	}

	report := aggregate.Group(groupKeys, verdicts, cfg.Thresholds.ErrorPercentage)

	if e.Telemetry != nil {
		e.Telemetry.RecordRunDuration(ctx, cfg.AnalyticID, time.Since(start).Seconds())
	}

	return &Result{
		AnalyticID: cfg.AnalyticID,
		RunID:      runID,
		Rules:      outcomes,
		Verdicts:   verdicts,
		Report:     report,
		Warnings:   warnings,
	}, nil
}

func (e *Engine) startRunSpan(ctx context.Context, analyticID string) (context.Context, func()) {
	newCtx, span := e.Telemetry.StartRun(ctx, analyticID)
	return newCtx, func() { span.End() }
}

func (e *Engine) startRuleSpan(ctx context.Context, rule string) (context.Context, func()) {
	newCtx, span := e.Telemetry.StartRule(ctx, rule)
	return newCtx, func() { span.End() }
}

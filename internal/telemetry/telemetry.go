// Package telemetry wraps the OpenTelemetry collaborators (a Meter and
// a Tracer) the engine uses to emit metrics and spans, so the rest of
// the module depends on a small local interface rather than importing
// the OTel API directly everywhere a span or counter is needed.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Provider bundles the instruments the engine emits during a run. The
// zero value is not usable; construct with New. When no SDK MeterProvider
// or TracerProvider has been registered globally, the OTel API's default
// no-op implementations make every call here a harmless no-op.
type Provider struct {
	tracer trace.Tracer

	runsTotal   metric.Int64Counter
	rulesTotal  metric.Int64Counter
	ruleErrors  metric.Int64Counter
	runDuration metric.Float64Histogram
}

// New builds a Provider backed by the global OTel meter and tracer
// providers, under the instrumentation name "tabvalid".
func New() (*Provider, error) {
	meter := otel.Meter("tabvalid")

	runsTotal, err := meter.Int64Counter("tabvalid.runs.total",
		metric.WithDescription("analytic runs started"))
	if err != nil {
		return nil, err
	}
	rulesTotal, err := meter.Int64Counter("tabvalid.rules.total",
		metric.WithDescription("rule evaluations performed"))
	if err != nil {
		return nil, err
	}
	ruleErrors, err := meter.Int64Counter("tabvalid.rules.errors",
		metric.WithDescription("rule evaluations that failed fatally"))
	if err != nil {
		return nil, err
	}
	runDuration, err := meter.Float64Histogram("tabvalid.run.duration_seconds",
		metric.WithDescription("wall-clock duration of one analytic run"))
	if err != nil {
		return nil, err
	}

	return &Provider{
		tracer:      otel.Tracer("tabvalid"),
		runsTotal:   runsTotal,
		rulesTotal:  rulesTotal,
		ruleErrors:  ruleErrors,
		runDuration: runDuration,
	}, nil
}

// StartRun opens a span covering one analytic run and records the start
// in the runs-total counter.
func (p *Provider) StartRun(ctx context.Context, analyticID string) (context.Context, trace.Span) {
	p.runsTotal.Add(ctx, 1)
	return p.tracer.Start(ctx, "analytic.run", trace.WithAttributes(
		attribute.String("analytic_id", analyticID),
	))
}

// StartRule opens a child span covering one rule's evaluation.
func (p *Provider) StartRule(ctx context.Context, rule string) (context.Context, trace.Span) {
	p.rulesTotal.Add(ctx, 1)
	return p.tracer.Start(ctx, "rule.evaluate", trace.WithAttributes(
		attribute.String("rule", rule),
	))
}

// RecordRuleError increments the rule-error counter.
func (p *Provider) RecordRuleError(ctx context.Context, rule string) {
	p.ruleErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("rule", rule)))
}

// RecordRunDuration records how long one analytic run took, in seconds.
func (p *Provider) RecordRunDuration(ctx context.Context, analyticID string, seconds float64) {
	p.runDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("analytic_id", analyticID)))
}

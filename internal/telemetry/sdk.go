package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitGlobal installs SDK-backed tracer and meter providers as the OTel
// API's global defaults, so every Provider built with New afterward (in
// this process) records real spans and instrument readings instead of
// relying on the API's no-op fallback. No exporter is registered, so the
// collected spans and readings stay inside the process.
//
// InitGlobal returns a shutdown func that flushes and releases both
// providers; callers should defer it.
func InitGlobal() (shutdown func(context.Context) error, err error) {
	tp := sdktrace.NewTracerProvider()
	mp := sdkmetric.NewMeterProvider()

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	return func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return err
		}
		return mp.Shutdown(ctx)
	}, nil
}

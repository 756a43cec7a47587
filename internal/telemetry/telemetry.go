// Package telemetry centralizes the logger, tracer, and meter handles
// shared across the engine, so packages depend on one small surface
// instead of wiring otel/logr themselves.
package telemetry

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/hailam/minishogi"

var log logr.Logger = stdr.New(nil)

// SetLogger overrides the package-level logger, letting a caller swap in
// its own logr backend (e.g. a structured production logger) instead of
// the stdr default.
func SetLogger(l logr.Logger) { log = l }

// Logger returns the active logr.Logger.
func Logger() logr.Logger { return log }

// Tracer returns the engine's otel tracer, backed by whatever global
// TracerProvider the host process has configured (a no-op tracer if
// none has).
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Meter returns the engine's otel meter.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// StartSpan is a thin convenience wrapper so call sites don't repeat
// Tracer().Start(ctx, name) everywhere.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name)
}

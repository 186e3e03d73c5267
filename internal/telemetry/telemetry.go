// Package telemetry installs tracing for the CLI. Spans are written to the
// process logger; nothing leaves the machine.
package telemetry

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup registers a global tracer provider when enabled. The returned
// shutdown function flushes pending spans and should be deferred by the
// caller.
func Setup(enabled bool, serviceName string, logger *log.Logger) (shutdown func(context.Context) error) {
	if !enabled {
		return func(context.Context) error { return nil }
	}

	tp := NewProvider(NewLogExporter(logger), serviceName)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

// NewProvider exports every span synchronously through exporter.
func NewProvider(exporter sdktrace.SpanExporter, serviceName string) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(resource.NewSchemaless(semconv.ServiceName(serviceName))),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
}

type LogExporter struct {
	logger *log.Logger
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)

func NewLogExporter(logger *log.Logger) *LogExporter {
	if logger == nil {
		logger = log.Default()
	}
	return &LogExporter{logger: logger}
}

func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, span := range spans {
		e.logger.Print(FormatSpan(span))
	}
	return nil
}

func (e *LogExporter) Shutdown(context.Context) error {
	return nil
}

// FormatSpan renders a span as one line: name, duration, status, and sorted
// attributes.
func FormatSpan(span sdktrace.ReadOnlySpan) string {
	attrs := make([]string, 0, len(span.Attributes()))
	for _, kv := range span.Attributes() {
		attrs = append(attrs, fmt.Sprintf("%s=%s", kv.Key, kv.Value.Emit()))
	}
	sort.Strings(attrs)

	line := fmt.Sprintf("span %s %s %s", span.Name(), span.EndTime().Sub(span.StartTime()), span.Status().Code)
	if desc := span.Status().Description; desc != "" {
		line += fmt.Sprintf(" %q", desc)
	}
	if len(attrs) > 0 {
		line += " " + strings.Join(attrs, " ")
	}
	return line
}

package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func TestLogExporterWritesOneLinePerSpan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tp := NewProvider(NewLogExporter(log.New(&buf, "", 0)), "guide-test")

	_, span := tp.Tracer("test").Start(context.Background(), "session.apply")
	span.SetAttributes(attribute.String("event", "start-session"), attribute.Bool("rejected", true))
	span.SetStatus(codes.Error, "empty queue")
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))

	line := buf.String()
	assert.Contains(t, line, "span session.apply ")
	assert.Contains(t, line, `Error "empty queue"`)
	assert.Contains(t, line, "event=start-session rejected=true")
}

func TestSetupDisabledIsNoop(t *testing.T) {
	t.Parallel()

	shutdown := Setup(false, "guide", nil)
	require.NoError(t, shutdown(context.Background()))
}

func TestExportHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLogExporter(nil).ExportSpans(ctx, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

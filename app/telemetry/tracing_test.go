package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(Config{})
	require.NoError(t, err)
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderValidation(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true})
	require.ErrorContains(t, err, "endpoint")

	_, err = NewProvider(Config{Enabled: true, Endpoint: "localhost:4318", SampleRate: 1.5})
	require.ErrorContains(t, err, "sample rate")
}

func TestNewProviderEnabled(t *testing.T) {
	p, err := NewProvider(Config{Enabled: true, Endpoint: "http://localhost:4318", SampleRate: 1, Environment: "test"})
	require.NoError(t, err)
	require.NotNil(t, p.Tracer())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = p.Shutdown(ctx)
}

func TestOperationSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := tracesdk.NewTracerProvider(tracesdk.WithSyncer(exporter))

	_, span := StartOperationSpan(context.Background(), tp.Tracer("test"), "swap", "upaw/uatom")
	RecordError(span, errors.New("slippage"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "amm.swap", spans[0].Name)
	require.Equal(t, codes.Error, spans[0].Status.Code)
	require.Len(t, spans[0].Events, 1)

	RecordError(nil, errors.New("ignored"))
}

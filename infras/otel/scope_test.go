package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("booking").Start(context.Background(), "service.Create")
	scope := NewScope(span)

	scope.SetAttributes(map[string]any{
		"booking.visitors": 3,
		"place.id":         "P1",
		"retry":            true,
		"crowd.score":      0.82,
		"version":          int64(7),
		"slots":            []string{"09:00"},
		"other":            struct{ A int }{A: 1},
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("place is busy"))
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), attrs["booking.visitors"].AsInt64())
	assert.Equal(t, "P1", attrs["place.id"].AsString())
	assert.True(t, attrs["retry"].AsBool())
	assert.InDelta(t, 0.82, attrs["crowd.score"].AsFloat64(), 1e-9)
	assert.Equal(t, int64(7), attrs["version"].AsInt64())
	assert.Equal(t, []string{"09:00"}, attrs["slots"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())

	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "place is busy", ended[0].Status().Description)
}

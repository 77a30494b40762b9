package mocks

import (
	"context"
	"heritage/infras/otel"
)

type noopOtel struct{}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (noopOtel) Shutdown(context.Context) error {
	return nil
}

// NewOtel returns a tracer that opens no spans, for tests.
func NewOtel() otel.Otel {
	return noopOtel{}
}

package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextCarriers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Empty(t, RouteFromContext(ctx))
	assert.Nil(t, PathParamsFromContext(ctx))

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithTraceID(ctx, "trace-1")
	ctx = ContextWithSpanID(ctx, "span-1")
	ctx = ContextWithRoute(ctx, "/users/{id}")
	ctx = ContextWithPathParams(ctx, map[string]string{"id": "42"})

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
	assert.Equal(t, "span-1", SpanIDFromContext(ctx))
	assert.Equal(t, "/users/{id}", RouteFromContext(ctx))
	assert.Equal(t, map[string]string{"id": "42"}, PathParamsFromContext(ctx))
}

func TestElapsedTime(t *testing.T) {
	t.Parallel()

	assert.Zero(t, ElapsedTime(context.Background()))

	ctx := ContextWithStartTime(context.Background(), time.Now().Add(-time.Second))
	assert.GreaterOrEqual(t, ElapsedTime(ctx), time.Second)
}

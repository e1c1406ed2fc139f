package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithRequestID_RoundTrip(t *testing.T) {
	ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "abc-123")

	assert.Equal(t, "abc-123", GetRequestID(ctx))
	require.NotNil(t, enriched)
	assert.Same(t, enriched, FromContext(ctx))
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Empty(t, GetRequestID(context.Background()))
}

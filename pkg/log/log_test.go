package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background(), "")
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))

	ctx, id = WithCorrelationID(context.Background(), " abc-123 ")
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, "abc-123", GetCorrelationID(ctx))

	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestConfigure(t *testing.T) {
	require.NoError(t, Configure("info", "production"))
	assert.False(t, IsDevelopment())

	require.NoError(t, Configure("debug", ""))
	assert.True(t, IsDevelopment())

	assert.Error(t, Configure("barulhento", "dev"))
}

func TestIsDevelopmentField(t *testing.T) {
	assert.True(t, isDevelopmentField("keyword"))
	assert.True(t, isDevelopmentField("user_id"))
	assert.False(t, isDevelopmentField("remote_addr"))
}

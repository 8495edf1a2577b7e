package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()

	assert.True(t, setupLogger(envLocal).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(envDev).Enabled(ctx, slog.LevelDebug))
	assert.False(t, setupLogger(envProd).Enabled(ctx, slog.LevelDebug))
	assert.NotNil(t, setupLogger("staging"))
}

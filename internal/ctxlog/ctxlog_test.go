package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	require.Same(t, logger, FromContext(ctx))

	ctx, scoped := With(ctx, "task", "build")
	scoped.Info("Task started.")
	FromContext(ctx).Info("Again.")

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("task=build")))
}

func TestFromContext_MissingLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { FromContext(context.Background()) })
}

func TestDiscard(t *testing.T) {
	ctx := Discard(context.Background())
	assert.NotPanics(t, func() { FromContext(ctx).Error("dropped") })
}

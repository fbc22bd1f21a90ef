package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLevels(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv("DEBUG", "")

	var buf bytes.Buffer
	l := Setup(&buf, false)
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	slog.Debug("hidden")
	slog.Info("shown", "n", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown n=1")

	l = Setup(&buf, true)
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))

	t.Setenv("DEBUG", "1")
	l = Setup(&buf, false)
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	t.Setenv("DEBUG", "")

	var buf bytes.Buffer
	JSON(&buf)
	slog.Info("exported", "items", 2)
	assert.Contains(t, buf.String(), `"msg":"exported","items":2`)
}

package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jrazmi/tasktracker/sdk/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type traceKey struct{}

func traceID(ctx context.Context) string {
	v, _ := ctx.Value(traceKey{}).(string)
	return v
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	buf.Reset()
	return rec
}

func TestLogger_TraceID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithTraceIDFn(traceID))

	ctx := context.WithValue(context.Background(), traceKey{}, "abc-123")
	log.InfoContext(ctx, "hello", "k", "v")

	rec := decodeLine(t, &buf)
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "abc-123", rec["trace_id"])
	assert.Equal(t, "v", rec["k"])

	log.With("component", "test").InfoContext(context.Background(), "no trace")
	rec = decodeLine(t, &buf)
	assert.NotContains(t, rec, "trace_id")
	assert.Equal(t, "test", rec["component"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithLevel("warn"))

	log.InfoContext(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	log.ErrorContextf(context.Background(), "kept %d", 1)
	rec := decodeLine(t, &buf)
	assert.Equal(t, "kept 1", rec["msg"])
	assert.Equal(t, "ERROR", rec["level"])
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOGTEST_LOG_FORMAT", "text")
	t.Setenv("LOGTEST_LOG_LEVEL", "debug")

	var buf bytes.Buffer
	log, err := logger.NewFromEnv("LOGTEST", logger.WithOutput(&buf))
	require.NoError(t, err)

	log.DebugContext(context.Background(), "text line")
	assert.Contains(t, buf.String(), "msg=\"text line\"")
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewDefault(logger.WithOutput(&buf), logger.WithFormat("text"))

	log.InfoContext(context.Background(), "plain", "id", 7)
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "msg=plain")
	assert.Contains(t, buf.String(), "id=7")
}

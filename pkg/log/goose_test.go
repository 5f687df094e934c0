package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestGooseLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	g := NewGooseLoggerFromCtx(logger.WithContext(context.Background()))

	g.Printf("OK   %s (%s)\n", "00001_init.sql", "12ms")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "migrations", lines[0]["component"])
	assert.Equal(t, "OK   00001_init.sql (12ms)", lines[0]["message"])
}

func TestGooseLogger_FatalfPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	g := NewGooseLoggerFromCtx(logger.WithContext(context.Background()))

	assert.PanicsWithValue(t, "migration 00002 failed", func() {
		g.Fatalf("migration %s failed\n", "00002")
	})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "migrations", lines[0]["component"])
}

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()
	prev, wasActive := L, active.Load()
	t.Cleanup(func() {
		L = prev
		active.Store(wasActive)
		level.Set(slog.LevelInfo)
	})
}

func TestInit_DisabledDiscards(t *testing.T) {
	restore(t)
	require.NoError(t, Init(Options{Enabled: false}))
	assert.False(t, L.Enabled(context.Background(), slog.LevelError))
}

func TestInit_WritesToOutput(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Output: &buf}))

	Debug("hidden")
	Info("shown", "path", `HKCU\X`)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), `path=HKCU\X`)
}

func TestSetDebug(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Output: &buf, JSON: true}))

	SetDebug(true)
	Debug("traced", "component", "test")
	assert.Contains(t, buf.String(), `"msg":"traced"`)

	buf.Reset()
	SetDebug(false)
	Debug("quiet")
	assert.Empty(t, buf.String())
}

func TestInit_LogDir(t *testing.T) {
	restore(t)
	dir := t.TempDir()
	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	Warn("to file")

	name := logPrefix + time.Now().Format("2006-01-02") + logSuffix
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := logPrefix + "2026-01-01" + logSuffix
	fresh := logPrefix + "2026-02-25" + logSuffix
	other := "notes-2020-01-01.log"
	for _, n := range []string{old, fresh, other} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0644))
	}

	cleanOldLogs(dir, now)

	assert.NoFileExists(t, filepath.Join(dir, old))
	assert.FileExists(t, filepath.Join(dir, fresh))
	assert.FileExists(t, filepath.Join(dir, other))
}

func TestSetDebug_WithoutInitWritesToStderr(t *testing.T) {
	restore(t)
	require.NoError(t, Init(Options{Enabled: false}))
	assert.False(t, L.Enabled(context.Background(), slog.LevelDebug))

	SetDebug(true)
	assert.True(t, L.Enabled(context.Background(), slog.LevelDebug))

	SetDebug(false)
	assert.False(t, L.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, L.Enabled(context.Background(), slog.LevelInfo))
}

func TestSetDebug_KeepsInitOutput(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Output: &buf}))

	SetDebug(true)
	Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestSetDebug_OffStaysDiscarding(t *testing.T) {
	restore(t)
	require.NoError(t, Init(Options{Enabled: false}))

	SetDebug(false)
	assert.False(t, L.Enabled(context.Background(), slog.LevelError))
}

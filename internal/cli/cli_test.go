package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/exchange"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config pointing at a fresh SQLite file in dir.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "seatmap.yaml")
	content := "db:\n  path: " + filepath.Join(dir, "data", "seatmap.db") + "\n" +
		"layout:\n  default_floor: 1F\n" +
		"log:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("SEATMAP_CONFIG_PATH", "")
	root := New().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestImportExportStats(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	var buf bytes.Buffer
	require.NoError(t, exchange.Write(&buf, exchange.File{
		Crop: &floor.Crop{X: 5, Y: 6, Width: 800, Height: 600},
		Records: []furniture.Record{
			{TableID: "1F_01", Index: "1", Name: "A", Left: "10", Top: "10", Width: "2", Height: "2", Capacity: "4", Occupied: "2", Available: "true", Floor: "1F"},
			{TableID: "1F_02", Index: "2", Name: "B", Left: "50", Top: "50", Width: "2", Height: "2", Capacity: "2", Floor: "1F"},
			{TableID: "1F_01", Index: "3", Name: "dup", Left: "80", Top: "80", Width: "2", Height: "2", Capacity: "2", Floor: "1F"},
		},
	}))
	in := filepath.Join(dir, "layout.csv")
	require.NoError(t, os.WriteFile(in, buf.Bytes(), 0o644))

	out := run(t, "--config", cfgPath, "import", in)
	require.Contains(t, out, "imported 2 items")
	require.Contains(t, out, "skipped duplicate 1F_01")
	require.Contains(t, out, "crop saved for floor 1F")

	exported := filepath.Join(dir, "out", "layout.csv")
	run(t, "--config", cfgPath, "export", "-o", exported)
	f, err := os.Open(exported)
	require.NoError(t, err)
	defer f.Close()
	file, err := exchange.Read(f)
	require.NoError(t, err)
	require.Len(t, file.Records, 2)
	require.Equal(t, "1F_01", file.Records[0].TableID)
	require.NotNil(t, file.Crop)
	require.Equal(t, floor.Crop{X: 5, Y: 6, Width: 800, Height: 600}, *file.Crop)

	out = run(t, "--config", cfgPath, "stats", "--json")
	var stats furniture.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Equal(t, 2, stats.Tables)
	require.Equal(t, 6, stats.Capacity)
	require.Equal(t, 2, stats.Occupied)
	require.Equal(t, stats.Tables, stats.Empty+stats.Partial+stats.Full)

	out = run(t, "--config", cfgPath, "stats", "--available")
	require.Contains(t, out, "1F_01")
	require.NotContains(t, out, "1F_02")
}

func TestImportRejectsMissingFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir)

	t.Setenv("SEATMAP_CONFIG_PATH", "")
	root := New().RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "import", filepath.Join(dir, "nope.csv")})
	require.Error(t, root.ExecuteContext(context.Background()))
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestLogFileWriterKeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "seatmap.log")
	w, err := newLogFileWriter(path)
	require.NoError(t, err)
	w.maxSize = 64
	w.keepSize = 32

	_, err = w.Write([]byte(strings.Repeat("a", 60)))
	require.NoError(t, err)
	_, err = w.Write([]byte(strings.Repeat("b", 20)))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 32)
	require.True(t, strings.HasSuffix(string(data), strings.Repeat("b", 20)))
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	require.Equal(t, "1.2.3", version)
	require.Equal(t, "abc123", commit)

	root := New().RootCommand()
	require.Equal(t, "1.2.3", root.Version)
}

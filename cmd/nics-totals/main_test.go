// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nics-totals/internal/store"
	"github.com/pdiddy/nics-totals/pkg/types"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "usage", err: &exitError{code: exitUsage, err: errors.New("usage")}, want: 1},
		{name: "no data", err: &exitError{code: exitNoData, err: errors.New("empty")}, want: 2},
		{
			name: "wrapped exit error",
			err:  fmt.Errorf("running: %w", &exitError{code: exitNoData, err: errors.New("empty")}),
			want: 2,
		},
		{name: "other failure", err: errors.New("corrupt PDF"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRunExtractMissingArgument(t *testing.T) {
	err := runExtract(rootCmd, nil)
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.Contains(t, err.Error(), "Usage")
}

func TestRunExtractMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.pdf")

	err := runExtract(rootCmd, []string{path})
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.Contains(t, err.Error(), "absent.pdf")
}

func TestRunExtractDirectoryIsNotAFile(t *testing.T) {
	err := runExtract(rootCmd, []string{t.TempDir()})
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestRunExtractUnreadablePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	err := runExtract(rootCmd, []string{path})
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger("debug", "json", &buf)
	require.NoError(t, err)
	l.Debug("page period", "year", 2024)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "page period", rec["msg"])
	assert.EqualValues(t, 2024, rec["year"])

	buf.Reset()
	l, err = newLogger("warn", "text", &buf)
	require.NoError(t, err)
	l.Info("hidden")
	assert.Empty(t, buf.String())

	_, err = newLogger("loud", "text", &buf)
	require.Error(t, err)
	_, err = newLogger("info", "xml", &buf)
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	v := viper.New()
	v.Set("extraction.backend", "pdftotext")
	v.Set("extraction.ignore_prefixes", []string{"Guam"})
	v.Set("extraction.max_year", 2030)
	v.Set("output.export", "yaml")
	v.Set("output.preview_rows", 6)
	v.Set("store.db_path", "/var/lib/nics/history.db")

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.BackendPdftotext, cfg.Extraction.Backend)
	assert.Equal(t, []string{"Guam"}, cfg.Extraction.IgnorePrefixes)
	assert.Equal(t, 2030, cfg.Extraction.MaxYear)
	assert.Equal(t, types.ExportYAML, cfg.Output.Export)
	assert.Equal(t, 6, cfg.Output.PreviewRows)
	assert.Equal(t, "/var/lib/nics/history.db", cfg.Store.DBPath)

	v.Set("output.export", "csv")
	_, err = loadConfig(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}

func TestFormatRuns(t *testing.T) {
	var buf bytes.Buffer
	formatRuns(&buf, nil)
	assert.Contains(t, buf.String(), "No runs recorded.")

	buf.Reset()
	formatRuns(&buf, []store.RunSummary{{
		ID:          3,
		SourcePDF:   "/reports/nics.pdf",
		Backend:     types.BackendNative,
		ExtractedAt: time.Date(2025, 9, 2, 8, 30, 0, 0, time.UTC),
		Years:       27,
		Total:       500123456,
	}})
	out := buf.String()
	assert.Contains(t, out, "2025-09-02 08:30:00")
	assert.Contains(t, out, "500123456")
	assert.Contains(t, out, "/reports/nics.pdf")
}

func TestRunHistoryMissingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "typo", "history.db")
	viper.Set("store.db_path", dbPath)
	t.Cleanup(func() { viper.Set("store.db_path", "") })

	err := runHistory(historyCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history database at")

	_, statErr := os.Stat(filepath.Dir(dbPath))
	assert.True(t, os.IsNotExist(statErr), "history must not create the database directory")
}

func TestRunHistoryListsRecordedRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := store.New(types.StoreConfig{DBPath: dbPath})
	require.NoError(t, err)
	_, err = s.Save(context.Background(), types.Run{
		SourcePDF:   "/reports/nics.pdf",
		Backend:     types.BackendNative,
		ExtractedAt: time.Date(2025, 9, 2, 8, 30, 0, 0, time.UTC),
		Years:       []types.YearTotal{{Year: 2024, Total: 42}},
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	viper.Set("store.db_path", dbPath)
	t.Cleanup(func() { viper.Set("store.db_path", "") })

	var out bytes.Buffer
	historyCmd.SetOut(&out)
	t.Cleanup(func() { historyCmd.SetOut(nil) })

	require.NoError(t, runHistory(historyCmd, nil))
	assert.Contains(t, out.String(), "/reports/nics.pdf")
	assert.Contains(t, out.String(), "42")
}

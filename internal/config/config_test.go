package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "martcli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  store1:
    path: data/inputs/store1.csv
  store2:
    path: data/inputs/store2.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "store1", cfg.Sources.Store1.Name)
	assert.Equal(t, "mdy", cfg.Sources.Store1.DateLayout)
	assert.Equal(t, "store2", cfg.Sources.Store2.Name)
	assert.Equal(t, "dmy", cfg.Sources.Store2.DateLayout)
	assert.Equal(t, 10, cfg.Analysis.TopN)
	assert.Equal(t, AnomalyFlag, cfg.Analysis.AnomalyPolicy)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  store1:
    name: downtown
    path: exports/downtown.csv
    date_layout: mdy
  store2:
    name: suburb
    path: exports/suburb.csv
    date_layout: dmy
analysis:
  top_n: 5
  anomaly_policy: exclude
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "downtown", cfg.Sources.Store1.Name)
	assert.Equal(t, "exports/downtown.csv", cfg.Sources.Store1.Path)
	assert.Equal(t, 5, cfg.Analysis.TopN)
	assert.Equal(t, AnomalyExclude, cfg.Analysis.AnomalyPolicy)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidDateLayout(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  store1:
    path: a.csv
    date_layout: ymd
  store2:
    path: b.csv
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidAnomalyPolicy(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  store1:
    path: a.csv
  store2:
    path: b.csv
analysis:
  anomaly_policy: ignore
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptySourcePathsAllowed(t *testing.T) {
	// Empty paths are resolved later by input discovery.
	path := writeConfigFile(t, `
analysis:
  top_n: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Sources.Store1.Path)
	assert.Empty(t, cfg.Sources.Store2.Path)
}

func TestValidate_DuplicateSourceNames(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  store1:
    name: store
    path: a.csv
  store2:
    name: store
    path: b.csv
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distinct names")
}

func TestPathsFromBase(t *testing.T) {
	base := t.TempDir()
	paths := PathsFromBase(base)

	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "data", "reports"), paths.ReportsDir)
	assert.Equal(t, filepath.Join(base, "data", "reports", "grocery_report.xlsx"), paths.ReportWorkbook)

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.InputsDir)
	assert.DirExists(t, paths.LogsDir)

	assert.Equal(t, filepath.Join(base, "logs", "run.log"), paths.GetLogPath("run.log"))
	assert.Equal(t, filepath.Join(base, "data", "reports", "x.csv"), paths.GetReportPath("x.csv"))
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	InputsDir     string
	ReportsDir    string
	LogsDir       string

	// Well-known report files
	ReportWorkbook string
	WeeklyCSV      string
	HourlyCSV      string
	ProductsCSV    string
	CombinedCSV    string
}

// GetPaths returns the application paths relative to the executable location.
// Paths are always resolved against the executable directory, never the
// current working directory, so the tool behaves the same from any shell.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return PathsFromBase(filepath.Dir(exe)), nil
}

// PathsFromBase builds the path layout under an explicit base directory.
// Used directly in tests and when the output directory is overridden.
//
// Layout:
//
//	base/
//	  data/
//	    inputs/    (store CSV exports)
//	    reports/   (generated workbook and CSV aggregates)
//	  logs/
func PathsFromBase(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	reportsDir := filepath.Join(dataDir, "reports")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		InputsDir:     filepath.Join(dataDir, "inputs"),
		ReportsDir:    reportsDir,
		LogsDir:       filepath.Join(baseDir, "logs"),

		ReportWorkbook: filepath.Join(reportsDir, "grocery_report.xlsx"),
		WeeklyCSV:      filepath.Join(reportsDir, "weekly_totals.csv"),
		HourlyCSV:      filepath.Join(reportsDir, "hourly_totals.csv"),
		ProductsCSV:    filepath.Join(reportsDir, "product_revenue.csv"),
		CombinedCSV:    filepath.Join(reportsDir, "combined_transactions.csv"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.InputsDir,
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// GetLogPath returns the path for a log file in the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetReportPath returns the path for a file in the reports directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetInputPath returns the path for a file in the inputs directory
func (p *Paths) GetInputPath(filename string) string {
	return filepath.Join(p.InputsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

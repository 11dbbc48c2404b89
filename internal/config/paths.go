package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	OutputDir     string
	LogsDir       string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the current
// working directory, so the tool behaves the same no matter where it is
// invoked from.
//
// Directory structure:
//
//	wacreport
//	├── data/     (contact-log workbook dropped here by the operator)
//	├── output/   (generated reports)
//	└── logs/     (run logs, one file per execution date)
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)
	return NewPaths(exeDir), nil
}

// NewPaths builds a Paths rooted at the given base directory.
// Used directly by tests; production code goes through GetPaths.
func NewPaths(baseDir string) *Paths {
	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       filepath.Join(baseDir, "data"),
		OutputDir:     filepath.Join(baseDir, "output"),
		LogsDir:       filepath.Join(baseDir, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.OutputDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// GetDataPath returns the path for a file in the data directory.
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetOutputPath returns the path for a generated report file.
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetRunLogPath returns the log file path for a run executed at t.
// The log is named by the date of execution, not the report period.
func (p *Paths) GetRunLogPath(t time.Time) string {
	return filepath.Join(p.LogsDir, fmt.Sprintf("wacreport_%s.log", t.Format("2006-01-02")))
}

// GetReportPath returns the output path for a report covering [start, end].
func (p *Paths) GetReportPath(start, end time.Time, format string) string {
	filename := fmt.Sprintf("wac_report_%s_%s.%s",
		start.Format("2006-01-02"), end.Format("2006-01-02"), format)
	return filepath.Join(p.OutputDir, filename)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

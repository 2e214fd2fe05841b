package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths resolves every file the run reads or writes. Relative output names
// land in ReportsDir.
type Paths struct {
	NamesFile  string
	DataFile   string
	ReportsDir string
	Workbook   string
	LogFile    string
	TraceFile  string
	MetricsDir string
}

// NewPaths resolves the configured file names into absolute paths.
func NewPaths(cfg *Config) (*Paths, error) {
	reports, err := filepath.Abs(cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output dir: %w", err)
	}

	p := &Paths{
		NamesFile:  cfg.Input.NamesFile,
		DataFile:   cfg.Input.DataFile,
		ReportsDir: reports,
		LogFile:    cfg.Logging.FilePath,
		TraceFile:  cfg.Telemetry.TraceFile,
	}
	if cfg.Output.Workbook != "" {
		p.Workbook = p.GetReportPath(cfg.Output.Workbook)
	}
	if cfg.Telemetry.EnableMetrics && cfg.Telemetry.MetricsFile != "" {
		p.MetricsDir = filepath.Dir(cfg.Telemetry.MetricsFile)
	}
	return p, nil
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.ReportsDir, filename)
}

// EnsureDirectories creates the output directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.ReportsDir}
	if p.MetricsDir != "" {
		dirs = append(dirs, p.MetricsDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ValidateInputs checks that both input files exist
func (p *Paths) ValidateInputs() error {
	for _, f := range []string{p.NamesFile, p.DataFile} {
		if !FileExists(f) {
			return fmt.Errorf("input file not found: %s", f)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Info("Path resolution",
		slog.String("names_file", p.NamesFile),
		slog.String("data_file", p.DataFile),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("workbook", p.Workbook))
}

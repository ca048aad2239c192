package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all resolved file locations used by the pipeline.
// This is the single source of truth for file paths: components receive a
// *Paths rather than constructing locations themselves.
type Paths struct {
	DataDir   string
	InputCSV  string
	OutputCSV string
	LogsDir   string
}

// NewPaths resolves the configured locations into absolute paths. Relative
// input and output files are joined to the data directory; a relative data
// directory resolves against the executable location, never the working
// directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	dataDir := cfg.DataDir
	if !filepath.IsAbs(dataDir) {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
		}
		dataDir = filepath.Join(filepath.Dir(exe), dataDir)
	}

	return &Paths{
		DataDir:   dataDir,
		InputCSV:  joinIfRelative(dataDir, cfg.InputFile),
		OutputCSV: joinIfRelative(dataDir, cfg.OutputFile),
		LogsDir:   filepath.Join(filepath.Dir(dataDir), "logs"),
	}, nil
}

// joinIfRelative joins path to base unless path is already absolute.
func joinIfRelative(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// EnsureDirectories creates the directories the pipeline writes to.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		filepath.Dir(p.OutputCSV),
		p.LogsDir,
	}
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the location of a named log file.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

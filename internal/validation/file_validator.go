// Package validation provides file system validation shared by the
// pipeline entry points.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// supportedExtensions are the input formats the dataset loader accepts.
var supportedExtensions = []string{".csv", ".xlsx"}

// FileValidator provides common file validation for the pipeline CLI.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputFile validates that the input dataset exists, is a regular
// file, and has a supported extension.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("path", path))
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range supportedExtensions {
		if ext == supported {
			v.logger.Info("Input file validated",
				slog.String("path", path),
				slog.Int64("size_bytes", info.Size()))
			return nil
		}
	}
	return fmt.Errorf("unsupported input format %s (want one of %s)",
		ext, strings.Join(supportedExtensions, ", "))
}

// ValidateOutputDirectory ensures the output directory exists or can be
// created, and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	f.Close()
	os.Remove(probe)

	v.logger.Info("Output directory validated",
		slog.String("directory", dir))
	return nil
}

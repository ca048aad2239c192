// Package pipeline wires the preprocessing stages into the batch run:
// load → clean → engineer → save. Splitting and encoding are exposed by
// the encoding package for callers that fit a model on the result.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"housingprep/internal/cleaning"
	"housingprep/internal/config"
	"housingprep/internal/dataset"
	"housingprep/internal/features"
	"housingprep/internal/report"
)

// Loader loads a tabular file into a table.
type Loader func(path string) (*dataset.Table, error)

// Saver writes a table to a file.
type Saver func(t *dataset.Table, path string) error

// Pipeline runs the preprocessing stages in sequence.
type Pipeline struct {
	logger   *slog.Logger
	paths    *config.Paths
	reporter report.Reporter
	cleaner  *cleaning.Cleaner
	engineer *features.Engineer
	load     Loader
	save     Saver
}

// New creates a Pipeline with the default dataset loader and saver.
// A nil logger falls back to slog.Default().
func New(logger *slog.Logger, paths *config.Paths) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	reporter := report.NewLogReporter(logger)
	return &Pipeline{
		logger:   logger,
		paths:    paths,
		reporter: reporter,
		cleaner:  cleaning.New(logger, reporter),
		engineer: features.New(logger, reporter),
		load:     dataset.Load,
		save:     dataset.SaveCSV,
	}
}

// WithIO replaces the loader and saver, primarily for tests.
func (p *Pipeline) WithIO(load Loader, save Saver) *Pipeline {
	if load != nil {
		p.load = load
	}
	if save != nil {
		p.save = save
	}
	return p
}

// Run executes load → clean → engineer → save and returns the processed
// table. A load failure is not fatal: the run logs the problem and
// completes as a no-op with a nil table and nil error. Save failures are
// returned to the caller.
func (p *Pipeline) Run(ctx context.Context) (*dataset.Table, error) {
	raw, err := p.load(p.paths.InputCSV)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to load input data, nothing to do",
			slog.String("path", p.paths.InputCSV),
			slog.String("error", err.Error()))
		return nil, nil
	}

	cleaned, stats := p.cleaner.Clean(ctx, raw)
	p.logger.InfoContext(ctx, "cleaning finished",
		slog.Int("duplicates_removed", stats.DuplicatesRemoved),
		slog.Int("values_imputed", stats.ValuesImputed),
		slog.Int("columns_dropped", len(stats.ColumnsDropped)),
		slog.Int("rows", cleaned.NumRows()))

	processed := p.engineer.Engineer(ctx, cleaned)

	if err := p.save(processed, p.paths.OutputCSV); err != nil {
		return nil, fmt.Errorf("save processed data: %w", err)
	}

	p.logger.InfoContext(ctx, "preprocessing completed successfully",
		slog.String("output", p.paths.OutputCSV),
		slog.Int("rows", processed.NumRows()),
		slog.Int("columns", processed.NumCols()))

	return processed, nil
}

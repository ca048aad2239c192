// Command preprocess runs the housing-data preprocessing pipeline:
// load the raw dataset, clean it, derive engineered features, and save the
// processed table. It takes no arguments; paths and logging come from the
// environment and the optional housingprep.yaml file.
package main

import (
	"context"
	"log/slog"
	"os"

	"housingprep/internal/config"
	"housingprep/internal/infrastructure"
	"housingprep/internal/pipeline"
	"housingprep/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg.Logging.FilePath = paths.GetLogPath("preprocess.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = infrastructure.GetLogger()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	logger.InfoContext(ctx, "starting housing data preprocessing",
		slog.String("input", paths.InputCSV),
		slog.String("output", paths.OutputCSV))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputFile(paths.InputCSV); err != nil {
		// Missing input is a no-op completion, not a crash: the loader
		// would report the same failure and the pipeline would stop.
		logger.WarnContext(ctx, "input validation failed, nothing to do",
			slog.String("error", err.Error()))
		return
	}

	processed, err := pipeline.New(logger, paths).Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "preprocessing failed",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if processed == nil {
		logger.WarnContext(ctx, "no data produced")
	}
}

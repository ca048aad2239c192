package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Split   SplitConfig   `yaml:"split" envconfig:"SPLIT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/preprocess.log"`
}

// PathsConfig contains file system paths configuration. Relative input and
// output paths resolve against the data directory, never the working
// directory.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	InputFile  string `yaml:"input_file" envconfig:"INPUT_FILE" default:"lisbon-houses.csv" validate:"required"`
	OutputFile string `yaml:"output_file" envconfig:"OUTPUT_FILE" default:"processed/lisbon_houses_processed.csv" validate:"required"`
}

// SplitConfig contains train/test split configuration for callers that
// encode the processed table.
type SplitConfig struct {
	TargetColumn string  `yaml:"target_column" envconfig:"TARGET_COLUMN" default:"Price" validate:"required"`
	TestSize     float64 `yaml:"test_size" envconfig:"TEST_SIZE" default:"0.2" validate:"gt=0,lt=1"`
	Seed         int64   `yaml:"seed" envconfig:"SEED" default:"42"`
}

// configFile is the optional YAML configuration file, read from the
// working directory when present.
const configFile = "housingprep.yaml"

// Load loads configuration from environment variables and the optional
// YAML config file. Environment variables win over file values.
func Load() (*Config, error) {
	var cfg Config

	// Environment first so env values take priority in the merge.
	if err := envconfig.Process("HOUSINGPREP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if FileExists(configFile) {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays env-provided values on top of file values. An env
// value is taken whenever it differs from the field's zero value.
func mergeConfigs(file, env Config) Config {
	merged := file

	if env.Logging.Level != "" {
		merged.Logging.Level = env.Logging.Level
	}
	if env.Logging.Format != "" {
		merged.Logging.Format = env.Logging.Format
	}
	if env.Logging.Output != "" {
		merged.Logging.Output = env.Logging.Output
	}
	if env.Logging.FilePath != "" {
		merged.Logging.FilePath = env.Logging.FilePath
	}

	if env.Paths.DataDir != "" {
		merged.Paths.DataDir = env.Paths.DataDir
	}
	if env.Paths.InputFile != "" {
		merged.Paths.InputFile = env.Paths.InputFile
	}
	if env.Paths.OutputFile != "" {
		merged.Paths.OutputFile = env.Paths.OutputFile
	}

	if env.Split.TargetColumn != "" {
		merged.Split.TargetColumn = env.Split.TargetColumn
	}
	if env.Split.TestSize != 0 {
		merged.Split.TestSize = env.Split.TestSize
	}
	if env.Split.Seed != 0 {
		merged.Split.Seed = env.Split.Seed
	}

	return merged
}

// validate checks the configuration via struct tags.
func (c *Config) validate() error {
	return validator.New().Struct(c)
}

// Default returns the built-in configuration, used when Load fails and the
// pipeline should still run with sane settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/preprocess.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			InputFile:  "lisbon-houses.csv",
			OutputFile: "processed/lisbon_houses_processed.csv",
		},
		Split: SplitConfig{
			TargetColumn: "Price",
			TestSize:     0.2,
			Seed:         42,
		},
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Compare  CompareConfig  `yaml:"compare" envconfig:"COMPARE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// PipelineConfig drives the population/energy-price fusion run
type PipelineConfig struct {
	PopulationFile  string `yaml:"population_file" envconfig:"POPULATION_FILE" validate:"required"`
	EnergyPriceFile string `yaml:"energy_price_file" envconfig:"ENERGY_PRICE_FILE" validate:"required"`
	OutputDir       string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	OutputFileName  string `yaml:"output_file_name" envconfig:"OUTPUT_FILE_NAME" validate:"required"`
	Model           string `yaml:"model" envconfig:"MODEL" validate:"required"`
	Scenario        string `yaml:"scenario" envconfig:"SCENARIO" validate:"required"`
	StartYear       int    `yaml:"start_year" envconfig:"START_YEAR" validate:"gt=0"`
	EndYear         int    `yaml:"end_year" envconfig:"END_YEAR" validate:"gtfield=StartYear"`
}

// CompareConfig drives the CSV comparison run
type CompareConfig struct {
	GeneratedFile string `yaml:"generated_file" envconfig:"GENERATED_FILE" validate:"required"`
	OriginalFile  string `yaml:"original_file" envconfig:"ORIGINAL_FILE" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// OutputFilePath returns the full path of the fused CSV.
func (p PipelineConfig) OutputFilePath() string {
	return filepath.Join(p.OutputDir, p.OutputFileName)
}

// Load loads configuration from environment variables and, when
// present, the fusecli.yaml config file next to the working directory.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	var cfg Config

	configFile := DefaultConfigFileName
	if path := os.Getenv("FUSE_CONFIG_FILE"); path != "" {
		configFile = path
	}
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileCfg
	}

	// Environment overrides file values; anything still unset falls
	// back to the documented defaults.
	if err := envconfig.Process("FUSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration the original run used, without
// consulting the environment. Tests inject paths on top of it.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills any field neither the environment nor the config
// file set. Defaults are applied last so a partial YAML file or a
// single env var never clobbers the rest of the configuration.
func applyDefaults(cfg *Config) {
	if cfg.Pipeline.PopulationFile == "" {
		cfg.Pipeline.PopulationFile = DefaultPopulationFile
	}
	if cfg.Pipeline.EnergyPriceFile == "" {
		cfg.Pipeline.EnergyPriceFile = DefaultEnergyPriceFile
	}
	if cfg.Pipeline.OutputDir == "" {
		cfg.Pipeline.OutputDir = DefaultOutputDir
	}
	if cfg.Pipeline.OutputFileName == "" {
		cfg.Pipeline.OutputFileName = DefaultOutputFileName
	}
	if cfg.Pipeline.Model == "" {
		cfg.Pipeline.Model = DefaultModel
	}
	if cfg.Pipeline.Scenario == "" {
		cfg.Pipeline.Scenario = DefaultScenario
	}
	if cfg.Pipeline.StartYear == 0 {
		cfg.Pipeline.StartYear = DefaultStartYear
	}
	if cfg.Pipeline.EndYear == 0 {
		cfg.Pipeline.EndYear = DefaultEndYear
	}
	if cfg.Compare.GeneratedFile == "" {
		cfg.Compare.GeneratedFile = filepath.Join(DefaultOutputDir, DefaultOutputFileName)
	}
	if cfg.Compare.OriginalFile == "" {
		cfg.Compare.OriginalFile = DefaultOriginalFile
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "console"
	}
	if cfg.Logging.FilePath == "" {
		cfg.Logging.FilePath = filepath.Join(DefaultLogsDir, "fusecli.log")
	}
}

// validate checks the configuration using struct tags
func (c *Config) validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

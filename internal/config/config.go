// Package config loads application configuration from an optional YAML file
// overridden by SURVEY_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"surveypulse/internal/classifier"
	"surveypulse/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging    LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis   AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Categories string         `yaml:"categories_file" envconfig:"CATEGORIES_FILE"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// AnalysisConfig carries the default analysis settings handed to callers
// that do not supply their own. The engine itself enforces no defaults.
type AnalysisConfig struct {
	IssueThreshold     float64 `yaml:"issue_threshold" envconfig:"ISSUE_THRESHOLD"`
	ExcellentThreshold float64 `yaml:"excellent_threshold" envconfig:"EXCELLENT_THRESHOLD"`
	ScaleMin           float64 `yaml:"scale_min" envconfig:"SCALE_MIN" validate:"required"`
	ScaleMax           float64 `yaml:"scale_max" envconfig:"SCALE_MAX" validate:"required,gtfield=ScaleMin"`
}

// Settings converts the configured defaults into engine settings
func (a AnalysisConfig) Settings() domain.Settings {
	return domain.Settings{
		IssueThreshold:     a.IssueThreshold,
		ExcellentThreshold: a.ExcellentThreshold,
		ScaleMin:           a.ScaleMin,
		ScaleMax:           a.ScaleMax,
	}
}

// Default returns the baseline configuration before file and environment
// overrides are applied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  32 << 20,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Analysis: AnalysisConfig{
			IssueThreshold:     3,
			ExcellentThreshold: 4,
			ScaleMin:           1,
			ScaleMax:           5,
		},
	}
}

// Load builds the configuration in three layers: baked-in defaults, the
// optional YAML file, then SURVEY_* environment variables on top.
func Load() (*Config, error) {
	cfg := Default()

	configFile := os.Getenv("SURVEY_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("SURVEY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := validator.New().Struct(cfg.Analysis); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// categoriesFile is the YAML shape of a category keyword override file
type categoriesFile struct {
	Categories []classifier.Category `yaml:"categories"`
}

// LoadCategories reads a category keyword table from YAML. An empty path
// returns the classifier's built-in defaults.
func LoadCategories(path string) ([]classifier.Category, error) {
	if path == "" {
		return classifier.DefaultCategories(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}
	var f categoriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse categories file: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}
	return f.Categories, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR"`
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// ReportConfig contains report generation configuration
type ReportConfig struct {
	Format    string `yaml:"format" envconfig:"FORMAT"`
	SheetName string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
}

// Load loads configuration from environment variables and config file.
// Environment variables (prefix WAC) take precedence over the file.
func Load() (*Config, error) {
	return load(getConfigFilePath())
}

// load layers configuration sources lowest precedence first: built-in
// defaults, then the config file, then environment variables. Defaults live
// in Default() rather than struct tags so a file value is not shadowed by a
// default the environment never set.
func load(configFile string) (*Config, error) {
	cfg := *Default()

	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		overlay(&cfg, *fileConfig)
	}

	var envConfig Config
	if err := envconfig.Process("WAC", &envConfig); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	overlay(&cfg, envConfig)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
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

// overlay copies every non-empty field of src onto dst
func overlay(dst *Config, src Config) {
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.Logging.Output != "" {
		dst.Logging.Output = src.Logging.Output
	}
	if src.Logging.FilePath != "" {
		dst.Logging.FilePath = src.Logging.FilePath
	}
	if src.Paths.ExecutableDir != "" {
		dst.Paths.ExecutableDir = src.Paths.ExecutableDir
	}
	if src.Paths.DataDir != "" {
		dst.Paths.DataDir = src.Paths.DataDir
	}
	if src.Paths.OutputDir != "" {
		dst.Paths.OutputDir = src.Paths.OutputDir
	}
	if src.Paths.LogsDir != "" {
		dst.Paths.LogsDir = src.Paths.LogsDir
	}
	if src.Report.Format != "" {
		dst.Report.Format = src.Report.Format
	}
	if src.Report.SheetName != "" {
		dst.Report.SheetName = src.Report.SheetName
	}
}

// validate validates the configuration
func (c *Config) validate() error {
	// Always JSON so the run log stays machine readable
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "console" {
		c.Logging.Output = "both"
	}

	switch c.Report.Format {
	case "", "xlsx", "csv":
	default:
		return fmt.Errorf("invalid report format: %s", c.Report.Format)
	}
	if c.Report.Format == "" {
		c.Report.Format = "xlsx"
	}

	if c.Report.SheetName == "" {
		c.Report.SheetName = "Interactions"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "both",
		},
		Paths: PathsConfig{
			DataDir:   "data",
			OutputDir: "output",
			LogsDir:   "logs",
		},
		Report: ReportConfig{
			Format:    "xlsx",
			SheetName: "Interactions",
		},
	}
}

// ResolvePaths returns the Paths for this config, rooted at the executable
// directory unless an explicit base directory was configured.
func (c *Config) ResolvePaths() (*Paths, error) {
	if c.Paths.ExecutableDir != "" {
		return resolveConfigured(c.Paths, c.Paths.ExecutableDir), nil
	}

	paths, err := GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	return resolveConfigured(c.Paths, paths.ExecutableDir), nil
}

func resolveConfigured(pc PathsConfig, baseDir string) *Paths {
	join := func(dir, fallback string) string {
		if dir == "" {
			dir = fallback
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(baseDir, dir)
	}

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       join(pc.DataDir, "data"),
		OutputDir:     join(pc.OutputDir, "output"),
		LogsDir:       join(pc.LogsDir, "logs"),
	}
}

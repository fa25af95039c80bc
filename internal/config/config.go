// Package config loads the application configuration: built-in defaults,
// overridden by an optional YAML file, overridden by environment
// variables with the AUTOTRENDS prefix.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	// Classifier overrides the built-in brand allowlist and performance
	// keyword list. Empty lists keep the defaults.
	Classifier ClassifierConfig `yaml:"classifier" envconfig:"CLASSIFIER"`
	Segments   SegmentsConfig   `yaml:"segments" envconfig:"SEGMENTS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths and source file names.
type PathsConfig struct {
	RawDir      string `yaml:"raw_dir" envconfig:"RAW_DIR"`
	CleanedDir  string `yaml:"cleaned_dir" envconfig:"CLEANED_DIR"`
	ReportsDir  string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	VehicleFile string `yaml:"vehicle_file" envconfig:"VEHICLE_FILE"`
	SportsFile  string `yaml:"sports_file" envconfig:"SPORTS_FILE"`
}

// CleaningConfig bounds the year range kept during cleaning.
type CleaningConfig struct {
	YearMin int `yaml:"year_min" envconfig:"YEAR_MIN"`
	YearMax int `yaml:"year_max" envconfig:"YEAR_MAX"`
}

// ClassifierConfig mirrors classify.Config for the config file.
type ClassifierConfig struct {
	Brands        []string `yaml:"brands" envconfig:"BRANDS"`
	ModelKeywords []string `yaml:"model_keywords" envconfig:"MODEL_KEYWORDS"`
}

// SegmentsConfig overrides the fuel-type labels defining the gas and
// electric market segments. Empty lists keep the defaults.
type SegmentsConfig struct {
	GasFuelTypes      []string `yaml:"gas_fuel_types" envconfig:"GAS_FUEL_TYPES"`
	ElectricFuelTypes []string `yaml:"electric_fuel_types" envconfig:"ELECTRIC_FUEL_TYPES"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitRPS:    100,
			RateLimitBurst:  50,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			RawDir:      "data/raw",
			CleanedDir:  "data/cleaned",
			ReportsDir:  "data/reports",
			VehicleFile: "all-vehicles-model.csv",
			SportsFile:  "sport-car-price.csv",
		},
		Cleaning: CleaningConfig{
			YearMin: 2000,
			YearMax: 2025,
		},
	}
}

// Load loads configuration: defaults, then the config file if present,
// then environment variables. The environment wins.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("AUTOTRENDS", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func configFilePath() string {
	if p := os.Getenv("AUTOTRENDS_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Cleaning.YearMin > c.Cleaning.YearMax {
		return fmt.Errorf("cleaning year_min %d exceeds year_max %d", c.Cleaning.YearMin, c.Cleaning.YearMax)
	}
	return nil
}

// VehiclePath returns the raw mainstream dataset path.
func (c *Config) VehiclePath() string {
	return filepath.Join(c.Paths.RawDir, c.Paths.VehicleFile)
}

// SportsPath returns the raw sports dataset path.
func (c *Config) SportsPath() string {
	return filepath.Join(c.Paths.RawDir, c.Paths.SportsFile)
}

package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for ledgermatch
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Reconciliation ReconciliationConfig `yaml:"reconciliation"`
	Data           DataConfig           `yaml:"data"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
}

// ReconciliationConfig holds reconciliation configuration
type ReconciliationConfig struct {
	// DateToleranceDays is the maximum difference in calendar days for two
	// otherwise-identical records to still count as the same event.
	DateToleranceDays int `yaml:"date_tolerance_days"`
	MaxGroupSize      int `yaml:"max_group_size"`
}

// DataConfig holds feed file locations
type DataConfig struct {
	// Dir is the directory server-side feed files are read from.
	Dir string `yaml:"dir"`
	// OutputDir is where annotated result files are written.
	OutputDir string `yaml:"output_dir"`
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvInt("PORT", 3008),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Reconciliation: ReconciliationConfig{
			DateToleranceDays: getEnvInt("RECON_DATE_TOLERANCE_DAYS", 1),
			MaxGroupSize:      getEnvInt("RECON_MAX_GROUP_SIZE", 100000),
		},
		Data: DataConfig{
			Dir:       getEnv("DATA_DIR", "./data"),
			OutputDir: getEnv("OUTPUT_DIR", "./out"),
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3008
	}
	if c.Reconciliation.DateToleranceDays == 0 {
		c.Reconciliation.DateToleranceDays = 1
	}
	if c.Reconciliation.MaxGroupSize == 0 {
		c.Reconciliation.MaxGroupSize = 100000
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "./data"
	}
	if c.Data.OutputDir == "" {
		c.Data.OutputDir = "./out"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// StorageConfig selects and configures the persistence backend
type StorageConfig struct {
	Driver      string `yaml:"driver" validate:"required,oneof=json postgres"`
	DataDir     string `yaml:"dataDir,omitempty"`
	PostgresURL string `yaml:"postgresUrl,omitempty"`
}

// Config represents the application configuration
type Config struct {
	ListenAddr    string        `yaml:"listenAddr" validate:"required"`
	JWTSecret     string        `yaml:"jwtSecret" validate:"required,min=16"`
	Storage       StorageConfig `yaml:"storage" validate:"required"`
	AlertSchedule string        `yaml:"alertSchedule,omitempty"` // Cron spec for the watch command
	GmailEnabled  bool          `yaml:"gmailEnabled,omitempty"`
	GmailSender   string        `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from agency_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "agency_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the storage driver settings,
// and the alert schedule cron syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.Storage.Driver {
	case "json":
		if cfg.Storage.DataDir == "" {
			return fmt.Errorf("storage.dataDir is required for the json driver")
		}
	case "postgres":
		if cfg.Storage.PostgresURL == "" {
			return fmt.Errorf("storage.postgresUrl is required for the postgres driver")
		}
	}

	if cfg.AlertSchedule != "" {
		if _, err := cron.ParseStandard(cfg.AlertSchedule); err != nil {
			return fmt.Errorf("invalid alertSchedule: %w", err)
		}
	}

	if cfg.GmailEnabled && cfg.GmailSender == "" {
		return fmt.Errorf("gmailSender is required when gmailEnabled is set")
	}

	return nil
}

// findConfigFile searches for agency_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "agency_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "agency_config.yaml"
	if env != "" {
		configFileName = "agency_config." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/ilford-attendance/pkg/core/calendar"
)

const defaultHTTPAddr = ":8080"

// Config represents the application configuration
type Config struct {
	DatabaseURL string   `yaml:"databaseURL" validate:"required"`
	Timezone    string   `yaml:"timezone" validate:"required"`
	HTTPAddr    string   `yaml:"httpAddr,omitempty" validate:"omitempty,hostname_port"`
	FreeDayNote string   `yaml:"freeDayNote,omitempty"`
	SeedSource  string   `yaml:"seedSource,omitempty"`
	Holidays    []string `yaml:"holidays,omitempty" validate:"dive,required"`

	location *time.Location
	holidays calendar.Holidays
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Location returns the service timezone
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// HolidayRules returns the parsed holiday rules
func (c *Config) HolidayRules() calendar.Holidays {
	return c.holidays
}

// LoadWithEnv loads and validates attendance_config.<env>.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("attendance_config.%s.yaml", env))
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

// Validate validates the configuration struct, resolves the timezone and
// parses the holiday rules
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	holidays, err := calendar.ParseHolidays(cfg.Holidays)
	if err != nil {
		return fmt.Errorf("invalid rrule in holidays: %w", err)
	}
	cfg.holidays = holidays

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}

	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(configFileName string) (string, error) {
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

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// TimeSlotConfig is a configured working window in "HH:mm" form
type TimeSlotConfig struct {
	StartTime string `yaml:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `yaml:"endTime" validate:"required,datetime=15:04"`
}

// Config represents the application configuration
type Config struct {
	// DatabaseURL is the Postgres connection string. When empty the CLI
	// runs against an in-memory store.
	DatabaseURL string `yaml:"databaseURL,omitempty"`

	// Locations lists the clinic sites providers and staff refer to
	Locations []string `yaml:"locations" validate:"required,min=1,dive,required"`

	// DefaultTimeSlot applies when a provider is added to a day without
	// a matching recurring entry or provider default
	DefaultTimeSlot TimeSlotConfig `yaml:"defaultTimeSlot" validate:"required"`

	// HorizonDays is the default materialization window
	HorizonDays int `yaml:"horizonDays,omitempty" validate:"omitempty,min=1"`

	// Closures are RRULE strings for clinic-wide closure dates; dates
	// they produce are skipped during materialization
	Closures []string `yaml:"closures,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from staff_scheduler_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
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

	if cfg.HorizonDays == 0 {
		cfg.HorizonDays = 7
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks closure rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, closure := range cfg.Closures {
		if _, err := rrule.StrToRRule(closure); err != nil {
			return fmt.Errorf("invalid rrule in closures[%d]: %w", i, err)
		}
	}

	return nil
}

// ClosureDates expands the configured closure rules over [from, to]
// (inclusive) and returns the closed dates as a "2006-01-02" set
func (c *Config) ClosureDates(from, to time.Time) (map[string]bool, error) {
	closed := make(map[string]bool)

	for i, closure := range c.Closures {
		rule, err := rrule.StrToRRule(closure)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in closures[%d]: %w", i, err)
		}
		// Anchor the rule at the range start so expansion does not
		// depend on the wall clock
		rule.DTStart(from)
		for _, occurrence := range rule.Between(from, to, true) {
			closed[occurrence.Format("2006-01-02")] = true
		}
	}

	return closed, nil
}

// findConfigFile searches for staff_scheduler_config.yaml in the current
// directory and the home directory
func findConfigFile() (string, error) {
	configFileName := "staff_scheduler_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

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

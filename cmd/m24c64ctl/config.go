package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Device families accepted in the configuration.
const (
	FamilyBase     = "m24c64"
	FamilyExtended = "m24c64-d"
)

// simPrefix selects a simulated chip persisted at the path that follows.
const simPrefix = "sim:"

// Config is the tool configuration, read from a YAML file and overridden by
// command-line flags.
type Config struct {
	// Bus is an i2c-dev node such as /dev/i2c-1, or sim:PATH for a
	// simulated chip stored at PATH.
	Bus string `yaml:"bus"`

	// Address holds the chip-enable bits E2..E0.
	Address uint8 `yaml:"address"`

	// Family is FamilyBase or FamilyExtended.
	Family string `yaml:"family"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Bus:    "/dev/i2c-1",
		Family: FamilyBase,
	}
}

// LoadConfig reads a YAML configuration from path on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for values the tool cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.Bus == "" {
		errs = append(errs, errors.New("bus: must not be empty"))
	}
	if c.Bus == simPrefix {
		errs = append(errs, errors.New("bus: sim: requires a path"))
	}
	if c.Address > 0x07 {
		errs = append(errs, fmt.Errorf("address: %#x exceeds three chip-enable bits", c.Address))
	}
	switch c.Family {
	case FamilyBase, FamilyExtended:
	default:
		errs = append(errs, fmt.Errorf("family: %q is not %s or %s", c.Family, FamilyBase, FamilyExtended))
	}
	return errors.Join(errs...)
}

// SimPath returns the snapshot path when Bus selects a simulated chip.
func (c Config) SimPath() (string, bool) {
	return strings.CutPrefix(c.Bus, simPrefix)
}

// HasIDPage reports whether the configured part has an identification page.
func (c Config) HasIDPage() bool {
	return c.Family == FamilyExtended
}

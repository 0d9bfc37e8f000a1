package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds optional defaults loaded from ~/.config/iam-audit/config.yaml.
type Config struct {
	DefaultProfile string         `yaml:"default_profile"`
	DefaultRegion  string         `yaml:"default_region"`
	Report         ReportConfig   `yaml:"report"`
	Database       DatabaseConfig `yaml:"database"`
}

// ReportConfig controls where collected reports are uploaded.
type ReportConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

type DatabaseConfig struct {
	Driver         string `yaml:"driver"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Address        string `yaml:"address"`
	DriverLocation string `yaml:"driver_location"`
	Debug          bool   `yaml:"debug"`
	LogDir         string `yaml:"log_dir"`
}

// Path returns the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "iam-audit", "config.yaml"), nil
}

// Load reads the config file. Returns zero-value Config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields a zero-value Config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// MergeDatabase overlays non-zero fields of flags onto the file settings.
func (c *Config) MergeDatabase(flags DatabaseConfig) DatabaseConfig {
	out := c.Database
	if flags.Driver != "" {
		out.Driver = flags.Driver
	}
	if flags.Username != "" {
		out.Username = flags.Username
	}
	if flags.Password != "" {
		out.Password = flags.Password
	}
	if flags.Address != "" {
		out.Address = flags.Address
	}
	if flags.DriverLocation != "" {
		out.DriverLocation = flags.DriverLocation
	}
	if flags.LogDir != "" {
		out.LogDir = flags.LogDir
	}
	out.Debug = out.Debug || flags.Debug
	return out
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Files   FileConfig    `toml:"files"`
	Markers MarkerConfig  `toml:"markers"`
	Theme   ThemeConfig   `toml:"theme"`
	Display DisplayConfig `toml:"display"`
}

// FileConfig names the files the demonstration touches
type FileConfig struct {
	Sample   string `toml:"sample"`
	ErrorLog string `toml:"error_log"`
	Missing  string `toml:"missing"`
}

// MarkerConfig defines the substrings used to classify lines
type MarkerConfig struct {
	Patient   []string `toml:"patient"`
	DateTime  []string `toml:"date_time"`
	Diagnosis []string `toml:"diagnosis"`
}

// ThemeConfig defines colors
type ThemeConfig struct {
	Banner      string     `toml:"banner"`
	LineNumbers string     `toml:"line_numbers"`
	Success     string     `toml:"success"`
	Error       string     `toml:"error"`
	Kinds       KindColors `toml:"kinds"`
}

// KindColors defines colors for each line kind
type KindColors struct {
	Patient   string `toml:"patient"`
	DateTime  string `toml:"date_time"`
	Diagnosis string `toml:"diagnosis"`
	Generic   string `toml:"generic"`
}

// DisplayConfig holds display options
type DisplayConfig struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	BannerWidth     int  `toml:"banner_width"`
	HeaderWidth     int  `toml:"header_width"`
	Syntax          bool `toml:"syntax"`
	Color           bool `toml:"color"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Files: FileConfig{
			Sample:   "medical_log_sample.txt",
			ErrorLog: "emr_error_log.txt",
			Missing:  "non_existent_medical_log.txt",
		},
		Markers: MarkerConfig{
			Patient:   []string{"Patient ID:", "PATIENT"},
			DateTime:  []string{"Date:", "TIME"},
			Diagnosis: []string{"Diagnosis:", "DIAGNOSIS"},
		},
		Theme: ThemeConfig{
			Banner:      "75",  // Steel blue
			LineNumbers: "240", // Dark gray
			Success:     "114", // Soft green
			Error:       "167", // Soft red
			Kinds: KindColors{
				Patient:   "117", // Sky blue
				DateTime:  "180", // Tan
				Diagnosis: "214", // Orange
				Generic:   "250", // Light gray
			},
		},
		Display: DisplayConfig{
			ShowLineNumbers: true,
			BannerWidth:     70,
			HeaderWidth:     80,
			Syntax:          true,
			Color:           true,
		},
	}
}

// Load loads config from path, or from the default location when path is
// empty, falling back to defaults when the file does not exist
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := strings.TrimSpace(path) != ""
	configPath := strings.TrimSpace(path)
	if !explicit {
		configPath = getConfigPath()
	}
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// Save saves config to path, or to the default location when path is empty
func Save(cfg *Config, path string) error {
	configPath := path
	if configPath == "" {
		configPath = getConfigPath()
	}
	if configPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// normalize restores defaults for values a config file blanked out
func (c *Config) normalize() {
	def := DefaultConfig()

	c.Files.Sample = orDefault(c.Files.Sample, def.Files.Sample)
	c.Files.ErrorLog = orDefault(c.Files.ErrorLog, def.Files.ErrorLog)
	c.Files.Missing = orDefault(c.Files.Missing, def.Files.Missing)

	if c.Display.BannerWidth <= 0 {
		c.Display.BannerWidth = def.Display.BannerWidth
	}
	if c.Display.HeaderWidth <= 0 {
		c.Display.HeaderWidth = def.Display.HeaderWidth
	}
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "emrlog", "config.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "emrlog", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}

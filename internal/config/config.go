package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPathVar points at an alternative .env file when none sits beside the executable
const EnvPathVar = "REPLY_OVERLAY_ENV"

// Config holds all application configuration
type Config struct {
	// Global chord that triggers a capture, e.g. "Ctrl+Shift+Z"
	Hotkey string `json:"hotkey"`

	// Wait between hiding the overlay and capturing, so the OS can
	// hand foreground status back to the previous window
	SettleDelayMs int `json:"settle_delay_ms"`

	// Overlay size presets, one per mode
	Widget   SizeConfig `json:"widget"`
	Dialog   SizeConfig `json:"dialog"`
	Expanded SizeConfig `json:"expanded"`

	// Extra gap kept between the widget and the bottom-right screen corner
	AnchorPadding SizeConfig `json:"anchor_padding"`

	Capture CaptureConfig `json:"capture"`

	EnableFileLogging bool `json:"enable_file_logging"`
}

// SizeConfig is a width/height pair in window coordinates
type SizeConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CaptureConfig holds screenshot settings
type CaptureConfig struct {
	MaxWidth  int `json:"max_width"`  // 0 = keep native width
	MaxHeight int `json:"max_height"` // 0 = keep native height
}

// Service manages configuration persistence
type Service struct {
	config   *Config
	filePath string

	// config plus environment overrides; nil when there are none
	effective *Config
}

// New creates a new config service
func New() (*Service, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".reply-overlay")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.json")

	service := &Service{
		filePath: configPath,
		config:   getDefaultConfig(),
	}

	// Load existing config if it exists, otherwise create a default config file
	if _, err := os.Stat(configPath); err == nil {
		if err := service.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		if err := service.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	// .env overrides are applied to a copy so they win at runtime but are never saved back
	effective := *service.config
	applyEnv(&effective, resolveEnvPath())
	service.effective = &effective

	return service, nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Hotkey:        "Ctrl+Shift+Z",
		SettleDelayMs: 300,
		Widget:        SizeConfig{Width: 220, Height: 320},
		Dialog:        SizeConfig{Width: 800, Height: 600},
		Expanded:      SizeConfig{Width: 400, Height: 600},
		AnchorPadding: SizeConfig{Width: 30, Height: 30},
	}
}

// Get returns the configuration in effect, including environment overrides
func (s *Service) Get() *Config {
	if s.effective != nil {
		return s.effective
	}
	return s.config
}

// Set replaces the configuration. Environment overrides are dropped.
func (s *Service) Set(config *Config) {
	s.config = config
	s.effective = nil
}

// Load loads configuration from file
func (s *Service) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, s.config); err != nil {
		return err
	}
	s.config.normalize()
	s.effective = nil
	return nil
}

// Save writes the file-backed configuration; environment overrides are not persisted
func (s *Service) Save() error {
	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// Path returns the full path to the configuration file
func (s *Service) Path() string {
	return s.filePath
}

// SettleDelay returns the hide-to-capture wait as a duration
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// normalize replaces unusable values with defaults
func (c *Config) normalize() {
	def := getDefaultConfig()

	if strings.TrimSpace(c.Hotkey) == "" {
		c.Hotkey = def.Hotkey
	}
	if c.SettleDelayMs <= 0 {
		c.SettleDelayMs = def.SettleDelayMs
	}
	if c.Widget.Width <= 0 || c.Widget.Height <= 0 {
		c.Widget = def.Widget
	}
	if c.Dialog.Width <= 0 || c.Dialog.Height <= 0 {
		c.Dialog = def.Dialog
	}
	if c.Expanded.Width <= 0 || c.Expanded.Height <= 0 {
		c.Expanded = def.Expanded
	}
	if c.AnchorPadding.Width < 0 || c.AnchorPadding.Height < 0 {
		c.AnchorPadding = def.AnchorPadding
	}
	if c.Capture.MaxWidth < 0 {
		c.Capture.MaxWidth = 0
	}
	if c.Capture.MaxHeight < 0 {
		c.Capture.MaxHeight = 0
	}
}

// resolveEnvPath finds the .env file: beside the executable first, then $REPLY_OVERLAY_ENV
func resolveEnvPath() string {
	if execPath, err := os.Executable(); err == nil {
		exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(exeEnv); err == nil {
			return exeEnv
		}
	}

	if alt := os.Getenv(EnvPathVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

// applyEnv layers HOTKEY, SETTLE_DELAY_MS and ENABLE_FILE_LOGGING over cfg.
// Variables already present in the process environment beat the .env file.
func applyEnv(cfg *Config, envPath string) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("Warning: could not load %s: %v", envPath, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("HOTKEY")); v != "" {
		cfg.Hotkey = v
	}
	if v := os.Getenv("SETTLE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SettleDelayMs = n
		}
	}
	if v := os.Getenv("ENABLE_FILE_LOGGING"); v != "" {
		cfg.EnableFileLogging = strings.ToLower(v) == "true"
	}
}

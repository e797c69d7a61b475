// Package config provides configuration management for gantt.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sadopc/gantt/internal/schedule"
)

// EnvPrefix prefixes environment overrides, e.g. GANTT_EXPORT_DIR.
const EnvPrefix = "GANTT"

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for gantt.
type Config struct {
	View    string        `mapstructure:"view"`
	Export  ExportConfig  `mapstructure:"export"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// ExportConfig holds PNG export settings.
type ExportConfig struct {
	Dir        string  `mapstructure:"dir"`
	Filename   string  `mapstructure:"filename"`
	Background string  `mapstructure:"background"`
	PixelRatio float64 `mapstructure:"pixel_ratio"`
	MaxScale   float64 `mapstructure:"max_scale"`
	Strategy   string  `mapstructure:"strategy"`
	Notify     bool    `mapstructure:"notify"`
}

// ChartConfig holds chart geometry. Zero values use the chart defaults.
type ChartConfig struct {
	LabelWidth    float64 `mapstructure:"label_width"`
	RowHeight     float64 `mapstructure:"row_height"`
	ViewportWidth float64 `mapstructure:"viewport_width"`
}

// StorageConfig holds storage settings. An empty DataDir means the
// platform config directory.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging settings. File is only used by the TUI.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		View: string(schedule.Week),
		Export: ExportConfig{
			Dir:        ".",
			Filename:   "gantt.png",
			Background: "#ffffff",
			PixelRatio: 1,
			MaxScale:   2,
			Strategy:   "auto",
			Notify:     false,
		},
		Chart: ChartConfig{
			LabelWidth: 180,
			RowHeight:  36,
		},
		Storage: StorageConfig{
			DataDir: "",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path, or at GetConfigPath when path is
// empty. A missing file is created with the defaults. Environment variables
// prefixed with GANTT_ override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(DefaultConfig(), path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as TOML to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.Set("view", cfg.View)
	v.Set("export.dir", cfg.Export.Dir)
	v.Set("export.filename", cfg.Export.Filename)
	v.Set("export.background", cfg.Export.Background)
	v.Set("export.pixel_ratio", cfg.Export.PixelRatio)
	v.Set("export.max_scale", cfg.Export.MaxScale)
	v.Set("export.strategy", cfg.Export.Strategy)
	v.Set("export.notify", cfg.Export.Notify)
	v.Set("chart.label_width", cfg.Chart.LabelWidth)
	v.Set("chart.row_height", cfg.Chart.RowHeight)
	v.Set("chart.viewport_width", cfg.Chart.ViewportWidth)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns ~/.config/gantt/config.toml (platform equivalent).
func GetConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "gantt", "config.toml"), nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := schedule.ParseViewMode(c.View); err != nil {
		return fmt.Errorf("%w: view: %w", ErrInvalidConfig, err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	if c.Export.MaxScale < 0 {
		return fmt.Errorf("%w: export.max_scale must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ViewMode returns the configured view, week when unset or invalid.
func (c *Config) ViewMode() schedule.ViewMode {
	m, err := schedule.ParseViewMode(c.View)
	if err != nil {
		return schedule.Week
	}
	return m
}

// LogLevel parses log.level; empty means info.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// DBPath returns the settings database inside the data directory, or ""
// when no data directory is configured.
func (c *Config) DBPath() string {
	if c.Storage.DataDir == "" {
		return ""
	}
	return filepath.Join(c.Storage.DataDir, "gantt.db")
}

// LogPath returns log.file, or gantt.log next to the database.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	if c.Storage.DataDir != "" {
		return filepath.Join(c.Storage.DataDir, "gantt.log")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "gantt", "gantt.log")
	}
	return "gantt.log"
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("view", d.View)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.filename", d.Export.Filename)
	v.SetDefault("export.background", d.Export.Background)
	v.SetDefault("export.pixel_ratio", d.Export.PixelRatio)
	v.SetDefault("export.max_scale", d.Export.MaxScale)
	v.SetDefault("export.strategy", d.Export.Strategy)
	v.SetDefault("export.notify", d.Export.Notify)
	v.SetDefault("chart.label_width", d.Chart.LabelWidth)
	v.SetDefault("chart.row_height", d.Chart.RowHeight)
	v.SetDefault("chart.viewport_width", d.Chart.ViewportWidth)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/scrub/internal/domain"
	"github.com/mmcdole/scrub/internal/scrubber"
	"github.com/spf13/viper"
)

// Backend identifies the playback clock implementation
type Backend string

const (
	BackendSimulated Backend = "simulated"
	BackendMPV       Backend = "mpv"
)

// Config holds all application configuration
type Config struct {
	Scrubber ScrubberConfig `mapstructure:"scrubber"`
	Player   PlayerConfig   `mapstructure:"player"`
	Resume   ResumeConfig   `mapstructure:"resume"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ScrubberConfig holds seek bar behavior
type ScrubberConfig struct {
	StepSeconds        float64       `mapstructure:"step_seconds"`
	PageMultiplier     int           `mapstructure:"page_multiplier"`
	ThrottleInterval   time.Duration `mapstructure:"throttle_interval"`
	EndEpsilon         float64       `mapstructure:"end_epsilon"`
	IncludeTimeTooltip bool          `mapstructure:"include_time_tooltip"`
	IncludeMouseTime   bool          `mapstructure:"include_mouse_time"`
}

// PlayerConfig holds playback backend configuration
type PlayerConfig struct {
	Backend      Backend       `mapstructure:"backend"` // "simulated" or "mpv"
	Command      string        `mapstructure:"command"`
	Args         []string      `mapstructure:"args"`
	Socket       string        `mapstructure:"socket"`     // mpv IPC socket path, empty for a temp path
	StartFlag    string        `mapstructure:"start_flag"` // e.g., "--start="
	IPCFlag      string        `mapstructure:"ipc_flag"`   // e.g., "--input-ipc-server="
	TickInterval time.Duration `mapstructure:"tick_interval"`
	SeekLatency  time.Duration `mapstructure:"seek_latency"`
	DemoDuration time.Duration `mapstructure:"demo_duration"`
}

// ResumeConfig holds resume position persistence settings
type ResumeConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Dir           string        `mapstructure:"dir"`
	MinPosition   time.Duration `mapstructure:"min_position"`   // Positions below this are not resumed
	FinishedRatio float64       `mapstructure:"finished_ratio"` // Progress above this counts as watched
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme    string `mapstructure:"theme"`
	BarWidth int    `mapstructure:"bar_width"` // 0 uses the full terminal width
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scrubber: ScrubberConfig{
			StepSeconds:        scrubber.DefaultStepSeconds,
			PageMultiplier:     scrubber.DefaultPageMultiplier,
			ThrottleInterval:   scrubber.DefaultSyncInterval,
			EndEpsilon:         scrubber.DefaultEndEpsilon,
			IncludeTimeTooltip: true,
			IncludeMouseTime:   true,
		},
		Player: PlayerConfig{
			Backend:      BackendSimulated,
			Command:      "mpv",
			Args:         []string{},
			TickInterval: 20 * time.Millisecond,
			SeekLatency:  150 * time.Millisecond,
			DemoDuration: 10 * time.Minute,
		},
		Resume: ResumeConfig{
			Enabled:       true,
			Dir:           defaultCachePath(),
			MinPosition:   10 * time.Second,
			FinishedRatio: 0.95,
		},
		UI: UIConfig{
			Theme:    "default",
			BarWidth: 0,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// ScrubberOptions converts the scrubber section into core options.
func (c *Config) ScrubberOptions() scrubber.Options {
	return scrubber.Options{
		SyncInterval:       c.Scrubber.ThrottleInterval,
		StepSeconds:        c.Scrubber.StepSeconds,
		PageMultiplier:     c.Scrubber.PageMultiplier,
		EndEpsilon:         c.Scrubber.EndEpsilon,
		IncludeTimeTooltip: c.Scrubber.IncludeTimeTooltip,
		IncludeMouseTime:   c.Scrubber.IncludeMouseTime,
	}
}

// Validate checks value ranges that would otherwise misbehave at runtime
func (c *Config) Validate() error {
	switch {
	case c.Scrubber.StepSeconds <= 0:
		return fmt.Errorf("%w: scrubber.step_seconds must be positive", domain.ErrInvalidConfig)
	case c.Scrubber.PageMultiplier <= 0:
		return fmt.Errorf("%w: scrubber.page_multiplier must be positive", domain.ErrInvalidConfig)
	case c.Scrubber.ThrottleInterval <= 0:
		return fmt.Errorf("%w: scrubber.throttle_interval must be positive", domain.ErrInvalidConfig)
	case c.Scrubber.EndEpsilon < 0:
		return fmt.Errorf("%w: scrubber.end_epsilon must not be negative", domain.ErrInvalidConfig)
	case c.Player.Backend != BackendSimulated && c.Player.Backend != BackendMPV:
		return fmt.Errorf("%w: unknown player.backend %q", domain.ErrInvalidConfig, c.Player.Backend)
	case c.Player.TickInterval <= 0:
		return fmt.Errorf("%w: player.tick_interval must be positive", domain.ErrInvalidConfig)
	case c.Resume.FinishedRatio <= 0 || c.Resume.FinishedRatio > 1:
		return fmt.Errorf("%w: resume.finished_ratio must be in (0, 1]", domain.ErrInvalidConfig)
	}
	return nil
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "scrub", "scrub.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "scrub", "scrub.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "scrub")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "scrub")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "scrub", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "scrub", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath())
}

func loadConfig(v *viper.Viper, configDir string) (*Config, error) {
	cfg := DefaultConfig()

	// Register defaults so environment overrides apply to every key
	for key, value := range configValues(cfg) {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variable overrides
	v.SetEnvPrefix("SCRUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	dir, err := expandHome(cfg.Resume.Dir)
	if err != nil {
		return nil, err
	}
	cfg.Resume.Dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to config.yaml and returns its path
func SaveConfig(cfg *Config) (string, error) {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configDir string) (string, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	for key, value := range configValues(cfg) {
		v.Set(key, value)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

// configValues flattens cfg into viper keys. Durations are written as
// strings so the yaml stays readable.
func configValues(cfg *Config) map[string]any {
	return map[string]any{
		"scrubber.step_seconds":         cfg.Scrubber.StepSeconds,
		"scrubber.page_multiplier":      cfg.Scrubber.PageMultiplier,
		"scrubber.throttle_interval":    cfg.Scrubber.ThrottleInterval.String(),
		"scrubber.end_epsilon":          cfg.Scrubber.EndEpsilon,
		"scrubber.include_time_tooltip": cfg.Scrubber.IncludeTimeTooltip,
		"scrubber.include_mouse_time":   cfg.Scrubber.IncludeMouseTime,

		"player.backend":       string(cfg.Player.Backend),
		"player.command":       cfg.Player.Command,
		"player.args":          cfg.Player.Args,
		"player.socket":        cfg.Player.Socket,
		"player.start_flag":    cfg.Player.StartFlag,
		"player.ipc_flag":      cfg.Player.IPCFlag,
		"player.tick_interval": cfg.Player.TickInterval.String(),
		"player.seek_latency":  cfg.Player.SeekLatency.String(),
		"player.demo_duration": cfg.Player.DemoDuration.String(),

		"resume.enabled":        cfg.Resume.Enabled,
		"resume.dir":            cfg.Resume.Dir,
		"resume.min_position":   cfg.Resume.MinPosition.String(),
		"resume.finished_ratio": cfg.Resume.FinishedRatio,

		"ui.theme":     cfg.UI.Theme,
		"ui.bar_width": cfg.UI.BarWidth,

		"logging.file":  cfg.Logging.File,
		"logging.level": cfg.Logging.Level,
	}
}


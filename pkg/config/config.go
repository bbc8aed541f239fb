package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for yaml fields written as "10s", "5m" etc.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the tunable parameters of the reminder engine.
type Config struct {
	TickInterval       Duration `yaml:"tick_interval"`
	QualifyWindow      Duration `yaml:"qualify_window"`
	LogoutHour         int      `yaml:"logout_hour"`
	LogoutMinute       int      `yaml:"logout_minute"`
	NotesPollInterval  Duration `yaml:"notes_poll_interval"`
	CalendarInterval   Duration `yaml:"calendar_poll_interval"`
	LedgerPollInterval Duration `yaml:"ledger_poll_interval"`
	AudioCommand       string   `yaml:"audio_command"`
	AudioArgs          []string `yaml:"audio_args"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickInterval:       Duration(10 * time.Second),
		QualifyWindow:      Duration(5 * time.Minute),
		LogoutHour:         16,
		LogoutMinute:       30,
		NotesPollInterval:  Duration(30 * time.Second),
		CalendarInterval:   Duration(time.Minute),
		LedgerPollInterval: Duration(2 * time.Second),
	}
}

// Load reads a yaml config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LogoutHour < 0 || cfg.LogoutHour > 23 || cfg.LogoutMinute < 0 || cfg.LogoutMinute > 59 {
		return cfg, fmt.Errorf("logout time %02d:%02d out of range", cfg.LogoutHour, cfg.LogoutMinute)
	}
	return cfg, nil
}

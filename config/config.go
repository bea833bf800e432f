// Package config loads the dicegame settings from DICEGAME_* environment
// variables and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pterm/pterm"
)

// Config holds the settings of a dicegame run. Flags override the
// environment and positional arguments are the die configurations.
type Config struct {
	LogLevel   string `env:"DICEGAME_LOG_LEVEL" envDefault:"info"`
	Transcript bool   `env:"DICEGAME_TRANSCRIPT"`
	Banner     bool   `env:"DICEGAME_BANNER" envDefault:"true"`
	Rounds     int    `env:"DICEGAME_ROUNDS" envDefault:"1"`
	Dice       []string
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment and then args, which must not include the
// program name.
func Load(name string, args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if err := ParseFlags(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFlags registers the dicegame flags on fs, loads environment defaults
// into cfg and then parses args so that explicit flags win.
func ParseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag parser is required")
	}
	fs.StringVar(&cfg.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error or disabled")
	fs.BoolVar(&cfg.Transcript, "transcript", false, "print the sealed match transcript")
	fs.BoolVar(&cfg.Banner, "banner", false, "print the banner")
	fs.IntVar(&cfg.Rounds, "rounds", 0, "number of matches to play with the same dice")
	if err := ParseEnv(cfg); err != nil {
		return err
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Dice = fs.Args()
	return nil
}

// Validate checks the values that cannot be expressed as flag types.
func (c Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("rounds must be at least 1, got %d", c.Rounds)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLogLevel maps a level name onto the pterm logger levels.
func ParseLogLevel(s string) (pterm.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return pterm.LogLevelTrace, nil
	case "debug":
		return pterm.LogLevelDebug, nil
	case "", "info":
		return pterm.LogLevelInfo, nil
	case "warn", "warning":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	case "disabled", "off", "none":
		return pterm.LogLevelDisabled, nil
	default:
		return pterm.LogLevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

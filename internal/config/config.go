// Package config reads cardiz settings from CARDIZ_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	clog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/abhisek/cardiz/internal/llm"
)

// Prefix is prepended to every variable name.
const Prefix = "CARDIZ_"

// Config controls a cardiz run. Command-line flags override these values.
type Config struct {
	Count    int      `env:"COUNT" envDefault:"0"`
	Faces    []string `env:"FACES" envSeparator:","`
	Mode     string   `env:"MODE" envDefault:"match"`
	Line     bool     `env:"LINE"`
	Plain    bool     `env:"PLAIN"`
	Store    string   `env:"STORE" envDefault:"json"`
	Stats    string   `env:"STATS"`
	DB       string   `env:"DB"`
	LogPath  string   `env:"LOG"`
	LogLevel string   `env:"LOG_LEVEL" envDefault:"info"`

	LLM llm.Config `envPrefix:"LLM_"`
}

// Load reads .env from the working directory when present, then parses the
// environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{Prefix: Prefix})
}

// Default returns the configuration of an empty environment.
func Default() Config {
	cfg, _ := parse(env.Options{Prefix: Prefix, Environment: map[string]string{}})
	return cfg
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if opts.Environment == nil {
		cfg.LLM.Discover()
	}
	return cfg, nil
}

// Validate checks enum fields and bounds.
func (c *Config) Validate() error {
	switch c.Mode {
	case "match", "flash", "type":
	default:
		return fmt.Errorf("invalid mode %q (want match, flash or type)", c.Mode)
	}

	switch c.Store {
	case "json", "sqlite":
	default:
		return fmt.Errorf("invalid store %q (want json or sqlite)", c.Store)
	}

	if _, err := clog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}

	faces := c.Faces[:0]
	for _, f := range c.Faces {
		if f = strings.TrimSpace(f); f != "" {
			faces = append(faces, f)
		}
	}
	c.Faces = faces
	return nil
}

// ExplainEnabled reports whether mistake explanations can be requested.
func (c *Config) ExplainEnabled() bool {
	return c.LLM.Enabled() && c.LLM.Validate() == nil
}

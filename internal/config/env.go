package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type envOverrides struct {
	Mode   string `env:"STARFIELD_MODE"`
	Seed   int64  `env:"STARFIELD_SEED"`
	FPS    int    `env:"STARFIELD_FPS"`
	Theme  string `env:"STARFIELD_THEME"`
	Easing string `env:"STARFIELD_EASING"`
}

// ApplyEnv overlays STARFIELD_* environment variables onto c. Unset
// variables leave the current value in place.
func ApplyEnv(c *Config) error {
	ov := envOverrides{
		Mode:   c.Mode,
		Seed:   c.Seed,
		FPS:    c.FPS,
		Theme:  c.Theme,
		Easing: c.Easing,
	}
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.Mode = ov.Mode
	c.Seed = ov.Seed
	c.FPS = ov.FPS
	c.Theme = ov.Theme
	c.Easing = ov.Easing
	return nil
}

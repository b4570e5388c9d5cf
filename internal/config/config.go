package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/starfield/internal/easing"
	"github.com/san-kum/starfield/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMode       = "tween"
	DefaultFrameMs    = 16.0
	DefaultFPS        = 60
	DefaultSpeedFloor = 0.001
	DefaultStarCap    = 300
	DefaultCrawl      = 0.0001
	DefaultTweenK     = 10.0
	DefaultTheme      = "cyberpunk"
	DefaultWidth      = 1280
	DefaultHeight     = 720
)

var (
	ErrUnknownMode     = errors.New("config: unknown mode")
	ErrUnorderedSlides = errors.New("config: slide positions must increase")
)

type Config struct {
	Mode       string        `yaml:"mode"`
	Seed       int64         `yaml:"seed"`
	FrameMs    float64       `yaml:"frame_ms"`
	FPS        int           `yaml:"fps"`
	SpeedFloor float64       `yaml:"speed_floor"`
	StarCap    int           `yaml:"star_cap"`
	Crawl      float64       `yaml:"crawl"`
	TweenK     float64       `yaml:"tween_k"`
	Easing     string        `yaml:"easing"`
	Theme      string        `yaml:"theme"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Slides     []SlideConfig `yaml:"slides"`
}

type SlideConfig struct {
	Position float64 `yaml:"position"`
	Text     string  `yaml:"text"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:       DefaultMode,
		FrameMs:    DefaultFrameMs,
		FPS:        DefaultFPS,
		SpeedFloor: DefaultSpeedFloor,
		StarCap:    DefaultStarCap,
		Crawl:      DefaultCrawl,
		TweenK:     DefaultTweenK,
		Easing:     easing.Default,
		Theme:      DefaultTheme,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Slides: []SlideConfig{
			{Position: 0, Text: "A journey through space and time"},
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; keys missing from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Slides = make([]SlideConfig, len(c.Slides))
	copy(cp.Slides, c.Slides)
	return &cp
}

func (c *Config) Validate() error {
	if _, err := c.SimMode(); err != nil {
		return err
	}
	if _, err := easing.Lookup(c.Easing); err != nil {
		return err
	}
	if c.FrameMs <= 0 {
		return fmt.Errorf("frame_ms must be positive, got %f", c.FrameMs)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height)
	}
	for i := 1; i < len(c.Slides); i++ {
		if c.Slides[i].Position <= c.Slides[i-1].Position {
			return fmt.Errorf("%w: slide %d at %.2f follows %.2f", ErrUnorderedSlides, i, c.Slides[i].Position, c.Slides[i-1].Position)
		}
	}
	return nil
}

func (c *Config) SimMode() (sim.Mode, error) {
	switch c.Mode {
	case "", "tween":
		return sim.ModeTween, nil
	case "pointer":
		return sim.ModePointer, nil
	}
	return sim.ModeTween, fmt.Errorf("%w: %s", ErrUnknownMode, c.Mode)
}

// Params builds engine parameters from the config. Engine-level checks
// (positive floor, tween k) happen in sim.NewEngine.
func (c *Config) Params() (sim.Params, error) {
	if err := c.Validate(); err != nil {
		return sim.Params{}, err
	}
	mode, _ := c.SimMode()
	ease, _ := easing.Lookup(c.Easing)

	p := sim.DefaultParams()
	p.Mode = mode
	p.Floor = c.SpeedFloor
	p.Cap = c.StarCap
	p.Crawl = c.Crawl
	p.TweenK = c.TweenK
	p.Ease = ease
	return p, nil
}

func (c *Config) Deck() []sim.Slide {
	deck := make([]sim.Slide, len(c.Slides))
	for i, s := range c.Slides {
		deck[i] = sim.Slide{Position: s.Position, Text: s.Text}
	}
	return deck
}

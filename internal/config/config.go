// Package config loads snapframe.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "SNAPFRAME_CONFIG"

// Config is the full configuration file.
type Config struct {
	History    HistoryConfig    `toml:"history"`
	Gesture    GestureConfig    `toml:"gesture"`
	Text       TextConfig       `toml:"text"`
	Shape      ShapeConfig      `toml:"shape"`
	Blur       BlurConfig       `toml:"blur"`
	Background BackgroundConfig `toml:"background"`
	Padding    PaddingConfig    `toml:"padding"`
	Log        LogConfig        `toml:"log"`
}

type HistoryConfig struct {
	Depth int `toml:"depth"`
}

// GestureConfig holds pointer thresholds in canvas pixels.
type GestureConfig struct {
	MinDrag         float64 `toml:"min_drag"`
	RectResizeMin   float64 `toml:"rect_resize_min"`
	CircleResizeMin float64 `toml:"circle_resize_min"`
}

type TextConfig struct {
	DefaultSize   float64 `toml:"default_size"`
	MinSize       float64 `toml:"min_size"`
	MaxSize       float64 `toml:"max_size"`
	DefaultFamily string  `toml:"default_family"`
	DefaultColor  string  `toml:"default_color"`
	// Fonts maps a family name to a TrueType file that replaces the
	// built-in face for it.
	Fonts map[string]string `toml:"fonts"`
}

type ShapeConfig struct {
	DefaultColor  string  `toml:"default_color"`
	DefaultStroke float64 `toml:"default_stroke"`
}

// Blur backends.
const (
	BlurResample = "resample"
	BlurGaussian = "gaussian"
)

type BlurConfig struct {
	DefaultIntensity float64 `toml:"default_intensity"`
	Backend          string  `toml:"backend"`
}

type BackgroundConfig struct {
	Type   string  `toml:"type"`
	Color1 string  `toml:"color1"`
	Color2 string  `toml:"color2"`
	Angle  float64 `toml:"angle"`
	Size   float64 `toml:"size"`
	Aspect string  `toml:"aspect"`
}

type PaddingConfig struct {
	Normalized int `toml:"normalized"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		History: HistoryConfig{Depth: 10},
		Gesture: GestureConfig{
			MinDrag:         5,
			RectResizeMin:   10,
			CircleResizeMin: 5,
		},
		Text: TextConfig{
			DefaultSize:   24,
			MinSize:       8,
			MaxSize:       120,
			DefaultFamily: "Arial",
			DefaultColor:  "#000000",
		},
		Shape: ShapeConfig{
			DefaultColor:  "#800080",
			DefaultStroke: 4,
		},
		Blur: BlurConfig{
			DefaultIntensity: 5,
			Backend:          BlurResample,
		},
		Background: BackgroundConfig{
			Type:   "linear",
			Color1: "#3498db",
			Color2: "#9b59b6",
			Angle:  135,
			Size:   0,
			Aspect: "auto",
		},
		Padding: PaddingConfig{Normalized: 50},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path falls back to
// $SNAPFRAME_CONFIG; when neither names a file the defaults are returned.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == os.Getenv(EnvPath) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg.normalize(), nil
}

// normalize replaces unusable values with defaults.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.History.Depth < 1 {
		c.History.Depth = d.History.Depth
	}
	if c.Gesture.MinDrag < 0 {
		c.Gesture.MinDrag = d.Gesture.MinDrag
	}
	if c.Gesture.RectResizeMin <= 0 {
		c.Gesture.RectResizeMin = d.Gesture.RectResizeMin
	}
	if c.Gesture.CircleResizeMin <= 0 {
		c.Gesture.CircleResizeMin = d.Gesture.CircleResizeMin
	}
	if c.Text.MinSize <= 0 {
		c.Text.MinSize = d.Text.MinSize
	}
	if c.Text.MaxSize < c.Text.MinSize {
		c.Text.MaxSize = max(d.Text.MaxSize, c.Text.MinSize)
	}
	if c.Text.DefaultSize <= 0 {
		c.Text.DefaultSize = d.Text.DefaultSize
	}
	if c.Shape.DefaultStroke <= 0 {
		c.Shape.DefaultStroke = d.Shape.DefaultStroke
	}
	switch c.Blur.Backend {
	case BlurResample, BlurGaussian:
	default:
		c.Blur.Backend = d.Blur.Backend
	}
	if c.Padding.Normalized < 0 {
		c.Padding.Normalized = d.Padding.Normalized
	}
	return c
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

package config

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"

	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
	"SketchBoard/internal/tools"
)

type Config struct {
	Width        int           `envconfig:"WIDTH" default:"800"`
	Height       int           `envconfig:"HEIGHT" default:"600"`
	Backend      string        `envconfig:"BACKEND" default:"raster"`
	Background   string        `envconfig:"BACKGROUND" default:"#ffffff"`
	Antialias    bool          `envconfig:"ANTIALIAS" default:"true"`
	HistoryDepth int           `envconfig:"HISTORY_DEPTH" default:"0"`
	BrushWidth   float32       `envconfig:"BRUSH_WIDTH" default:"3"`
	BrushColor   string        `envconfig:"BRUSH_COLOR" default:"#000000"`
	Tool         string        `envconfig:"TOOL" default:"none"`
	EnhanceURL   string        `envconfig:"ENHANCE_URL" default:"http://localhost:5000/enhance"`
	Timeout      time.Duration `envconfig:"ENHANCE_TIMEOUT" default:"60s"`
	GalleryDir   string        `envconfig:"GALLERY_DIR" default:"./data/gallery"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads SKETCHBOARD_* variables and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("sketchboard", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height)
	}
	switch surface.Backend(c.Backend) {
	case surface.BackendRaster, surface.BackendPaths:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.HistoryDepth < 0 {
		return fmt.Errorf("history depth %d is negative", c.HistoryDepth)
	}
	if c.BrushWidth <= 0 {
		return fmt.Errorf("brush width %v must be positive", c.BrushWidth)
	}
	if _, err := state.ParseHex(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := state.ParseHex(c.BrushColor); err != nil {
		return fmt.Errorf("brush color: %w", err)
	}
	if _, ok := tools.ParseTool(c.Tool); !ok {
		return fmt.Errorf("unknown tool %q", c.Tool)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor returns the parsed background. Validate must have passed.
func (c *Config) BackgroundColor() color.NRGBA {
	bg, _ := state.ParseHex(c.Background)
	return bg
}

// Brush returns the starting brush. Validate must have passed.
func (c *Config) Brush() state.Brush {
	col, _ := state.ParseHex(c.BrushColor)
	return state.Brush{Color: col, Width: c.BrushWidth, Opacity: 1}
}

// StartTool returns the tool selected at start-up. Validate must have passed.
func (c *Config) StartTool() tools.Tool {
	t, _ := tools.ParseTool(c.Tool)
	return t
}

func (c *Config) SurfaceOptions() surface.Options {
	return surface.Options{Background: c.BackgroundColor(), Aliased: !c.Antialias}
}

func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

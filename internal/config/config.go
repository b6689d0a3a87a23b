// Package config loads the XConsole settings file.
//
// Settings live in a TOML file with one table per concern:
//
//	[window]
//	width = 129
//	height = 59
//	title = "XConsole"
//	cursor = false
//
//	[palette]
//	colors = ["#000000", "#230105", ...] # exactly 16 entries
//
//	[frame]
//	delay = "10ms"
//
//	[log]
//	level = "info"
//	file = "xconsole.log"
//
//	[script]
//	path = "sprite.lua"
//	watch = true
//
//	[demo]
//	fire_iterations = 2000
//
// A missing file yields Default. Keys not listed above are rejected.
package config

import (
	"fmt"
	"time"

	"github.com/NBAH79/XConsole/internal/logging"
	"github.com/NBAH79/XConsole/internal/renderer/core"
)

// Config is the full settings tree.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Palette PaletteConfig `toml:"palette"`
	Frame   FrameConfig   `toml:"frame"`
	Log     LogConfig     `toml:"log"`
	Script  ScriptConfig  `toml:"script"`
	Demo    DemoConfig    `toml:"demo"`
}

// WindowConfig sizes and names the console window.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	Cursor bool   `toml:"cursor"`
}

// PaletteConfig lists the 16 palette entries as "#RRGGBB" strings. The
// default is a dark-to-bright fire ramp. An empty list keeps the driver's
// palette.
type PaletteConfig struct {
	Colors []string `toml:"colors"`
}

// FrameConfig paces the render loop.
type FrameConfig struct {
	Delay string `toml:"delay"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ScriptConfig points at an optional Lua sprite script.
type ScriptConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// DemoConfig tunes the demo scene.
type DemoConfig struct {
	FireIterations int `toml:"fire_iterations"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  129,
			Height: 59,
			Title:  "XConsole",
		},
		Palette: PaletteConfig{Colors: []string{
			"#000000", "#230105", "#3C0703", "#641602",
			"#8F2C00", "#B53D01", "#E03C00", "#C83C50",
			"#AA3C82", "#964E9B", "#765FBC", "#64AAC8",
			"#9DE3EC", "#7F7F7F", "#3F0000", "#00FF00",
		}},
		Frame: FrameConfig{Delay: "10ms"},
		Log:   LogConfig{Level: "info"},
		Demo:  DemoConfig{FireIterations: 2000},
	}
}

// Validate checks every value and returns a *ValidationError for the
// first bad one.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Width > 0xFFFF {
		return &ValidationError{Key: "window.width", Value: c.Window.Width, Message: "must be between 1 and 65535"}
	}
	if c.Window.Height <= 0 || c.Window.Height > 0xFFFF {
		return &ValidationError{Key: "window.height", Value: c.Window.Height, Message: "must be between 1 and 65535"}
	}
	if _, err := c.Palette.Resolve(); err != nil {
		return &ValidationError{Key: "palette.colors", Value: c.Palette.Colors, Message: err.Error(), Err: err}
	}
	if _, err := c.Frame.Duration(); err != nil {
		return &ValidationError{Key: "frame.delay", Value: c.Frame.Delay, Message: err.Error(), Err: err}
	}
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		return &ValidationError{Key: "log.level", Value: c.Log.Level, Message: "must be debug, info, warn or error"}
	}
	if c.Demo.FireIterations < 0 {
		return &ValidationError{Key: "demo.fire_iterations", Value: c.Demo.FireIterations, Message: "must not be negative"}
	}
	return nil
}

// Resolve parses the palette. It returns nil when no colors are configured.
func (p PaletteConfig) Resolve() (*core.Palette, error) {
	if len(p.Colors) == 0 {
		return nil, nil
	}
	if len(p.Colors) != core.PaletteSize {
		return nil, fmt.Errorf("%w: %d entries, want %d", ErrInvalidPalette, len(p.Colors), core.PaletteSize)
	}

	entries := make([]core.RGB, len(p.Colors))
	for i, s := range p.Colors {
		rgb, err := core.ParseRGB(s)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidPalette, i, err)
		}
		entries[i] = rgb
	}
	palette, err := core.NewPalette(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPalette, err)
	}
	return &palette, nil
}

// Duration parses the frame delay. An empty delay means no pause.
func (f FrameConfig) Duration() (time.Duration, error) {
	if f.Delay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Delay)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative delay %v", d)
	}
	return d, nil
}

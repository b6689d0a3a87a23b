package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/NBAH79/XConsole/internal/renderer/core"
)

const sixteen = `["#000000", "#230105", "#3C0703", "#641602", "#8F2C00", "#B53D01", "#E03C00", "#C83C50",
  "#AA3C82", "#964E9B", "#765FBC", "#64AAC8", "#9DE3EC", "#7F7F7F", "#3F0000", "#00FF00"]`

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := NewLoaderWithFS(NewMemFS()).Load("xconsole.toml")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Window.Width != 129 || cfg.Window.Height != 59 {
		t.Errorf("expected default size, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
}

func TestLoad(t *testing.T) {
	fsys := NewMemFS()
	fsys.WriteFile("xconsole.toml", []byte(`
[window]
width = 80
height = 25
title = "demo"
cursor = true

[palette]
colors = `+sixteen+`

[frame]
delay = "16ms"

[log]
level = "debug"

[script]
path = "sprite.lua"
watch = true
`))

	cfg, err := NewLoaderWithFS(fsys).Load("xconsole.toml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window != (WindowConfig{Width: 80, Height: 25, Title: "demo", Cursor: true}) {
		t.Errorf("unexpected window config %+v", cfg.Window)
	}
	if d, _ := cfg.Frame.Duration(); d != 16*time.Millisecond {
		t.Errorf("expected 16ms, got %v", d)
	}
	if cfg.Demo.FireIterations != 2000 {
		t.Errorf("expected default fire iterations to survive, got %d", cfg.Demo.FireIterations)
	}
	if !cfg.Script.Watch || cfg.Script.Path != "sprite.lua" {
		t.Errorf("unexpected script config %+v", cfg.Script)
	}

	p, err := cfg.Palette.Resolve()
	if err != nil || p == nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p[1] != (core.RGB{R: 0x23, G: 0x01, B: 0x05}) {
		t.Errorf("unexpected palette entry %v", p[1])
	}
}

func TestLoadParseError(t *testing.T) {
	fsys := NewMemFS()
	fsys.WriteFile("bad.toml", []byte("[window]\nwidth = = 3\n"))

	_, err := NewLoaderWithFS(fsys).Load("bad.toml")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T %v", err, err)
	}
	if perr.Line != 2 {
		t.Errorf("expected line 2, got %d", perr.Line)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Parse([]byte("[window]\nwidht = 3\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T %v", err, err)
	}
	if !strings.Contains(perr.Message, "window.widht") {
		t.Errorf("expected unknown key in message, got %q", perr.Message)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		data string
		key  string
	}{
		{"zero width", "[window]\nwidth = 0", "window.width"},
		{"huge height", "[window]\nheight = 70000", "window.height"},
		{"short palette", "[palette]\ncolors = [\"#000000\"]", "palette.colors"},
		{"bad delay", "[frame]\ndelay = \"soon\"", "frame.delay"},
		{"negative delay", "[frame]\ndelay = \"-1s\"", "frame.delay"},
		{"bad level", "[log]\nlevel = \"loud\"", "log.level"},
		{"negative iterations", "[demo]\nfire_iterations = -1", "demo.fire_iterations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T %v", err, err)
			}
			if verr.Key != tt.key {
				t.Errorf("expected key %s, got %s", tt.key, verr.Key)
			}
		})
	}
}

func TestPaletteResolve(t *testing.T) {
	p, err := PaletteConfig{}.Resolve()
	if p != nil || err != nil {
		t.Errorf("expected nil palette for empty list, got %v %v", p, err)
	}

	colors := strings.Split(strings.Repeat("#112233,", 16), ",")[:16]
	colors[7] = "not-a-color"
	if _, err := (PaletteConfig{Colors: colors}).Resolve(); !errors.Is(err, ErrInvalidPalette) {
		t.Errorf("expected ErrInvalidPalette, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v\n%s", err, data)
	}
	if cfg.Window != Default().Window {
		t.Errorf("expected default window, got %+v", cfg.Window)
	}
}

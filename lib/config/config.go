package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"github.com/opengl-setup-test/hellogl/lib/utils"
)

const (
	Triangle = "triangle"
	Quad     = "quad"
)

type Config struct {
	Demo        string
	Window      WindowCfg
	Shader      ShaderCfg
	ClearColour string `yaml:"clear_colour"`
	LogLevel    string `yaml:"log_level"`
	Api         *ApiCfg
}

type WindowCfg struct {
	Title     string
	Width     int
	Height    int
	GLMajor   int `yaml:"gl_major"`
	GLMinor   int `yaml:"gl_minor"`
	VSync     bool
	Resizable bool
}

type ShaderCfg struct {
	// Path to a combined shader file, empty means the embedded one
	Path    CfgPath
	Inotify bool
	Colour  string
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default returns the configuration the demos run with when no config file
// is given: a 640x480 "Hello World" window drawing a red shape
func Default(demo string) *Config {
	return &Config{
		Demo: demo,
		Window: WindowCfg{
			Title:   "Hello World",
			Width:   640,
			Height:  480,
			GLMajor: 3,
			GLMinor: 3,
			VSync:   true,
		},
		Shader: ShaderCfg{
			Colour: "#ff0000ff",
		},
		ClearColour: "#000000ff",
		LogLevel:    "info",
	}
}

// Load parses filename on top of the defaults for demo. An empty filename
// yields the defaults. The demo of the calling binary always wins.
func Load(filename string, demo string) (*Config, error) {
	if filename == "" {
		cfg := Default(demo)
		return cfg, cfg.Validate()
	}
	cfg, err := parseOnto(filename, Default(demo))
	if err != nil {
		return nil, err
	}
	cfg.Demo = demo
	return cfg, cfg.Validate()
}

func Parse(filename string) (*Config, error) {
	cfg, err := parseOnto(filename, Default(""))
	if err != nil {
		return nil, err
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseOnto(filename string, cfg *Config) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer f.Close()

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}

	m := yaml.NewDecoder(f, yaml.DisallowUnknownField())
	err = withBase(filepath.Dir(absFilename), func() error {
		return m.Decode(cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Demo {
	case Triangle, Quad:
	case "":
		return fmt.Errorf("demo must be specified (%s or %s)", Triangle, Quad)
	default:
		return fmt.Errorf("unknown demo: %s", c.Demo)
	}

	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}
	err = c.Shader.Validate()
	if err != nil {
		return fmt.Errorf("shader is invalid: %w", err)
	}
	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("clear_colour %q is not a valid RGBA hex colour", c.ClearColour)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level: %s", c.LogLevel)
	}
	if c.Api != nil {
		err = c.Api.Validate()
		if err != nil {
			return fmt.Errorf("api is invalid: %w", err)
		}
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.GLMajor < 3 || w.GLMajor > 4 {
		return fmt.Errorf("gl_major must be 3 or 4, got %d", w.GLMajor)
	}
	if w.GLMinor < 0 {
		return fmt.Errorf("gl_minor must be nonnegative")
	}
	if w.GLMajor == 3 && w.GLMinor < 2 {
		// core profiles only exist from 3.2 onwards
		return fmt.Errorf("a core profile needs at least OpenGL 3.2, got %d.%d", w.GLMajor, w.GLMinor)
	}
	return nil
}

func (s *ShaderCfg) Validate() error {
	if s.Inotify && s.Path == "" {
		return fmt.Errorf("cannot enable inotify for the embedded shader")
	}
	if !utils.ColourValidate(s.Colour) {
		return fmt.Errorf("colour %q is not a valid RGBA hex colour", s.Colour)
	}
	return nil
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Demo: %s\n", c.Demo)
	fmt.Fprintf(&b, "\nWindow:\n  %q %dx%d (OpenGL %d.%d core)\n",
		c.Window.Title, c.Window.Width, c.Window.Height, c.Window.GLMajor, c.Window.GLMinor)

	b.WriteString("\nShader:\n")
	if c.Shader.Path == "" {
		b.WriteString("  embedded\n")
	} else {
		fmt.Fprintf(&b, "  %s", c.Shader.Path)
		if c.Shader.Inotify {
			b.WriteString(" (watched)")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  colour %s, clear %s\n", c.Shader.Colour, c.ClearColour)

	if c.Api != nil {
		fmt.Fprintf(&b, "\nApi:\n  %s\n", c.Api.Bind)
	}
	return b.String()
}

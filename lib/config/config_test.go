package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "hellogl.yaml")
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestDefaultIsValid(t *testing.T) {
	for _, demo := range []string{Triangle, Quad} {
		cfg := Default(demo)
		if err := cfg.Validate(); err != nil {
			t.Errorf("Default(%s) is invalid: %s", demo, err)
		}
		if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
			t.Errorf("Default(%s) window = %dx%d, want 640x480", demo, cfg.Window.Width, cfg.Window.Height)
		}
		if cfg.Window.Title != "Hello World" {
			t.Errorf("Default(%s) title = %q", demo, cfg.Window.Title)
		}
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("", Quad)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Demo != Quad {
		t.Errorf("demo = %s, want %s", cfg.Demo, Quad)
	}
	if cfg.Api != nil {
		t.Errorf("api should be disabled by default")
	}
}

func TestParse(t *testing.T) {
	filename := writeConfig(t, `
demo: quad
window:
  title: Hello Quad
  width: 800
  height: 600
  gl_major: 4
  gl_minor: 1
  vsync: true
shader:
  path: shaders/basic.shader
  inotify: true
  colour: "#00ff00ff"
clear_colour: "#202020ff"
log_level: debug
api:
  bind: 127.0.0.1:8000
  enable_profiler: true
`)
	cfg, err := Parse(filename)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Demo != Quad {
		t.Errorf("demo = %q", cfg.Demo)
	}
	if cfg.Window.Title != "Hello Quad" || cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Window.GLMajor != 4 || cfg.Window.GLMinor != 1 {
		t.Errorf("gl version = %d.%d", cfg.Window.GLMajor, cfg.Window.GLMinor)
	}
	wantPath := filepath.Join(filepath.Dir(filename), "shaders", "basic.shader")
	if string(cfg.Shader.Path) != wantPath {
		t.Errorf("shader path = %q, want %q", cfg.Shader.Path, wantPath)
	}
	if !cfg.Shader.Inotify {
		t.Errorf("inotify not set")
	}
	if cfg.ClearColour != "#202020ff" {
		t.Errorf("clear_colour = %q", cfg.ClearColour)
	}
	if cfg.Api == nil || cfg.Api.Bind != "127.0.0.1:8000" || !cfg.Api.EnableProfiler {
		t.Errorf("api = %+v", cfg.Api)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	filename := writeConfig(t, "demo: triangle\n")
	cfg, err := Parse(filename)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Shader.Colour != "#ff0000ff" {
		t.Errorf("shader colour = %q, want default", cfg.Shader.Colour)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level = %q, want default", cfg.LogLevel)
	}
}

func TestParseAbsolutePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.shader")
	filename := writeConfig(t, "demo: quad\nshader:\n  path: "+abs+"\n  colour: \"#ffffffff\"\n")
	cfg, err := Parse(filename)
	if err != nil {
		t.Fatal(err)
	}
	if string(cfg.Shader.Path) != abs {
		t.Errorf("shader path = %q, want %q", cfg.Shader.Path, abs)
	}
}

func TestLoadOverridesDemo(t *testing.T) {
	filename := writeConfig(t, "demo: quad\n")
	cfg, err := Load(filename, Triangle)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Demo != Triangle {
		t.Errorf("demo = %s, want %s", cfg.Demo, Triangle)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown demo", "demo: cube\n", "unknown demo"},
		{"missing demo", "log_level: info\n", "demo must be specified"},
		{"bad clear colour", "demo: quad\nclear_colour: red\n", "clear_colour"},
		{"bad log level", "demo: quad\nlog_level: loud\n", "log_level"},
		{"inotify without path", "demo: quad\nshader:\n  inotify: true\n  colour: \"#ff0000ff\"\n", "inotify"},
		{"empty api bind", "demo: quad\napi:\n  enable_profiler: true\n", "bind address"},
		{"unknown field", "demo: quad\nwindoww: {}\n", "could not decode"},
		{"bad yaml", "demo: [\n", "could not decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("expected an error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestWindowValidate(t *testing.T) {
	tests := []struct {
		name  string
		w     WindowCfg
		valid bool
	}{
		{"3.3", WindowCfg{Width: 1, Height: 1, GLMajor: 3, GLMinor: 3}, true},
		{"3.2", WindowCfg{Width: 1, Height: 1, GLMajor: 3, GLMinor: 2}, true},
		{"4.6", WindowCfg{Width: 1, Height: 1, GLMajor: 4, GLMinor: 6}, true},
		{"3.1", WindowCfg{Width: 1, Height: 1, GLMajor: 3, GLMinor: 1}, false},
		{"2.1", WindowCfg{Width: 1, Height: 1, GLMajor: 2, GLMinor: 1}, false},
		{"zero width", WindowCfg{Width: 0, Height: 1, GLMajor: 3, GLMinor: 3}, false},
		{"negative height", WindowCfg{Width: 1, Height: -1, GLMajor: 3, GLMinor: 3}, false},
	}
	for _, tt := range tests {
		err := tt.w.Validate()
		if (err == nil) != tt.valid {
			t.Errorf("%s: Validate() = %v, want valid=%v", tt.name, err, tt.valid)
		}
	}
}

func TestString(t *testing.T) {
	cfg := Default(Triangle)
	cfg.Api = &ApiCfg{Bind: ":8000"}
	s := cfg.String()
	for _, want := range []string{"Demo: triangle", "\"Hello World\" 640x480", "embedded", ":8000"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Parse(filepath.Join("..", "..", "example.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Demo != Quad || cfg.Api == nil || !cfg.Shader.Inotify {
		t.Errorf("unexpected example config: %+v", cfg)
	}
	if _, err := os.Stat(string(cfg.Shader.Path)); err != nil {
		t.Errorf("example shader is missing: %s", err)
	}
}

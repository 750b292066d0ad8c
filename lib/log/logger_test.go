package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerPlainOutput(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.With("module", "shaders").Info("compiled", "stage", "vertex")
	logger.Debug("hidden")

	line := out.String()
	if strings.Contains(line, "\033[") {
		t.Errorf("output to a buffer should not be coloured: %q", line)
	}
	for _, want := range []string{"INFO ", "[shaders] ", "compiled", "stage=vertex"} {
		if !strings.Contains(line, want) {
			t.Errorf("output %q is missing %q", line, want)
		}
	}
	if strings.Contains(line, "hidden") {
		t.Errorf("debug line should have been filtered: %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("expected exactly one line, got %q", line)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("ParseLevel(loud) should fail")
	}
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out)

	if err := p.Run("Initializing the GLFW library", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	wantErr := errors.New("no display")
	if err := p.Run("Creating Window", func() error { return wantErr }); err != wantErr {
		t.Fatalf("Run returned %v, want %v", err, wantErr)
	}

	want := "Initializing the GLFW library...Done\nCreating Window...Failed: no display\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestHandlerSortsAttributes(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil))

	for range 5 {
		logger.Info("frame", "zeta", 1, "alpha", 2, "mid", 3)
	}

	for i, line := range strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n") {
		if !strings.HasSuffix(line, "frame alpha=2 mid=3 zeta=1") {
			t.Errorf("line %d = %q, want attributes sorted by key", i, line)
		}
	}
}

package kbdctl

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type Command int

const (
	NoCommand Command = iota
	CloseWindow
	Quit
	ReloadShader
)

// Controller receives the commands that are not handled by the window
// itself
type Controller interface {
	RequestShutdown()
	RequestReload()
}

func SetupShortcutKeys(w *glfw.Window, ctl Controller) {
	w.SetKeyCallback(keyCallback(ctl))
}

func Poll() {
	glfw.PollEvents()
}

// Decide maps a key event to a command: Escape closes the window,
// Ctrl+Shift+Q quits and R reloads the shader
func Decide(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) Command {
	switch action {
	case glfw.Release:
		if key == glfw.KeyQ &&
			mods&glfw.ModControl != 0 &&
			mods&glfw.ModShift != 0 {
			return Quit
		}
	case glfw.Press:
		switch key {
		case glfw.KeyEscape:
			return CloseWindow
		case glfw.KeyR:
			if mods == 0 {
				return ReloadShader
			}
		}
	}
	return NoCommand
}

func keyCallback(ctl Controller) glfw.KeyCallback {
	logger := slog.Default().With("module", "kbdctl")
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch Decide(key, action, mods) {
		case CloseWindow:
			logger.Debug("escape pressed, closing window")
			w.SetShouldClose(true)
		case Quit:
			logger.Info("told to quit, exiting")
			ctl.RequestShutdown()
		case ReloadShader:
			logger.Info("reloading shader")
			ctl.RequestReload()
		}
	}
}

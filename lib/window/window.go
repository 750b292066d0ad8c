package window

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/opengl-setup-test/hellogl/lib/config"
)

type Window struct {
	*glfw.Window
	cfg *config.WindowCfg
}

// InitGLFW initialises the library; call Terminate when done
func InitGLFW() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	return nil
}

func Terminate() {
	glfw.Terminate()
}

func hint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// New creates a window with an OpenGL core profile context of the
// configured version. The context is not made current.
func New(cfg *config.WindowCfg) (*Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, hint(cfg.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create %dx%d window: %w", cfg.Width, cfg.Height, err)
	}
	return &Window{Window: w, cfg: cfg}, nil
}

// MakeCurrent makes the window's context current on the calling thread and
// applies the vsync setting, which needs a current context
func (w *Window) MakeCurrent() {
	w.MakeContextCurrent()
	if w.cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
}

func (w *Window) Close() {
	w.Destroy()
}

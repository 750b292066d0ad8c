package demo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/opengl-setup-test/hellogl/lib/api"
	"github.com/opengl-setup-test/hellogl/lib/config"
	"github.com/opengl-setup-test/hellogl/lib/kbdctl"
	"github.com/opengl-setup-test/hellogl/lib/log"
	"github.com/opengl-setup-test/hellogl/lib/metrics"
	"github.com/opengl-setup-test/hellogl/lib/rendering"
	"github.com/opengl-setup-test/hellogl/lib/rendering/shaders"
	"github.com/opengl-setup-test/hellogl/lib/stats"
	"github.com/opengl-setup-test/hellogl/lib/utils"
	"github.com/opengl-setup-test/hellogl/lib/window"
)

// variant is what differs between the triangle and the quad demo
type variant struct {
	mesh      func() *rendering.Mesh
	call      rendering.Caller
	uploadMsg string
}

var variants = map[string]variant{
	config.Triangle: {
		mesh:      rendering.Triangle,
		call:      rendering.Unchecked,
		uploadMsg: "Uploading vertex buffer",
	},
	config.Quad: {
		mesh:      rendering.Quad,
		call:      rendering.Call,
		uploadMsg: "Uploading vertex and index buffers",
	},
}

type Demo struct {
	cfg      *config.Config
	variant  variant
	progress *log.Progress
	logger   *slog.Logger

	shaderer   *shaders.Shaderer
	shaderData *shaders.ShaderData
	Stats      *stats.Collector

	shutdownRequested atomic.Bool
	reload            chan struct{}
}

func New(cfg *config.Config) (*Demo, error) {
	v, ok := variants[cfg.Demo]
	if !ok {
		return nil, fmt.Errorf("unknown demo: %s", cfg.Demo)
	}
	shaderer, err := shaders.NewShaderer()
	if err != nil {
		return nil, fmt.Errorf("could not get shaders: %w", err)
	}

	d := &Demo{
		cfg:      cfg,
		variant:  v,
		progress: log.NewProgress(os.Stdout),
		logger:   slog.Default().With("module", cfg.Demo),
		shaderer: shaderer,
		shaderData: &shaders.ShaderData{
			GLSLVersion: shaders.GLSLVersion(cfg.Window.GLMajor, cfg.Window.GLMinor),
			Colour:      utils.ColourVec(cfg.Shader.Colour),
		},
		Stats:  stats.New(cfg.Demo),
		reload: make(chan struct{}, 1),
	}
	return d, nil
}

func (d *Demo) RequestShutdown() {
	d.shutdownRequested.Store(true)
}

// RequestReload asks the render loop to rebuild the shader program before
// the next frame. Requests made while one is pending are merged.
func (d *Demo) RequestReload() {
	select {
	case d.reload <- struct{}{}:
	default:
	}
}

func (d *Demo) ShutdownRequested() bool {
	return d.shutdownRequested.Load()
}

// LoadShader renders and splits the configured shader source
func (d *Demo) LoadShader() (*shaders.Source, error) {
	return d.shaderer.Load(d.cfg.Demo, string(d.cfg.Shader.Path), d.shaderData)
}

// Run opens the window and renders until it is closed, shutdown is
// requested or ctx is cancelled. It must be called on the main thread.
func (d *Demo) Run(ctx context.Context) error {
	err := d.progress.Run("Initializing the GLFW library", window.InitGLFW)
	if err != nil {
		return err
	}
	defer func() {
		d.progress.Step("Terminating Window")
		window.Terminate()
		d.progress.Done()
	}()

	var win *window.Window
	err = d.progress.Run("Creating Window", func() error {
		win, err = window.New(&d.cfg.Window)
		return err
	})
	if err != nil {
		return err
	}
	defer win.Close()

	d.progress.Step("Creating valid OpenGL rendering context")
	win.MakeCurrent()
	d.progress.Done()

	err = d.progress.Run("Initializing OpenGL", rendering.Init)
	if err != nil {
		return err
	}

	var mesh *rendering.GPUMesh
	err = d.progress.Run(d.variant.uploadMsg, func() error {
		mesh, err = rendering.Upload(d.variant.mesh(), d.variant.call)
		return err
	})
	if err != nil {
		return err
	}

	renderer := rendering.NewRenderer(
		mesh,
		utils.ColourVec(d.cfg.ClearColour),
		utils.ColourVec(d.cfg.Shader.Colour),
		d.variant.call,
	)
	defer renderer.Delete()

	program, err := d.buildProgram()
	if err != nil {
		return err
	}
	err = renderer.SetProgram(program)
	if err != nil {
		return err
	}
	err = renderer.Start()
	if err != nil {
		return err
	}

	fmt.Printf("OpenGL version: %s\n", rendering.Version())

	kbdctl.SetupShortcutKeys(win.Window, d)

	group, gctx := errgroup.WithContext(ctx)
	gctx, cancel := context.WithCancel(gctx)
	d.startBackground(gctx, group)

	err = d.loop(gctx, win, renderer)
	cancel()
	if waitErr := group.Wait(); waitErr != nil && err == nil {
		err = waitErr
	}
	return err
}

func (d *Demo) startBackground(ctx context.Context, group *errgroup.Group) {
	if d.cfg.Api != nil {
		a := api.New(d.cfg, d, d.Stats)
		group.Go(func() error {
			return a.Serve(ctx)
		})
	}
	if d.cfg.Shader.Inotify {
		path := string(d.cfg.Shader.Path)
		group.Go(func() error {
			err := shaders.Watch(ctx, path, d.reload)
			if err != nil {
				d.logger.Warn("not watching shader for changes", "err", err)
			}
			return nil
		})
	}
}

func (d *Demo) loop(ctx context.Context, win *window.Window, renderer *rendering.Renderer) error {
	var deltaTimer utils.DeltaTimer
	for !win.ShouldClose() && !d.ShutdownRequested() && ctx.Err() == nil {
		select {
		case <-d.reload:
			d.rebuild(renderer)
			deltaTimer.Reset()
		default:
		}

		dt := deltaTimer.Next()

		err := renderer.Frame()
		if err != nil {
			return fmt.Errorf("could not draw frame: %w", err)
		}
		win.SwapBuffers()

		// Maintenance
		metrics.FramesRendered.Inc()
		metrics.FrameSeconds.Observe(dt.Seconds())
		d.Stats.Update(dt)
		kbdctl.Poll()
	}
	return nil
}

func (d *Demo) buildProgram() (uint32, error) {
	var program uint32
	err := d.progress.Run("Compiling shaders", func() error {
		src, err := d.LoadShader()
		if err != nil {
			return fmt.Errorf("could not load shader: %w", err)
		}
		program, err = shaders.BuildProgram(src)
		return err
	})
	if err != nil {
		d.reportShaderError(err)
		return 0, err
	}
	return program, nil
}

// rebuild swaps in a freshly built program, keeping the current one when
// the new source does not build
func (d *Demo) rebuild(renderer *rendering.Renderer) {
	program, err := d.buildProgram()
	if err != nil {
		d.logger.Warn("keeping the previous shader program")
		return
	}
	err = renderer.SetProgram(program)
	if err != nil {
		d.logger.Error("could not use rebuilt shader program", "err", err)
		return
	}
	d.Stats.ShaderReloaded()
}

func (d *Demo) reportShaderError(err error) {
	var compileErr *shaders.CompileError
	if errors.As(err, &compileErr) {
		d.logger.Error(fmt.Sprintf("Failed to compile %s shader!", compileErr.Stage))
		for _, line := range strings.Split(compileErr.Log, "\n") {
			d.logger.Error(line)
		}
		return
	}
	d.logger.Error(err.Error())
	for _, detail := range errors.GetAllDetails(err) {
		for _, line := range strings.Split(detail, "\n") {
			d.logger.Error(line)
		}
	}
}

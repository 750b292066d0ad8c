// Package api exposes statistics and a few controls of a running demo
//
//	@title			hellogl
//	@version		1.0
//	@description	Control and statistics for the hello triangle / hello quad demos
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/opengl-setup-test/hellogl/docs"
	"github.com/opengl-setup-test/hellogl/lib/config"
	"github.com/opengl-setup-test/hellogl/lib/metrics"
	"github.com/opengl-setup-test/hellogl/lib/stats"
)

// Controller is the part of the running demo the API can steer
type Controller interface {
	RequestShutdown()
	RequestReload()
}

type Api struct {
	srv    http.Server
	mux    *http.ServeMux
	cfg    *config.Config
	ctl    Controller
	logger *slog.Logger

	Stats *stats.Collector

	wsMutex   sync.Mutex
	wsClients map[*websocket.Conn]bool
	// StatsInterval is how often stats are pushed to websocket clients
	StatsInterval time.Duration
}

func New(cfg *config.Config, ctl Controller, s *stats.Collector) *Api {
	a := &Api{}
	a.cfg = cfg
	a.ctl = ctl
	a.mux = http.NewServeMux()
	a.srv.Addr = cfg.Api.Bind
	a.srv.Handler = a.mux
	a.logger = slog.Default().With("module", "api")
	a.wsClients = make(map[*websocket.Conn]bool)
	a.StatsInterval = 2 * time.Second
	a.Stats = s

	if cfg.Api.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/kill", a.suicide)
	a.mux.HandleFunc("POST /api/reload", a.reload)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/config", a.handleConfig)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.Handle("/api/docs/", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))
	return a
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

// Serve blocks until ctx is cancelled or the server fails
func (a *Api) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		a.closeWebsockets()
		err := a.srv.Shutdown(shutdownCtx)
		if err != nil {
			a.logger.Warn("could not shut down web server", "err", err)
		}
	}()

	a.logger.Info(fmt.Sprintf("starting web server on %s", a.srv.Addr))
	err := a.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("could not start web server: %w", err)
}

// @Summary	Profile the CPU for 10 seconds
// @Router		/prof [get]
// @Tags		debug
// @Produce	octet-stream
// @Success	200
func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Close the window and exit
// @Router		/api/kill [post]
// @Tags		base
// @Success	200	{string}	string	"ok"
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	a.logger.Info("shutting down as per api request")
	a.ctl.RequestShutdown()
	a.ok(w)
}

// @Summary	Recompile the shader program from its source
// @Router		/api/reload [post]
// @Tags		base
// @Success	200	{string}	string	"ok"
func (a *Api) reload(w http.ResponseWriter, _ *http.Request) {
	a.logger.Info("reloading shader as per api request")
	a.ctl.RequestReload()
	a.ok(w)
}

func (a *Api) ok(w http.ResponseWriter) {
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.logger.Warn("could not write response", "err", err)
		return
	}
}

// @Summary	Get render statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Stats
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats.Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

type Config struct {
	Demo        string `json:"demo"`
	Title       string `json:"title"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	GLVersion   string `json:"gl_version"`
	Shader      string `json:"shader"`
	ClearColour string `json:"clear_colour"`
	Colour      string `json:"colour"`
}

// @Summary	Get the running configuration
// @Router		/api/config [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	Config
func (a *Api) handleConfig(w http.ResponseWriter, _ *http.Request) {
	shader := string(a.cfg.Shader.Path)
	if shader == "" {
		shader = "embedded"
	}
	result := &Config{
		Demo:        a.cfg.Demo,
		Title:       a.cfg.Window.Title,
		Width:       a.cfg.Window.Width,
		Height:      a.cfg.Window.Height,
		GLVersion:   fmt.Sprintf("%d.%d", a.cfg.Window.GLMajor, a.cfg.Window.GLMinor),
		Shader:      shader,
		ClearColour: a.cfg.ClearColour,
		Colour:      a.cfg.Shader.Colour,
	}
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(result)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode config: %s", err), http.StatusInternalServerError)
		return
	}
}

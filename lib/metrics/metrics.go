package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellogl_frames_rendered_total",
		Help: "Total number of frames drawn and swapped",
	})
	GLErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellogl_gl_errors_total",
		Help: "Total number of OpenGL error codes reported, by operation",
	}, []string{"op"})
	ShaderBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellogl_shader_builds_total",
		Help: "Total number of shader program builds, by result",
	}, []string{"result"})
	FrameSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hellogl_frame_seconds",
		Help:    "Time between consecutive frames",
		Buckets: []float64{1.0 / 240, 1.0 / 144, 1.0 / 120, 1.0 / 60, 1.0 / 30, 1.0 / 15, 0.25, 1},
	})
)

func init() {
	ShaderBuilds.WithLabelValues("ok").Add(0)
	ShaderBuilds.WithLabelValues("failed").Add(0)
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

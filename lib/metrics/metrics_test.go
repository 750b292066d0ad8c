package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesCounters(t *testing.T) {
	FramesRendered.Inc()
	GLErrors.WithLabelValues("glDrawElements").Inc()
	FrameSeconds.Observe(1.0 / 60)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"hellogl_frames_rendered_total",
		`hellogl_gl_errors_total{op="glDrawElements"}`,
		`hellogl_shader_builds_total{result="failed"} 0`,
		"hellogl_frame_seconds_bucket",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output is missing %q", want)
		}
	}
}

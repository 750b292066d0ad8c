package stats

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/loov/hrtime"
)

type Stats struct {
	Session       string  `json:"session"`
	Demo          string  `json:"demo"`
	Uptime        float64 `json:"uptime"`
	FPS           uint64  `json:"fps"`
	Frames        uint64  `json:"frames"`
	LastFrameMs   float64 `json:"last_frame_ms"`
	ShaderReloads uint64  `json:"shader_reloads"`
	WsClients     int     `json:"ws_clients"`
}

// Collector accumulates Stats from the render loop; Snapshot may be called
// from any goroutine
type Collector struct {
	mu sync.Mutex
	s  Stats

	frameCounter uint64
	frameTimer   time.Duration
	start        time.Duration
}

func New(demo string) *Collector {
	c := &Collector{}
	c.s.Session = uuid.NewString()
	c.s.Demo = demo
	c.start = hrtime.Now()
	c.frameTimer = c.start
	return c
}

// Update is called once per rendered frame with the time since the
// previous one
func (c *Collector) Update(dt time.Duration) {
	now := hrtime.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.frameCounter++
	c.s.Frames++
	if now-c.frameTimer > 1*time.Second {
		c.s.FPS = c.frameCounter
		c.frameCounter = 0
		c.frameTimer = now
	}

	c.s.LastFrameMs = float64(dt.Nanoseconds()) / 1e6
	c.s.Uptime = (now - c.start).Seconds()
}

func (c *Collector) ShaderReloaded() {
	c.mu.Lock()
	c.s.ShaderReloads++
	c.mu.Unlock()
}

func (c *Collector) SetWsClients(n int) {
	c.mu.Lock()
	c.s.WsClients = n
	c.mu.Unlock()
}

func (c *Collector) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

// Command inkserver ingests raw pointer events from a browser canvas over
// a websocket, runs them through the ink pipeline, and streams the
// corrected events back. Open the served page and draw.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/gogpu/ink"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Demo server; the page is served from this same process.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	var (
		addr       = flag.String("addr", ":8089", "listen address")
		configPath = flag.String("config", "", "optional TOML config file, hot-reloaded on change")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ink.SetLogger(logger)

	srv := &server{logger: logger, config: ink.DefaultConfig()}

	if *configPath != "" {
		cfg, err := ink.LoadConfig(*configPath)
		if err != nil {
			logger.Error("load config", "error", err)
			os.Exit(1)
		}
		srv.config = cfg
		stop, err := ink.WatchConfig(*configPath, srv.updateConfig)
		if err != nil {
			logger.Error("watch config", "error", err)
			os.Exit(1)
		}
		defer stop()
	}

	http.HandleFunc("/", srv.handleIndex)
	http.HandleFunc("/ws", srv.handleWS)

	logger.Info("inkserver listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type server struct {
	logger *slog.Logger

	mu     sync.RWMutex
	config ink.Config
}

// updateConfig is called from the config watcher goroutine; connections
// pick up the new configuration when they start.
func (s *server) updateConfig(cfg ink.Config) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	s.logger.Info("config reloaded")
}

func (s *server) currentConfig() ink.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

// handleWS runs one pipeline per connection. The browser reports its
// canvas size in the first message; every later message is a raw pointer
// event. Corrected events flow back through a single writer goroutine,
// since gorilla connections allow only one concurrent writer.
func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var hello struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := conn.ReadJSON(&hello); err != nil {
		s.logger.Warn("bad hello message", "error", err)
		return
	}

	// The forced-flush timer can still deliver an in-flight event for a
	// short window after this handler returns, so out is never closed;
	// the writer is shut down through done instead and the channel is
	// garbage-collected once the last sender lets go.
	out := make(chan ink.Event, 256)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case ev := <-out:
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			}
		}
	}()

	pipeline, err := ink.NewPipeline(
		ink.DisplayMetrics{Width: hello.Width, Height: hello.Height},
		ink.WithConfig(s.currentConfig()),
		ink.WithMonitor(ink.NewPerformanceMonitor()),
		ink.WithEmit(func(ev ink.Event) {
			select {
			case out <- ev:
			default:
				// Slow consumer; dropping here beats blocking the
				// input path.
			}
		}),
	)
	if err != nil {
		s.logger.Warn("pipeline construction failed", "error", err)
		return
	}
	defer pipeline.Destroy()

	for {
		var raw ink.RawPointerEvent
		if err := conn.ReadJSON(&raw); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("read failed", "error", err)
			}
			return
		}
		raw.ResolveKind()
		pipeline.HandleRaw(raw)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>ink</title><style>
body { margin: 0; font-family: sans-serif; }
canvas { display: block; touch-action: none; }
</style></head>
<body>
<canvas id="c"></canvas>
<script>
const c = document.getElementById("c");
c.width = window.innerWidth; c.height = window.innerHeight;
const g = c.getContext("2d");
g.lineCap = "round"; g.strokeStyle = "#28509c";
const ws = new WebSocket("ws://" + location.host + "/ws");
let prev = null;
ws.onopen = () => ws.send(JSON.stringify({width: c.width, height: c.height}));
ws.onmessage = (m) => {
  const ev = JSON.parse(m.data);
  const s = ev.sample, k = c.width / 1024;
  if (ev.kind === 0) { prev = s; return; }
  if (prev) {
    g.lineWidth = 1 + s.pressure * 6;
    g.beginPath();
    g.moveTo(prev.x * k, prev.y * k);
    g.lineTo(s.x * k, s.y * k);
    g.stroke();
  }
  prev = (ev.kind === 1) ? s : null;
};
const send = (kind, e) => ws.send(JSON.stringify({
  kind, x: e.clientX, y: e.clientY,
  pressure: e.pressure ?? 0, pointerType: e.pointerType || "mouse",
  timeMs: performance.now() + performance.timeOrigin,
}));
let down = false;
c.addEventListener("pointerdown", e => { down = true; send("start", e); });
c.addEventListener("pointermove", e => { if (down) send("move", e); });
c.addEventListener("pointerup", e => { down = false; send("end", e); });
c.addEventListener("pointercancel", e => { down = false; send("cancel", e); });
</script>
</body>
</html>`

package main

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	mandel "github.com/marben/mandelplane"
)

type planeConfig struct {
	width, height int
	opts          []mandel.Option
	region        *mandel.Region
	format        string
}

func (c planeConfig) newPlane() *mandel.Engine {
	e := mandel.NewEngine(c.width, c.height, c.opts...)
	if c.region != nil {
		e.Frame(*c.region)
	}
	return e
}

// newMux serves the websocket endpoint at /ws, a health check
// and, if static is set, files from that directory at /.
func newMux(cfg planeConfig, static string, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(cfg, logger))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if static != "" {
		mux.Handle("/", http.FileServer(http.Dir(static)))
	}
	return mux
}

// websocketHandler upgrades the request and runs a session on its own plane
// until the client goes away.
func websocketHandler(cfg planeConfig, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: restrict once the viewer page is served from a fixed origin
		})
		if err != nil {
			logger.Error("websocket accept failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer c.CloseNow()

		log := logger.With("remote", r.RemoteAddr)
		log.Info("session started")

		s := newSession(c, cfg.newPlane(), cfg.format, log)
		err = s.run(r.Context())

		switch status := websocket.CloseStatus(err); {
		case status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway:
			log.Info("session closed")
		case r.Context().Err() != nil:
			log.Info("session cancelled")
		default:
			log.Error("session failed", "error", err)
			c.Close(websocket.StatusInternalError, "session failed")
		}
	}
}

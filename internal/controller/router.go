package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

func (c controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(c.requestIdMw)
	r.Use(c.requestLoggingMw)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.AllowAll().Handler)

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		r.Get("/ws", c.serveWS)
		r.Get("/rooms/{room-id}", c.getRoomStatus)
	})
	r.Handle("/metrics", c.metrics.Handler())
	r.Get("/*", c.serveRoot)

	return r
}

// serveRoot upgrades websocket handshakes and serves static assets otherwise.
func (c controller) serveRoot(w http.ResponseWriter, r *http.Request) {
	if websocket.IsWebSocketUpgrade(r) {
		c.serveWS(w, r)
		return
	}

	c.static.ServeHTTP(w, r)
}

package controller

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sharetube/relay/pkg/ctxlogger"
)

const requestIdHeader = "X-Request-Id"

// requestIdMw tags the request log context and echoes the id to the client so
// a websocket session can be matched with its handshake.
func (c controller) requestIdMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := c.generateTimeBasedId()
		w.Header().Set(requestIdHeader, requestId)

		ctx := ctxlogger.AppendCtx(r.Context(), slog.String("request_id", requestId))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLoggingMw logs websocket handshakes at info and everything else, which
// is mostly static assets and scrapes, at debug.
func (c controller) requestLoggingMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			c.logger.InfoContext(r.Context(), "websocket handshake",
				"path", r.URL.Path,
				"origin", r.Header.Get("Origin"),
				"remote_addr", r.RemoteAddr,
			)
		} else {
			c.logger.DebugContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
		}

		next.ServeHTTP(w, r)
	})
}

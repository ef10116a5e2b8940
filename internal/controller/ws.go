package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sharetube/relay/internal/repository/connection"
	"github.com/sharetube/relay/internal/service/room"
	"github.com/sharetube/relay/pkg/ctxlogger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

func (c controller) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	client := c.roomService.Connect(r.Context())

	ctx := context.WithValue(r.Context(), connIdCtxKey, client.Id)
	ctx = context.WithValue(ctx, limiterCtxKey, c.newLimiter())
	ctx = ctxlogger.AppendCtx(ctx, slog.String("conn_id", client.Id))
	defer c.disconnect(ctx, client.Id)

	go c.writePump(ctx, conn, client.Outbound())

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if err := c.wsRouter.ServeConn(ctx, conn); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
			c.logger.InfoContext(ctx, "connection closed", "error", err)
			return
		}
		c.logger.DebugContext(ctx, "connection closed", "error", err)
	}
}

// writePump is the only writer of conn. It returns once outbound is closed or
// a write fails.
func (c controller) writePump(ctx context.Context, conn *websocket.Conn, outbound <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-outbound:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.DebugContext(ctx, "failed to write message", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c controller) disconnect(ctx context.Context, connId string) {
	resp, err := c.roomService.Disconnect(ctx, &room.DisconnectParams{
		ConnId: connId,
	})
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return
		}
		c.logger.WarnContext(ctx, "failed to disconnect", "error", err)
		return
	}

	c.logger.InfoContext(ctx, "disconnected", "room_id", resp.RoomId, "is_room_deleted", resp.IsRoomDeleted)
}

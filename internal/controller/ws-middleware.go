package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sharetube/relay/internal/metrics"
	"github.com/sharetube/relay/internal/service/room"
	"github.com/sharetube/relay/pkg/ctxlogger"
	"github.com/sharetube/relay/pkg/wsrouter"
)

var ErrRateLimited = errors.New("rate limit exceeded")

func (c controller) wsRequestIdWSMw() wsrouter.Middleware {
	return func(next wsrouter.HandlerFunc[json.RawMessage]) wsrouter.HandlerFunc[json.RawMessage] {
		return func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
			ctx = ctxlogger.AppendCtx(ctx, slog.String("ws_request_id", c.generateTimeBasedId()))
			return next(ctx, conn, payload)
		}
	}
}

func (c controller) loggerWSMw() wsrouter.Middleware {
	return func(next wsrouter.HandlerFunc[json.RawMessage]) wsrouter.HandlerFunc[json.RawMessage] {
		return func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
			messageType := wsrouter.GetMessageTypeFromCtx(ctx)
			ctx = ctxlogger.AppendCtx(ctx, slog.String("message_type", messageType))
			c.metrics.MessageReceived(messageType)
			c.logger.DebugContext(ctx, "websocket message received", "size", len(payload))

			start := time.Now()

			err := next(ctx, conn, payload)

			c.logger.DebugContext(ctx, "websocket message handled",
				"processing_time_us", time.Since(start).Microseconds(),
			)

			return err
		}
	}
}

func (c controller) rateLimitWSMw() wsrouter.Middleware {
	return func(next wsrouter.HandlerFunc[json.RawMessage]) wsrouter.HandlerFunc[json.RawMessage] {
		return func(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) error {
			if limiter := c.getLimiterFromCtx(ctx); limiter != nil && !limiter.limiter.Allow() {
				if limiter.dropped == 0 {
					c.logger.InfoContext(ctx, "connection is rate limited, dropping messages",
						"messages_per_second", c.messagesPerSecond,
					)
				}
				limiter.dropped++

				return ErrRateLimited
			}

			return next(ctx, conn, payload)
		}
	}
}

// handleWSError drops the failed message. The connection stays open.
func (c controller) handleWSError(ctx context.Context, conn *websocket.Conn, err error) {
	ctx = ctxlogger.AppendCtx(ctx, slog.String("message_type", wsrouter.GetMessageTypeFromCtx(ctx)))

	switch {
	case errors.Is(err, ErrRateLimited):
		c.metrics.MessageDropped(metrics.DropReasonRateLimited)
	case errors.Is(err, wsrouter.ErrMalformedMessage),
		errors.Is(err, wsrouter.ErrUnknownMessageType),
		errors.Is(err, wsrouter.ErrInvalidPayload),
		errors.Is(err, room.ErrInvalidRoomId):
		c.metrics.MessageDropped(metrics.DropReasonInvalid)
	case errors.Is(err, room.ErrNotJoined),
		errors.Is(err, room.ErrAlreadyJoined),
		errors.Is(err, room.ErrReadinessDisabled),
		errors.Is(err, room.ErrRoomNotFound):
		c.metrics.MessageDropped(metrics.DropReasonIgnored)
	default:
		c.logger.WarnContext(ctx, "failed to handle websocket message", "error", err)
		return
	}

	c.logger.DebugContext(ctx, "websocket message dropped", "error", err)
}

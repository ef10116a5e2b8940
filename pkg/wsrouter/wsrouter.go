// Package wsrouter dispatches JSON websocket messages to typed handlers by
// their "type" field.
package wsrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
)

var (
	ErrMalformedMessage   = errors.New("malformed message")
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrInvalidPayload     = errors.New("invalid payload")
)

type message struct {
	Type string `json:"type"`
}

// HandlerFunc receives the whole decoded message, discriminator included.
type HandlerFunc[T any] func(ctx context.Context, conn *websocket.Conn, input T) error

type Middleware func(next HandlerFunc[json.RawMessage]) HandlerFunc[json.RawMessage]

// ErrorHandlerFunc is called for every message that could not be handled.
// The connection keeps being served afterwards.
type ErrorHandlerFunc func(ctx context.Context, conn *websocket.Conn, err error)

type Validator interface {
	Struct(any) error
}

type Option func(*WSRouter)

func WithValidator(v Validator) Option {
	return func(r *WSRouter) {
		r.validator = v
	}
}

func WithErrorHandler(h ErrorHandlerFunc) Option {
	return func(r *WSRouter) {
		r.onError = h
	}
}

type WSRouter struct {
	routes      map[string]HandlerFunc[json.RawMessage]
	middlewares []Middleware
	validator   Validator
	onError     ErrorHandlerFunc
}

func New(opts ...Option) *WSRouter {
	r := &WSRouter{
		routes:  make(map[string]HandlerFunc[json.RawMessage]),
		onError: func(context.Context, *websocket.Conn, error) {},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *WSRouter) Use(mws ...Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

// Handle registers handler for messageType. The raw message is decoded into T
// and, if the router has a validator, validated before handler runs.
func Handle[T any](r *WSRouter, messageType string, handler HandlerFunc[T]) {
	r.routes[messageType] = func(ctx context.Context, conn *websocket.Conn, raw json.RawMessage) error {
		var input T
		if err := json.Unmarshal(raw, &input); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}

		if r.validator != nil {
			if err := r.validator.Struct(input); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
			}
		}

		return handler(ctx, conn, input)
	}
}

// Dispatch routes a single raw message.
func (r *WSRouter) Dispatch(ctx context.Context, conn *websocket.Conn, data []byte) error {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	handler, exists := r.routes[msg.Type]
	if !exists {
		return fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	ctx = context.WithValue(ctx, messageTypeKey, msg.Type)

	return handler(ctx, conn, data)
}

// ServeConn reads messages until the connection fails and returns the read error.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		if err := r.Dispatch(ctx, conn, data); err != nil {
			r.onError(context.WithValue(ctx, messageTypeKey, peekType(data)), conn, err)
		}
	}
}

func peekType(data []byte) string {
	var msg message
	_ = json.Unmarshal(data, &msg)
	return msg.Type
}

package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sharetube/relay/internal/repository/connection"
	"github.com/sharetube/relay/internal/service/room"
	"github.com/sharetube/relay/pkg/validator"
	"github.com/sharetube/relay/pkg/wsrouter"
)

type iRoomService interface {
	Connect(context.Context) *connection.Connection
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	SetReady(context.Context, *room.SetReadyParams) error
	UpdatePlayerState(context.Context, *room.UpdatePlayerStateParams) (room.Player, error)
	GetRoomState(context.Context, *room.GetRoomStateParams) error
	SendChat(context.Context, *room.SendChatParams) error
	SendEmoji(context.Context, *room.SendEmojiParams) error
	SendImage(context.Context, *room.SendImageParams) error
	SendTyping(context.Context, string) error
	SendHeart(context.Context, string) error
	Disconnect(context.Context, *room.DisconnectParams) (room.DisconnectResponse, error)
	GetRoomStatus(context.Context, string) (room.RoomStatus, error)
}

type iMetrics interface {
	MessageReceived(msgType string)
	MessageDropped(reason string)
	Handler() http.Handler
}

type Config struct {
	WebRoot string
	// MessagesPerSecond limits inbound messages per connection. Zero disables
	// the limit.
	MessagesPerSecond int
}

type controller struct {
	roomService       iRoomService
	metrics           iMetrics
	upgrader          websocket.Upgrader
	wsRouter          *wsrouter.WSRouter
	validate          *validator.Validator
	static            http.Handler
	messagesPerSecond int
	logger            *slog.Logger
}

func NewController(roomService iRoomService, metrics iMetrics, logger *slog.Logger, cfg *Config) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		roomService:       roomService,
		metrics:           metrics,
		validate:          validator.NewValidator(),
		static:            http.FileServer(http.Dir(cfg.WebRoot)),
		messagesPerSecond: cfg.MessagesPerSecond,
		logger:            logger,
	}
	c.wsRouter = c.getWSRouter()

	return c
}

package room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sharetube/relay/internal/repository/connection"
	"github.com/sharetube/relay/internal/repository/room"
)

var (
	ErrInvalidRoomId     = errors.New("invalid room id")
	ErrAlreadyJoined     = errors.New("connection already joined a room")
	ErrNotJoined         = errors.New("connection has not joined a room")
	ErrReadinessDisabled = errors.New("readiness gating is disabled")
	ErrRoomNotFound      = room.ErrRoomNotFound
)

type iConnRepo interface {
	Register() *connection.Connection
	Unregister(string) error
	Get(string) (*connection.Connection, error)
	Count() int
}

type iRoomRepo interface {
	GetOrCreate(string) (*room.Room, bool)
	Get(string) (*room.Room, error)
	Remove(*room.Room) error
	Count() int
}

// PlayerRepo keeps the last accepted playback state of each room.
type PlayerRepo interface {
	SetPlayer(context.Context, *room.SetPlayerParams) error
	GetPlayer(context.Context, string) (room.Player, error)
	UpdatePlayerState(context.Context, *room.UpdatePlayerStateParams) (room.Player, error)
	RemovePlayer(context.Context, string) error
}

type iMetrics interface {
	RoomOpened()
	RoomClosed()
	Connected()
	Disconnected()
	MessageDropped(reason string)
}

type Config struct {
	// ReadinessGating switches presence updates to READY_UPDATE and enables READY.
	ReadinessGating bool
}

type service struct {
	connRepo        iConnRepo
	roomRepo        iRoomRepo
	playerRepo      PlayerRepo
	metrics         iMetrics
	logger          *slog.Logger
	readinessGating bool
	now             func() time.Time
}

func NewService(connRepo iConnRepo, roomRepo iRoomRepo, playerRepo PlayerRepo, metrics iMetrics, logger *slog.Logger, cfg *Config) *service {
	return &service{
		connRepo:        connRepo,
		roomRepo:        roomRepo,
		playerRepo:      playerRepo,
		metrics:         metrics,
		logger:          logger,
		readinessGating: cfg.ReadinessGating,
		now:             time.Now,
	}
}

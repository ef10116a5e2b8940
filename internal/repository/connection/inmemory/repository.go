package inmemory

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/sharetube/relay/internal/repository/connection"
)

type repo struct {
	conns      map[string]*connection.Connection
	sendBuffer int
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewRepo(sendBuffer int, logger *slog.Logger) *repo {
	return &repo{
		conns:      make(map[string]*connection.Connection),
		sendBuffer: sendBuffer,
		logger:     logger,
	}
}

// Register creates a connection with a fresh random id and no room.
func (r *repo) Register() *connection.Connection {
	funcName := "connection.inmemory.Register"
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	for r.conns[id] != nil {
		id = uuid.NewString()
	}

	conn := connection.New(id, r.sendBuffer)
	r.conns[id] = conn

	r.logger.Debug(funcName, "result", id)
	return conn
}

func (r *repo) Unregister(id string) error {
	funcName := "connection.inmemory.Unregister"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "conn_id", id)
	if _, ok := r.conns[id]; !ok {
		r.logger.Debug(funcName, "error", connection.ErrNotFound)
		return connection.ErrNotFound
	}
	delete(r.conns, id)

	r.logger.Debug(funcName, "result", "OK")
	return nil
}

func (r *repo) Get(id string) (*connection.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.conns[id]
	if !ok {
		return nil, connection.ErrNotFound
	}

	return conn, nil
}

func (r *repo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

package inmemory

import (
	"log/slog"
	"sync"

	"github.com/sharetube/relay/internal/repository/room"
)

// repo is the room directory. It also keeps player state when no external
// player store is configured.
type repo struct {
	rooms   map[string]*room.Room
	players map[string]room.Player
	mu      sync.RWMutex
	// strict makes removing a non-empty room panic instead of being ignored.
	strict bool
	logger *slog.Logger
}

func NewRepo(strict bool, logger *slog.Logger) *repo {
	return &repo{
		rooms:   make(map[string]*room.Room),
		players: make(map[string]room.Player),
		strict:  strict,
		logger:  logger,
	}
}

// GetOrCreate returns the room for roomId, creating an empty one if absent.
func (r *repo) GetOrCreate(roomId string) (*room.Room, bool) {
	funcName := "room.inmemory.GetOrCreate"
	r.mu.Lock()
	defer r.mu.Unlock()

	if rm, ok := r.rooms[roomId]; ok {
		return rm, false
	}

	rm := room.New(roomId)
	r.rooms[roomId] = rm

	r.logger.Debug(funcName, "room_id", roomId, "result", "created")
	return rm, true
}

func (r *repo) Get(roomId string) (*room.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.rooms[roomId]
	if !ok {
		return nil, room.ErrRoomNotFound
	}

	return rm, nil
}

// Remove drops rm from the directory. The caller must hold the room lock and
// the room must be empty.
func (r *repo) Remove(rm *room.Room) error {
	funcName := "room.inmemory.Remove"

	if rm.MemberCount() > 0 {
		if r.strict {
			panic("room.inmemory.Remove: room " + rm.Id + " is not empty")
		}
		r.logger.Warn(funcName, "room_id", rm.Id, "error", room.ErrRoomNotEmpty)
		return room.ErrRoomNotEmpty
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.rooms[rm.Id]; ok && current == rm {
		delete(r.rooms, rm.Id)
	}
	rm.MarkRemoved()

	r.logger.Debug(funcName, "room_id", rm.Id, "result", "OK")
	return nil
}

func (r *repo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}

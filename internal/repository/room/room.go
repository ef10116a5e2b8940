package room

import (
	"slices"
	"sync"

	"github.com/sharetube/relay/internal/repository/connection"
	"golang.org/x/exp/maps"
)

// Room is the member set of one watch session. All methods except Lock and
// Unlock must be called with the room locked.
type Room struct {
	Id string

	mu      sync.Mutex
	members map[string]*connection.Connection
	removed bool
}

func New(id string) *Room {
	return &Room{
		Id:      id,
		members: make(map[string]*connection.Connection),
	}
}

func (r *Room) Lock() {
	r.mu.Lock()
}

func (r *Room) Unlock() {
	r.mu.Unlock()
}

func (r *Room) AddMember(conn *connection.Connection) {
	r.members[conn.Id] = conn
}

func (r *Room) RemoveMember(connId string) bool {
	if _, ok := r.members[connId]; !ok {
		return false
	}
	delete(r.members, connId)

	return true
}

func (r *Room) HasMember(connId string) bool {
	_, ok := r.members[connId]
	return ok
}

// Members are ordered by id.
func (r *Room) Members() []*connection.Connection {
	ids := maps.Keys(r.members)
	slices.Sort(ids)

	members := make([]*connection.Connection, 0, len(ids))
	for _, id := range ids {
		members = append(members, r.members[id])
	}

	return members
}

func (r *Room) MemberCount() int {
	return len(r.members)
}

// AllReady is false for an empty room.
func (r *Room) AllReady() bool {
	if len(r.members) == 0 {
		return false
	}

	for _, member := range r.members {
		if !member.IsReady() {
			return false
		}
	}

	return true
}

// IsRemoved reports whether the room was dropped from its directory. A
// removed room must not gain members.
func (r *Room) IsRemoved() bool {
	return r.removed
}

func (r *Room) MarkRemoved() {
	r.removed = true
}

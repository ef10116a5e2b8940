package inmemory

import (
	"context"

	"github.com/sharetube/relay/internal/repository/room"
)

func (r *repo) SetPlayer(_ context.Context, params *room.SetPlayerParams) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[params.RoomId] = room.Player{
		IsPlaying:   params.IsPlaying,
		CurrentTime: params.CurrentTime,
		UpdatedAt:   params.UpdatedAt,
	}

	return nil
}

func (r *repo) GetPlayer(_ context.Context, roomId string) (room.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.players[roomId]
	if !ok {
		return room.Player{}, room.ErrPlayerNotFound
	}

	return player, nil
}

func (r *repo) UpdatePlayerState(_ context.Context, params *room.UpdatePlayerStateParams) (room.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[params.RoomId]
	if !ok {
		return room.Player{}, room.ErrPlayerNotFound
	}

	if params.IsPlaying != nil {
		player.IsPlaying = *params.IsPlaying
	}
	player.CurrentTime = params.CurrentTime
	player.UpdatedAt = params.UpdatedAt
	r.players[params.RoomId] = player

	return player, nil
}

func (r *repo) RemovePlayer(_ context.Context, roomId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[roomId]; !ok {
		return room.ErrPlayerNotFound
	}
	delete(r.players, roomId)

	return nil
}

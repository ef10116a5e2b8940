package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/sharetube/relay/internal/repository/room"
)

type UpdatePlayerStateParams struct {
	// IsPlaying is nil for a seek, which keeps the current play state.
	IsPlaying   *bool
	CurrentTime float64
	SenderId    string
}

func (s service) UpdatePlayerState(ctx context.Context, params *UpdatePlayerStateParams) (Player, error) {
	_, rm, err := s.lockMemberRoom(params.SenderId)
	if err != nil {
		return Player{}, err
	}
	defer rm.Unlock()

	updatedAt := s.now().UnixMilli()
	player, err := s.playerRepo.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		IsPlaying:   params.IsPlaying,
		CurrentTime: params.CurrentTime,
		UpdatedAt:   updatedAt,
		RoomId:      rm.Id,
	})
	if errors.Is(err, room.ErrPlayerNotFound) {
		player = room.Player{
			IsPlaying:   params.IsPlaying != nil && *params.IsPlaying,
			CurrentTime: params.CurrentTime,
			UpdatedAt:   updatedAt,
		}
		err = s.playerRepo.SetPlayer(ctx, &room.SetPlayerParams{
			IsPlaying:   player.IsPlaying,
			CurrentTime: player.CurrentTime,
			UpdatedAt:   player.UpdatedAt,
			RoomId:      rm.Id,
		})
	}
	if err != nil {
		return Player{}, fmt.Errorf("failed to update player state: %w", err)
	}

	if err := s.broadcast(ctx, rm, SyncMessage{
		Type:        MessageTypeSync,
		IsPlaying:   player.IsPlaying,
		CurrentTime: player.CurrentTime,
		Timestamp:   player.UpdatedAt,
	}, params.SenderId); err != nil {
		return Player{}, err
	}

	return Player{
		IsPlaying:   player.IsPlaying,
		CurrentTime: player.CurrentTime,
		UpdatedAt:   player.UpdatedAt,
	}, nil
}

type GetRoomStateParams struct {
	ConnId string
}

// GetRoomState sends the room's last accepted playback state to the asking
// connection only.
func (s service) GetRoomState(ctx context.Context, params *GetRoomStateParams) error {
	conn, rm, err := s.lockMemberRoom(params.ConnId)
	if err != nil {
		return err
	}
	defer rm.Unlock()

	player, err := s.getPlayer(ctx, rm.Id)
	if err != nil {
		return err
	}

	return s.unicast(ctx, conn, SyncMessage{
		Type:        MessageTypeSync,
		IsPlaying:   player.IsPlaying,
		CurrentTime: player.CurrentTime,
		Timestamp:   player.UpdatedAt,
	})
}

package room

import (
	"context"
	"fmt"

	"github.com/sharetube/relay/internal/repository/room"
)

func (s service) GetRoomStatus(ctx context.Context, roomId string) (RoomStatus, error) {
	roomId = normalizeRoomId(roomId)
	if roomId == "" {
		return RoomStatus{}, ErrInvalidRoomId
	}

	rm, err := s.roomRepo.Get(roomId)
	if err != nil {
		return RoomStatus{}, fmt.Errorf("failed to get room: %w", err)
	}

	rm.Lock()
	defer rm.Unlock()

	if rm.IsRemoved() {
		return RoomStatus{}, fmt.Errorf("failed to get room: %w", room.ErrRoomNotFound)
	}

	player, err := s.getPlayer(ctx, roomId)
	if err != nil {
		return RoomStatus{}, err
	}

	return RoomStatus{
		RoomId:      roomId,
		ClientCount: rm.MemberCount(),
		AllReady:    rm.AllReady(),
		Player:      player,
	}, nil
}

func (s service) RoomCount() int {
	return s.roomRepo.Count()
}

func (s service) ConnectionCount() int {
	return s.connRepo.Count()
}

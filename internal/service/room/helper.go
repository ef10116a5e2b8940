package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sharetube/relay/internal/metrics"
	"github.com/sharetube/relay/internal/repository/connection"
	"github.com/sharetube/relay/internal/repository/room"
)

func normalizeRoomId(roomId string) string {
	return strings.ToUpper(strings.TrimSpace(roomId))
}

// broadcast marshals msg once and queues it for every member except
// excludeId. The caller must hold the room lock.
func (s service) broadcast(ctx context.Context, rm *room.Room, msg any, excludeId string) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	for _, member := range rm.Members() {
		if member.Id == excludeId {
			continue
		}

		s.enqueue(ctx, member, data)
	}

	return nil
}

func (s service) unicast(ctx context.Context, conn *connection.Connection, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	s.enqueue(ctx, conn, data)
	return nil
}

func (s service) enqueue(ctx context.Context, conn *connection.Connection, data []byte) {
	if conn.Enqueue(data) {
		return
	}

	reason := metrics.DropReasonQueueFull
	if conn.IsClosed() {
		reason = metrics.DropReasonClosed
	}
	s.metrics.MessageDropped(reason)
	s.logger.DebugContext(ctx, "message dropped", "recipient_id", conn.Id, "reason", reason)
}

// presenceMessage must be called with the room lock held.
func (s service) presenceMessage(rm *room.Room) any {
	if s.readinessGating {
		return ReadyUpdateMessage{
			Type:        MessageTypeReadyUpdate,
			ClientCount: rm.MemberCount(),
			AllReady:    rm.AllReady(),
		}
	}

	return PartnerUpdateMessage{
		Type:  MessageTypePartnerUpdate,
		Count: rm.MemberCount(),
	}
}

// lockMemberRoom returns the connection and its room locked. The caller must
// unlock the room.
func (s service) lockMemberRoom(connId string) (*connection.Connection, *room.Room, error) {
	conn, err := s.connRepo.Get(connId)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get connection: %w", err)
	}

	roomId := conn.RoomId()
	if roomId == "" {
		return nil, nil, ErrNotJoined
	}

	rm, err := s.roomRepo.Get(roomId)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get room: %w", err)
	}

	rm.Lock()
	if rm.IsRemoved() || !rm.HasMember(connId) {
		rm.Unlock()
		return nil, nil, ErrNotJoined
	}

	return conn, rm, nil
}

func (s service) getPlayer(ctx context.Context, roomId string) (Player, error) {
	player, err := s.playerRepo.GetPlayer(ctx, roomId)
	if err != nil {
		if errors.Is(err, room.ErrPlayerNotFound) {
			return Player{}, nil
		}

		return Player{}, fmt.Errorf("failed to get player: %w", err)
	}

	return Player{
		IsPlaying:   player.IsPlaying,
		CurrentTime: player.CurrentTime,
		UpdatedAt:   player.UpdatedAt,
	}, nil
}

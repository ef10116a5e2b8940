package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/sharetube/relay/internal/repository/connection"
	"github.com/sharetube/relay/internal/repository/room"
)

// Connect registers a new unjoined connection.
func (s service) Connect(ctx context.Context) *connection.Connection {
	conn := s.connRepo.Register()
	s.metrics.Connected()

	s.logger.DebugContext(ctx, "connection registered", "conn_id", conn.Id)
	return conn
}

type JoinRoomParams struct {
	ConnId string
	RoomId string
}

type JoinRoomResponse struct {
	RoomId      string
	ClientCount int
	Created     bool
}

func (s service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	roomId := normalizeRoomId(params.RoomId)
	if roomId == "" {
		return JoinRoomResponse{}, ErrInvalidRoomId
	}

	conn, err := s.connRepo.Get(params.ConnId)
	if err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to get connection: %w", err)
	}

	if conn.RoomId() != "" {
		return JoinRoomResponse{}, ErrAlreadyJoined
	}

	// A room found in the directory may be removed by its last leaver before
	// the lock is taken. Such a room is stale; look it up again.
	var rm *room.Room
	for {
		rm, _ = s.roomRepo.GetOrCreate(roomId)
		rm.Lock()
		if !rm.IsRemoved() {
			break
		}
		rm.Unlock()
	}
	defer rm.Unlock()

	created := rm.MemberCount() == 0
	if !conn.BindRoom(roomId) {
		if created {
			if err := s.roomRepo.Remove(rm); err != nil {
				s.logger.WarnContext(ctx, "failed to remove room", "error", err)
			}
		}

		return JoinRoomResponse{}, ErrAlreadyJoined
	}

	if created {
		if err := s.playerRepo.SetPlayer(ctx, &room.SetPlayerParams{
			UpdatedAt: s.now().UnixMilli(),
			RoomId:    roomId,
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to reset player", "error", err)
		}
		s.metrics.RoomOpened()
	}

	rm.AddMember(conn)

	if err := s.unicast(ctx, conn, JoinSuccessMessage{
		Type: MessageTypeJoinSuccess,
		MyId: conn.Id,
	}); err != nil {
		return JoinRoomResponse{}, err
	}

	if err := s.broadcast(ctx, rm, s.presenceMessage(rm), ""); err != nil {
		return JoinRoomResponse{}, err
	}

	return JoinRoomResponse{
		RoomId:      roomId,
		ClientCount: rm.MemberCount(),
		Created:     created,
	}, nil
}

type SetReadyParams struct {
	ConnId string
}

func (s service) SetReady(ctx context.Context, params *SetReadyParams) error {
	if !s.readinessGating {
		return ErrReadinessDisabled
	}

	conn, rm, err := s.lockMemberRoom(params.ConnId)
	if err != nil {
		return err
	}
	defer rm.Unlock()

	conn.SetReady()

	return s.broadcast(ctx, rm, s.presenceMessage(rm), "")
}

type DisconnectParams struct {
	ConnId string
}

type DisconnectResponse struct {
	RoomId        string
	IsRoomDeleted bool
}

// Disconnect releases everything held by the connection. Only the first call
// for a connection does any work; later calls return connection.ErrNotFound.
func (s service) Disconnect(ctx context.Context, params *DisconnectParams) (DisconnectResponse, error) {
	conn, err := s.connRepo.Get(params.ConnId)
	if err != nil {
		return DisconnectResponse{}, fmt.Errorf("failed to get connection: %w", err)
	}

	if err := s.connRepo.Unregister(params.ConnId); err != nil {
		return DisconnectResponse{}, fmt.Errorf("failed to unregister connection: %w", err)
	}
	conn.Close()
	s.metrics.Disconnected()

	roomId := conn.RoomId()
	if roomId == "" {
		return DisconnectResponse{}, nil
	}

	rm, err := s.roomRepo.Get(roomId)
	if err != nil {
		s.logger.WarnContext(ctx, "room of disconnected member not found", "room_id", roomId, "error", err)
		return DisconnectResponse{RoomId: roomId}, nil
	}

	rm.Lock()
	defer rm.Unlock()

	if !rm.RemoveMember(conn.Id) {
		return DisconnectResponse{RoomId: roomId}, nil
	}

	if rm.MemberCount() > 0 {
		if err := s.broadcast(ctx, rm, s.presenceMessage(rm), ""); err != nil {
			return DisconnectResponse{RoomId: roomId}, err
		}

		return DisconnectResponse{RoomId: roomId}, nil
	}

	// The player goes first so a joiner recreating the room cannot have its
	// fresh state deleted.
	if err := s.playerRepo.RemovePlayer(ctx, roomId); err != nil && !errors.Is(err, room.ErrPlayerNotFound) {
		s.logger.WarnContext(ctx, "failed to remove player", "room_id", roomId, "error", err)
	}

	if err := s.roomRepo.Remove(rm); err != nil {
		return DisconnectResponse{RoomId: roomId}, fmt.Errorf("failed to remove room: %w", err)
	}
	s.metrics.RoomClosed()

	return DisconnectResponse{
		RoomId:        roomId,
		IsRoomDeleted: true,
	}, nil
}

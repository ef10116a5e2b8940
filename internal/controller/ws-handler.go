package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sharetube/relay/internal/service/room"
)

type EmptyInput struct{}

func (c controller) handleAlive(ctx context.Context, conn *websocket.Conn, input EmptyInput) error {
	return nil
}

type JoinInput struct {
	RoomId string `json:"roomId" validate:"required,max=64"`
}

func (c controller) handleJoin(ctx context.Context, conn *websocket.Conn, input JoinInput) error {
	joinRoomResp, err := c.roomService.JoinRoom(ctx, &room.JoinRoomParams{
		ConnId: c.getConnIdFromCtx(ctx),
		RoomId: input.RoomId,
	})
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	c.logger.InfoContext(ctx, "joined room",
		"room_id", joinRoomResp.RoomId,
		"client_count", joinRoomResp.ClientCount,
		"created", joinRoomResp.Created,
	)
	return nil
}

func (c controller) handleReady(ctx context.Context, conn *websocket.Conn, input EmptyInput) error {
	if err := c.roomService.SetReady(ctx, &room.SetReadyParams{
		ConnId: c.getConnIdFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to set ready: %w", err)
	}

	return nil
}

type SyncInput struct {
	IsPlaying   *bool   `json:"isPlaying" validate:"required"`
	CurrentTime float64 `json:"currentTime" validate:"gte=0"`
}

func (c controller) handleSync(ctx context.Context, conn *websocket.Conn, input SyncInput) error {
	return c.updatePlayerState(ctx, input.IsPlaying, input.CurrentTime)
}

type PlayerEventInput struct {
	CurrentTime float64 `json:"currentTime" validate:"gte=0"`
}

func (c controller) handlePlay(ctx context.Context, conn *websocket.Conn, input PlayerEventInput) error {
	isPlaying := true
	return c.updatePlayerState(ctx, &isPlaying, input.CurrentTime)
}

func (c controller) handlePause(ctx context.Context, conn *websocket.Conn, input PlayerEventInput) error {
	isPlaying := false
	return c.updatePlayerState(ctx, &isPlaying, input.CurrentTime)
}

func (c controller) handleSeek(ctx context.Context, conn *websocket.Conn, input PlayerEventInput) error {
	return c.updatePlayerState(ctx, nil, input.CurrentTime)
}

func (c controller) updatePlayerState(ctx context.Context, isPlaying *bool, currentTime float64) error {
	if _, err := c.roomService.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		IsPlaying:   isPlaying,
		CurrentTime: currentTime,
		SenderId:    c.getConnIdFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to update player state: %w", err)
	}

	return nil
}

func (c controller) handleGetState(ctx context.Context, conn *websocket.Conn, input EmptyInput) error {
	if err := c.roomService.GetRoomState(ctx, &room.GetRoomStateParams{
		ConnId: c.getConnIdFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to get room state: %w", err)
	}

	return nil
}

type ChatInput struct {
	Text string `json:"text" validate:"required"`
}

func (c controller) handleChat(ctx context.Context, conn *websocket.Conn, input ChatInput) error {
	if err := c.roomService.SendChat(ctx, &room.SendChatParams{
		SenderId: c.getConnIdFromCtx(ctx),
		Text:     input.Text,
	}); err != nil {
		return fmt.Errorf("failed to send chat: %w", err)
	}

	return nil
}

type EmojiInput struct {
	Emoji string `json:"emoji" validate:"required"`
}

func (c controller) handleEmoji(ctx context.Context, conn *websocket.Conn, input EmojiInput) error {
	if err := c.roomService.SendEmoji(ctx, &room.SendEmojiParams{
		SenderId: c.getConnIdFromCtx(ctx),
		Emoji:    input.Emoji,
	}); err != nil {
		return fmt.Errorf("failed to send emoji: %w", err)
	}

	return nil
}

type ImageInput struct {
	Src string `json:"src" validate:"required"`
}

func (c controller) handleImage(ctx context.Context, conn *websocket.Conn, input ImageInput) error {
	if err := c.roomService.SendImage(ctx, &room.SendImageParams{
		SenderId: c.getConnIdFromCtx(ctx),
		Src:      input.Src,
	}); err != nil {
		return fmt.Errorf("failed to send image: %w", err)
	}

	return nil
}

func (c controller) handleTyping(ctx context.Context, conn *websocket.Conn, input EmptyInput) error {
	if err := c.roomService.SendTyping(ctx, c.getConnIdFromCtx(ctx)); err != nil {
		return fmt.Errorf("failed to send typing: %w", err)
	}

	return nil
}

func (c controller) handleHeart(ctx context.Context, conn *websocket.Conn, input EmptyInput) error {
	if err := c.roomService.SendHeart(ctx, c.getConnIdFromCtx(ctx)); err != nil {
		return fmt.Errorf("failed to send heart: %w", err)
	}

	return nil
}

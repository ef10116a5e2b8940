package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sharetube/relay/internal/repository/room"
)

func (r repo) getPlayerKey(roomId string) string {
	return "room:" + roomId + ":player"
}

// SetPlayer overwrites whatever a previous room with the same id left behind.
func (r repo) SetPlayer(ctx context.Context, params *room.SetPlayerParams) error {
	playerKey := r.getPlayerKey(params.RoomId)
	pipe := r.rc.TxPipeline()

	pipe.Del(ctx, playerKey)
	pipe.HSet(ctx, playerKey, room.Player{
		IsPlaying:   params.IsPlaying,
		CurrentTime: params.CurrentTime,
		UpdatedAt:   params.UpdatedAt,
	})
	pipe.Expire(ctx, playerKey, r.expireDuration)

	if err := r.executePipe(ctx, pipe); err != nil {
		return r.wrap(err, "failed to set player")
	}

	return nil
}

func (r repo) GetPlayer(ctx context.Context, roomId string) (room.Player, error) {
	playerKey := r.getPlayerKey(roomId)
	res := r.rc.HGetAll(ctx, playerKey)
	if err := res.Err(); err != nil {
		return room.Player{}, r.wrap(err, "failed to get player")
	}

	if len(res.Val()) == 0 {
		return room.Player{}, room.ErrPlayerNotFound
	}

	var player room.Player
	if err := res.Scan(&player); err != nil {
		return room.Player{}, r.wrap(err, "failed to scan player")
	}

	return player, nil
}

func (r repo) UpdatePlayerState(ctx context.Context, params *room.UpdatePlayerStateParams) (room.Player, error) {
	playerKey := r.getPlayerKey(params.RoomId)
	exists, err := r.rc.Exists(ctx, playerKey).Result()
	if err != nil {
		return room.Player{}, r.wrap(err, "failed to check if player exists")
	}

	if exists == 0 {
		return room.Player{}, room.ErrPlayerNotFound
	}

	fields := []any{
		"current_time", params.CurrentTime,
		"updated_at", params.UpdatedAt,
	}
	if params.IsPlaying != nil {
		fields = append(fields, "is_playing", *params.IsPlaying)
	}

	var getCmd *redis.MapStringStringCmd
	if _, err := r.rc.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, playerKey, fields...)
		pipe.Expire(ctx, playerKey, r.expireDuration)
		getCmd = pipe.HGetAll(ctx, playerKey)
		return nil
	}); err != nil {
		return room.Player{}, r.wrap(err, "failed to update player state")
	}

	var player room.Player
	if err := getCmd.Scan(&player); err != nil {
		return room.Player{}, r.wrap(err, "failed to scan player")
	}

	return player, nil
}

func (r repo) RemovePlayer(ctx context.Context, roomId string) error {
	res, err := r.rc.Del(ctx, r.getPlayerKey(roomId)).Result()
	if err != nil {
		return r.wrap(err, "failed to remove player")
	}

	if res == 0 {
		return room.ErrPlayerNotFound
	}

	return nil
}

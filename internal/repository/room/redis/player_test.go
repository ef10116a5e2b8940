package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sharetube/relay/internal/repository/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*repo, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })

	return NewRepo(rc, time.Hour), s
}

func TestSetGetPlayer(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRepo(t)

	_, err := r.GetPlayer(ctx, "MOVIE")
	assert.ErrorIs(t, err, room.ErrPlayerNotFound)

	require.NoError(t, r.SetPlayer(ctx, &room.SetPlayerParams{
		IsPlaying:   true,
		CurrentTime: 12.5,
		UpdatedAt:   1700000000000,
		RoomId:      "MOVIE",
	}))

	player, err := r.GetPlayer(ctx, "MOVIE")
	require.NoError(t, err)
	assert.Equal(t, room.Player{IsPlaying: true, CurrentTime: 12.5, UpdatedAt: 1700000000000}, player)
	assert.Equal(t, time.Hour, s.TTL("room:MOVIE:player"))
}

func TestSetPlayerResetsStaleState(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRepo(t)
	s.HSet("room:MOVIE:player", "is_playing", "1", "current_time", "99", "stale", "x")

	require.NoError(t, r.SetPlayer(ctx, &room.SetPlayerParams{RoomId: "MOVIE"}))

	player, err := r.GetPlayer(ctx, "MOVIE")
	require.NoError(t, err)
	assert.Equal(t, room.Player{}, player)
	assert.Empty(t, s.HGet("room:MOVIE:player", "stale"))
}

func TestUpdatePlayerState(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRepo(t)

	_, err := r.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{RoomId: "MOVIE"})
	assert.ErrorIs(t, err, room.ErrPlayerNotFound)

	require.NoError(t, r.SetPlayer(ctx, &room.SetPlayerParams{RoomId: "MOVIE"}))

	playing := true
	player, err := r.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		IsPlaying:   &playing,
		CurrentTime: 10,
		UpdatedAt:   5,
		RoomId:      "MOVIE",
	})
	require.NoError(t, err)
	assert.Equal(t, room.Player{IsPlaying: true, CurrentTime: 10, UpdatedAt: 5}, player)

	player, err = r.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		CurrentTime: 42.25,
		UpdatedAt:   6,
		RoomId:      "MOVIE",
	})
	require.NoError(t, err)
	assert.Equal(t, room.Player{IsPlaying: true, CurrentTime: 42.25, UpdatedAt: 6}, player)
}

func TestRemovePlayer(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRepo(t)

	require.NoError(t, r.SetPlayer(ctx, &room.SetPlayerParams{RoomId: "MOVIE"}))
	require.NoError(t, r.RemovePlayer(ctx, "MOVIE"))
	assert.False(t, s.Exists("room:MOVIE:player"))
	assert.ErrorIs(t, r.RemovePlayer(ctx, "MOVIE"), room.ErrPlayerNotFound)
}

func TestRedisFailureIsWrapped(t *testing.T) {
	ctx := context.Background()
	r, s := newTestRepo(t)
	s.SetError("server is down")

	err := r.SetPlayer(ctx, &room.SetPlayerParams{RoomId: "MOVIE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set player")
}

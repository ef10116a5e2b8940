package inmemory

import (
	"context"
	"log/slog"
	"testing"

	"github.com/sharetube/relay/internal/repository/connection"
	"github.com/sharetube/relay/internal/repository/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	r := NewRepo(false, slog.Default())

	rm, created := r.GetOrCreate("MOVIE")
	require.True(t, created)
	assert.Equal(t, "MOVIE", rm.Id)

	again, created := r.GetOrCreate("MOVIE")
	assert.False(t, created)
	assert.Same(t, rm, again)

	got, err := r.Get("MOVIE")
	require.NoError(t, err)
	assert.Same(t, rm, got)
	assert.Equal(t, 1, r.Count())

	_, err = r.Get("OTHER")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestRemove(t *testing.T) {
	r := NewRepo(false, slog.Default())
	rm, _ := r.GetOrCreate("MOVIE")

	rm.Lock()
	require.NoError(t, r.Remove(rm))
	assert.True(t, rm.IsRemoved())
	rm.Unlock()

	_, err := r.Get("MOVIE")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
	assert.Zero(t, r.Count())

	fresh, created := r.GetOrCreate("MOVIE")
	assert.True(t, created)
	assert.NotSame(t, rm, fresh)
}

func TestRemoveStaleRoomKeepsReplacement(t *testing.T) {
	r := NewRepo(false, slog.Default())
	stale, _ := r.GetOrCreate("MOVIE")
	stale.Lock()
	require.NoError(t, r.Remove(stale))
	stale.Unlock()

	fresh, _ := r.GetOrCreate("MOVIE")
	stale.Lock()
	require.NoError(t, r.Remove(stale))
	stale.Unlock()

	got, err := r.Get("MOVIE")
	require.NoError(t, err)
	assert.Same(t, fresh, got)
}

func TestRemoveNonEmpty(t *testing.T) {
	rm := room.New("MOVIE")
	rm.AddMember(connection.New("a", 1))

	lenient := NewRepo(false, slog.Default())
	assert.ErrorIs(t, lenient.Remove(rm), room.ErrRoomNotEmpty)
	assert.False(t, rm.IsRemoved())

	strict := NewRepo(true, slog.Default())
	assert.Panics(t, func() { _ = strict.Remove(rm) })
}

func TestPlayer(t *testing.T) {
	ctx := context.Background()
	r := NewRepo(false, slog.Default())

	_, err := r.GetPlayer(ctx, "MOVIE")
	assert.ErrorIs(t, err, room.ErrPlayerNotFound)

	_, err = r.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{RoomId: "MOVIE"})
	assert.ErrorIs(t, err, room.ErrPlayerNotFound)

	require.NoError(t, r.SetPlayer(ctx, &room.SetPlayerParams{RoomId: "MOVIE"}))

	playing := true
	player, err := r.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		IsPlaying:   &playing,
		CurrentTime: 10,
		UpdatedAt:   1,
		RoomId:      "MOVIE",
	})
	require.NoError(t, err)
	assert.Equal(t, room.Player{IsPlaying: true, CurrentTime: 10, UpdatedAt: 1}, player)

	player, err = r.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		CurrentTime: 30,
		UpdatedAt:   2,
		RoomId:      "MOVIE",
	})
	require.NoError(t, err)
	assert.True(t, player.IsPlaying, "nil IsPlaying keeps the previous value")
	assert.Equal(t, 30.0, player.CurrentTime)

	require.NoError(t, r.RemovePlayer(ctx, "MOVIE"))
	assert.ErrorIs(t, r.RemovePlayer(ctx, "MOVIE"), room.ErrPlayerNotFound)
}

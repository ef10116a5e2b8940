package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindRoomOnce(t *testing.T) {
	c := New("c1", 1)

	assert.Empty(t, c.RoomId())
	assert.True(t, c.BindRoom("MOVIE"))
	assert.False(t, c.BindRoom("OTHER"))
	assert.Equal(t, "MOVIE", c.RoomId())
}

func TestEnqueueDoesNotBlock(t *testing.T) {
	c := New("c1", 1)

	assert.True(t, c.Enqueue([]byte("a")))
	assert.False(t, c.Enqueue([]byte("b")), "full queue must drop")
	assert.Equal(t, []byte("a"), <-c.Outbound())
}

func TestClose(t *testing.T) {
	c := New("c1", 2)
	c.Enqueue([]byte("a"))

	c.Close()
	c.Close()

	assert.True(t, c.IsClosed())
	assert.False(t, c.Enqueue([]byte("b")))
	assert.False(t, c.BindRoom("MOVIE"))

	data, ok := <-c.Outbound()
	assert.True(t, ok)
	assert.Equal(t, []byte("a"), data)
	_, ok = <-c.Outbound()
	assert.False(t, ok)
}

func TestSetReady(t *testing.T) {
	c := New("c1", 1)

	assert.False(t, c.IsReady())
	c.SetReady()
	assert.True(t, c.IsReady())
}

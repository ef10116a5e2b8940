package room

import (
	"testing"

	"github.com/sharetube/relay/internal/repository/connection"
	"github.com/stretchr/testify/assert"
)

func TestMembers(t *testing.T) {
	r := New("MOVIE")
	r.Lock()
	defer r.Unlock()

	b := connection.New("b", 1)
	a := connection.New("a", 1)
	r.AddMember(b)
	r.AddMember(a)
	r.AddMember(a)

	assert.Equal(t, 2, r.MemberCount())
	assert.Equal(t, []*connection.Connection{a, b}, r.Members())
	assert.True(t, r.HasMember("a"))

	assert.True(t, r.RemoveMember("a"))
	assert.False(t, r.RemoveMember("a"))
	assert.Equal(t, 1, r.MemberCount())
}

func TestAllReady(t *testing.T) {
	r := New("MOVIE")
	r.Lock()
	defer r.Unlock()

	assert.False(t, r.AllReady(), "empty room is never ready")

	a := connection.New("a", 1)
	r.AddMember(a)
	assert.False(t, r.AllReady())

	a.SetReady()
	assert.True(t, r.AllReady())

	r.AddMember(connection.New("b", 1))
	assert.False(t, r.AllReady(), "a new member is not ready yet")
}

package lobby

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardtable/lobby/internal/testutil"
)

func TestRegistryCreateRoom(t *testing.T) {
	g := NewRegistry(4, 6)

	room, err := g.CreateRoom()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), room.ID)
	assert.Equal(t, 4, room.Capacity)
	assert.Equal(t, 0, room.Len())

	got, ok := g.Get(room.ID)
	require.True(t, ok)
	assert.Same(t, room, got)
}

func TestRegistryCreateRoomUniqueIDs(t *testing.T) {
	g := NewRegistry(4, 6)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		room, err := g.CreateRoom()
		require.NoError(t, err)
		assert.False(t, seen[room.ID], "room id %s generated twice", room.ID)
		seen[room.ID] = true
	}
	assert.Equal(t, 200, g.Len())
}

func TestRegistryGetAbsent(t *testing.T) {
	g := NewRegistry(4, 6)
	_, ok := g.Get("NOPE99")
	assert.False(t, ok)
}

func TestRegistryDeleteIfEmpty(t *testing.T) {
	g := NewRegistry(4, 6)
	room, err := g.CreateRoom()
	require.NoError(t, err)

	g.DeleteIfEmpty(room.ID)
	_, ok := g.Get(room.ID)
	assert.False(t, ok)

	// Idempotent: deleting twice is a no-op.
	g.DeleteIfEmpty(room.ID)
	assert.Equal(t, 0, g.Len())
}

func TestRegistryDeleteIfEmptyKeepsOccupiedRoom(t *testing.T) {
	g := NewRegistry(4, 6)
	room, err := g.CreateRoom()
	require.NoError(t, err)
	_, err = room.AddParticipant(testutil.NewChannel("c1"), "Alice")
	require.NoError(t, err)

	g.DeleteIfEmpty(room.ID)
	_, ok := g.Get(room.ID)
	assert.True(t, ok, "non-empty room must survive DeleteIfEmpty")
}

func TestRegistryFindByConn(t *testing.T) {
	g := NewRegistry(4, 6)
	room1, _ := g.CreateRoom()
	room2, _ := g.CreateRoom()
	_, _ = room1.AddParticipant(testutil.NewChannel("c1"), "Alice")
	bob, _ := room2.AddParticipant(testutil.NewChannel("c2"), "Bob")

	foundRoom, foundP := g.FindByConn("c2")
	require.NotNil(t, foundP)
	assert.Same(t, room2, foundRoom)
	assert.Same(t, bob, foundP)

	foundRoom, foundP = g.FindByConn("nope")
	assert.Nil(t, foundRoom)
	assert.Nil(t, foundP)
}

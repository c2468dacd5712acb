package ws

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTargetFuncs(t *testing.T) {
	t.Parallel()

	u1 := uuid.Must(uuid.NewV4())
	u2 := uuid.Must(uuid.NewV4())
	s1 := &session{key: "s1", userID: u1, username: "a"}
	s2 := &session{key: "s2", userID: u2, username: "b"}

	assert.True(t, TargetAll()(s1))
	assert.True(t, TargetAll()(s2))

	assert.False(t, TargetNone()(s1))

	f := TargetUsers(u1)
	assert.True(t, f(s1))
	assert.False(t, f(s2))

	f = TargetSessionKey("s2")
	assert.False(t, f(s1))
	assert.True(t, f(s2))
}

func TestStreamer_TargetRoom(t *testing.T) {
	t.Parallel()

	streamer := NewStreamer(nil, nil, zap.NewNop())
	s1 := &session{key: "s1", userID: uuid.Must(uuid.NewV4())}
	s2 := &session{key: "s2", userID: uuid.Must(uuid.NewV4())}
	streamer.rooms.Join("s1", "emergency")

	f := streamer.TargetRoom("emergency")
	assert.True(t, f(s1))
	assert.False(t, f(s2))
}

package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomManager_Join(t *testing.T) {
	t.Parallel()
	rm := newRoomManager()

	rm.Join("s1", "general")
	rm.Join("s1", "general") // 重複参加
	rm.Join("s1", "emergency")
	rm.Join("s2", "general")

	assert.True(t, rm.IsMember("s1", "general"))
	assert.True(t, rm.IsMember("s1", "emergency"))
	assert.True(t, rm.IsMember("s2", "general"))
	assert.False(t, rm.IsMember("s2", "emergency"))
	assert.ElementsMatch(t, []string{"general", "emergency"}, rm.Rooms("s1"))
}

func TestRoomManager_RemoveAll(t *testing.T) {
	t.Parallel()
	rm := newRoomManager()

	rm.Join("s1", "general")
	rm.Join("s1", "emergency")
	rm.Join("s2", "general")

	rm.RemoveAll("s1")
	assert.False(t, rm.IsMember("s1", "general"))
	assert.False(t, rm.IsMember("s1", "emergency"))
	assert.True(t, rm.IsMember("s2", "general"))
	assert.Nil(t, rm.Rooms("s1"))

	// 存在しないセッションの除去は無害
	rm.RemoveAll("s3")
}

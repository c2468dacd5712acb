package presence

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadtwache/stadtwache/model"
)

func TestManager_Status(t *testing.T) {
	t.Parallel()
	m, _, current := newTestManager(t)
	userID := uuid.Must(uuid.NewV4())

	isOnline, lastSeen, label := m.Status(userID)
	assert.False(t, isOnline)
	assert.Nil(t, lastSeen)
	assert.Equal(t, "Offline", label)

	m.MarkOnline(userID, "wache1")
	isOnline, lastSeen, label = m.Status(userID)
	assert.True(t, isOnline)
	require.NotNil(t, lastSeen)
	assert.Equal(t, "Online", label)

	*current = current.Add(5 * time.Minute)
	isOnline, lastSeen, label = m.Status(userID)
	assert.False(t, isOnline)
	require.NotNil(t, lastSeen)
	assert.Equal(t, "Vor 5 Min.", label)
}

func TestManager_GroupByWorkStatus(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(t)

	streife := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "a", WorkStatus: "Streife"}
	pause := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "b", WorkStatus: "Pause"}
	unset := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "c"}
	m.MarkOnline(streife.ID, streife.Name)

	grouped := m.GroupByWorkStatus([]*model.User{streife, pause, unset})
	require.Len(t, grouped, 3)

	require.Len(t, grouped["Streife"], 1)
	assert.True(t, grouped["Streife"][0].IsOnline)
	assert.Equal(t, "Online", grouped["Streife"][0].OnlineStatus)

	require.Len(t, grouped["Pause"], 1)
	assert.False(t, grouped["Pause"][0].IsOnline)
	assert.Equal(t, "Offline", grouped["Pause"][0].OnlineStatus)

	// 勤務状態が未設定のユーザーは既定のグループに入る
	require.Len(t, grouped[model.DefaultWorkStatus], 1)
	assert.Equal(t, "c", grouped[model.DefaultWorkStatus][0].Name)
}

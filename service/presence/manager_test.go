package presence

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/event"
)

func newTestManager(t *testing.T) (*Manager, *hub.Hub, *time.Time) {
	t.Helper()
	h := hub.New()
	m := NewManager(h, zap.NewNop(), 2*time.Minute)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	m.now = func() time.Time { return current }
	return m, h, &current
}

func receiveEvent(t *testing.T, sub hub.Subscription) hub.Message {
	t.Helper()
	select {
	case msg := <-sub.Receiver:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timeout: expected an event")
		return hub.Message{}
	}
}

func assertNoEvent(t *testing.T, sub hub.Subscription) {
	t.Helper()
	select {
	case msg := <-sub.Receiver:
		t.Fatalf("unexpected event: %s", msg.Name)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_MarkOnline(t *testing.T) {
	t.Parallel()
	m, h, _ := newTestManager(t)
	sub := h.Subscribe(10, event.UserOnline)
	userID := uuid.Must(uuid.NewV4())

	assert.True(t, m.MarkOnline(userID, "wache1"))
	msg := receiveEvent(t, sub)
	assert.Equal(t, event.UserOnline, msg.Name)
	assert.EqualValues(t, userID, msg.Fields["user_id"])
	assert.EqualValues(t, "wache1", msg.Fields["username"])

	// 既にオンラインなら遷移通知は出ない
	assert.False(t, m.MarkOnline(userID, "wache1"))
	assertNoEvent(t, sub)
}

func TestManager_LastSeenIsMonotonic(t *testing.T) {
	t.Parallel()
	m, _, current := newTestManager(t)
	userID := uuid.Must(uuid.NewV4())

	m.MarkOnline(userID, "wache1")
	later := *current
	*current = later.Add(-30 * time.Second) // 時刻の逆行
	m.Heartbeat(userID, "wache1")
	m.TouchOnActivity(userID)

	*current = later
	online, _ := m.Snapshot()
	require.Len(t, online, 1)
	assert.Equal(t, later, online[0].LastSeen)
}

func TestManager_HeartbeatCreatesEntrySilently(t *testing.T) {
	t.Parallel()
	m, h, _ := newTestManager(t)
	sub := h.Subscribe(10, event.UserOnline)
	userID := uuid.Must(uuid.NewV4())

	m.Heartbeat(userID, "wache1")
	assertNoEvent(t, sub)
	assert.True(t, m.IsOnline(userID))
}

func TestManager_TouchOnActivityIgnoresUnknownUsers(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(t)
	userID := uuid.Must(uuid.NewV4())

	m.TouchOnActivity(userID)
	assert.False(t, m.IsOnline(userID))
}

func TestManager_MarkOfflineIsIdempotent(t *testing.T) {
	t.Parallel()
	m, h, _ := newTestManager(t)
	sub := h.Subscribe(10, event.UserOffline)
	userID := uuid.Must(uuid.NewV4())

	m.MarkOnline(userID, "wache1")
	assert.True(t, m.MarkOffline(userID))
	msg := receiveEvent(t, sub)
	assert.EqualValues(t, userID, msg.Fields["user_id"])

	// レコードがなくてもUserOfflineは通知される
	assert.False(t, m.MarkOffline(userID))
	msg = receiveEvent(t, sub)
	assert.EqualValues(t, userID, msg.Fields["user_id"])
}

func TestManager_SnapshotEvictsStaleEntries(t *testing.T) {
	t.Parallel()
	m, h, current := newTestManager(t)
	sub := h.Subscribe(10, event.UserOffline)

	active := uuid.Must(uuid.NewV4())
	stale := uuid.Must(uuid.NewV4())
	m.MarkOnline(stale, "alt")

	*current = current.Add(90 * time.Second)
	m.MarkOnline(active, "neu")

	// stale: 90秒経過 ≦ しきい値2分 → まだオンライン
	online, evicted := m.Snapshot()
	assert.Len(t, online, 2)
	assert.Empty(t, evicted)

	*current = current.Add(60 * time.Second)

	// stale: 150秒経過 > しきい値 → 削除してuser_offlineを通知
	online, evicted = m.Snapshot()
	require.Len(t, online, 1)
	assert.Equal(t, active, online[0].UserID)
	assert.Equal(t, 1, online[0].MinutesAgo)
	require.Len(t, evicted, 1)
	assert.Equal(t, stale, evicted[0])

	msg := receiveEvent(t, sub)
	assert.EqualValues(t, stale, msg.Fields["user_id"])
	assert.False(t, m.IsOnline(stale))
}

func TestManager_SnapshotAtExactThreshold(t *testing.T) {
	t.Parallel()
	m, _, current := newTestManager(t)
	userID := uuid.Must(uuid.NewV4())
	m.MarkOnline(userID, "wache1")

	// ちょうどしきい値ではまだオンライン
	*current = current.Add(2 * time.Minute)
	online, evicted := m.Snapshot()
	assert.Len(t, online, 1)
	assert.Empty(t, evicted)

	*current = current.Add(time.Second)
	online, evicted = m.Snapshot()
	assert.Empty(t, online)
	assert.Len(t, evicted, 1)
}

func TestManager_AttachDetachConnection(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(t)
	userID := uuid.Must(uuid.NewV4())

	assert.True(t, m.AttachConnection(userID, "wache1", "conn1"))
	key, ok := m.ConnectionKey(userID)
	require.True(t, ok)
	assert.Equal(t, "conn1", key)

	// 新しいコネクションが優先される
	assert.False(t, m.AttachConnection(userID, "wache1", "conn2"))
	key, _ = m.ConnectionKey(userID)
	assert.Equal(t, "conn2", key)

	// 古いコネクションの切断は帰属を変更しない
	m.DetachConnection(userID, "conn1")
	key, _ = m.ConnectionKey(userID)
	assert.Equal(t, "conn2", key)

	// 切断してもレコード自体は残る
	m.DetachConnection(userID, "conn2")
	key, ok = m.ConnectionKey(userID)
	require.True(t, ok)
	assert.Empty(t, key)
	assert.True(t, m.IsOnline(userID))
}

func TestManager_Reset(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestManager(t)
	m.MarkOnline(uuid.Must(uuid.NewV4()), "a")
	m.MarkOnline(uuid.Must(uuid.NewV4()), "b")

	m.Reset()
	online, _ := m.Snapshot()
	assert.Empty(t, online)
}

package presence

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/event"
)

// DefaultOfflineThreshold ハートビートが途絶えてからオフラインと見なすまでの時間
const DefaultOfflineThreshold = 2 * time.Minute

var onlineUsersGauge = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "stadtwache",
	Name:      "online_users",
})

// OnlineUser オンラインユーザーのスナップショットのエントリ
type OnlineUser struct {
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	LastSeen   time.Time `json:"last_seen"`
	MinutesAgo int       `json:"minutes_ago"`
}

type entry struct {
	name     string
	lastSeen time.Time
	connKey  string
}

// Manager プロセス全体のオンライン状態レジストリ
//
// エントリの削除は専用のタイマーではなく、オンラインユーザー一覧の読み取り (Snapshot)
// の際に遅延して行われます。
type Manager struct {
	hub       *hub.Hub
	logger    *zap.Logger
	threshold time.Duration
	entries   map[uuid.UUID]*entry
	mu        sync.RWMutex
	now       func() time.Time
}

// NewManager Managerを生成します。thresholdが0以下の場合は既定値を使用します
func NewManager(h *hub.Hub, logger *zap.Logger, threshold time.Duration) *Manager {
	if threshold <= 0 {
		threshold = DefaultOfflineThreshold
	}
	return &Manager{
		hub:       h,
		logger:    logger.Named("presence"),
		threshold: threshold,
		entries:   make(map[uuid.UUID]*entry),
		now:       time.Now,
	}
}

// Threshold オフライン判定のしきい値
func (m *Manager) Threshold() time.Duration {
	return m.threshold
}

// MarkOnline ユーザーをオンラインとして記録します
//
// オフラインからオンラインに遷移した場合はtrueを返し、UserOnlineイベントを発行します。
// 既にオンラインの場合は最終確認時刻の更新のみを行います。
func (m *Manager) MarkOnline(userID uuid.UUID, name string) (toOnline bool) {
	now := m.now()

	m.mu.Lock()
	e, ok := m.entries[userID]
	if !ok {
		e = &entry{name: name, lastSeen: now}
		m.entries[userID] = e
		onlineUsersGauge.Set(float64(len(m.entries)))
		toOnline = true
	} else if now.After(e.lastSeen) {
		e.lastSeen = now
	}
	m.mu.Unlock()

	if toOnline {
		m.hub.Publish(hub.Message{
			Name: event.UserOnline,
			Fields: hub.Fields{
				"user_id":  userID,
				"username": name,
				"datetime": now,
			},
		})
	}
	return
}

// Heartbeat 最終確認時刻を更新します。イベントは発行しません
//
// 時刻の逆行は無視されます (単調増加)。
func (m *Manager) Heartbeat(userID uuid.UUID, name string) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[userID]
	if !ok {
		m.entries[userID] = &entry{name: name, lastSeen: now}
		onlineUsersGauge.Set(float64(len(m.entries)))
		return
	}
	if now.After(e.lastSeen) {
		e.lastSeen = now
	}
}

// TouchOnActivity 認証済みの書き込み操作に伴って最終確認時刻を更新します
//
// レコードの生成はハートビート系の経路に任せるため、未知のユーザーに対しては何もしません。
func (m *Manager) TouchOnActivity(userID uuid.UUID) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[userID]; ok && now.After(e.lastSeen) {
		e.lastSeen = now
	}
}

// MarkOffline ユーザーをレジストリから削除し、UserOfflineイベントを発行します
//
// 冪等です。削除すべきレコードが存在した場合はtrueを返します。
func (m *Manager) MarkOffline(userID uuid.UUID) (wasPresent bool) {
	m.mu.Lock()
	if _, ok := m.entries[userID]; ok {
		delete(m.entries, userID)
		onlineUsersGauge.Set(float64(len(m.entries)))
		wasPresent = true
	}
	m.mu.Unlock()

	m.hub.Publish(hub.Message{
		Name: event.UserOffline,
		Fields: hub.Fields{
			"user_id": userID,
		},
	})
	return
}

// AttachConnection コネクションをユーザーに帰属させます
//
// レコードが存在しない場合は生成します (MarkOnlineと同じ遷移通知を行います)。
// 既に別のコネクションが記録されている場合は新しいものが優先されます。
func (m *Manager) AttachConnection(userID uuid.UUID, name, connKey string) (toOnline bool) {
	toOnline = m.MarkOnline(userID, name)

	m.mu.Lock()
	if e, ok := m.entries[userID]; ok {
		e.connKey = connKey
	}
	m.mu.Unlock()
	return
}

// DetachConnection コネクションの帰属を解除します
//
// レコードがまだこのコネクションを参照している場合のみ解除します。
// レコード自体は削除しません (明示的なログアウトか遅延削除のみが削除します)。
func (m *Manager) DetachConnection(userID uuid.UUID, connKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[userID]; ok && e.connKey == connKey {
		e.connKey = ""
	}
}

// ConnectionKey ユーザーに帰属しているコネクションキーを取得します
func (m *Manager) ConnectionKey(userID uuid.UUID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[userID]
	if !ok {
		return "", false
	}
	return e.connKey, true
}

// Snapshot オンラインユーザーの一覧を返します
//
// 副作用として、しきい値を超えたエントリを削除し、それぞれについて
// UserOfflineイベントを発行します (遅延削除)。削除されたユーザーのIDも返します。
func (m *Manager) Snapshot() (online []OnlineUser, evicted []uuid.UUID) {
	now := m.now()
	online = make([]OnlineUser, 0)

	m.mu.Lock()
	for userID, e := range m.entries {
		diff := now.Sub(e.lastSeen)
		if diff <= m.threshold {
			online = append(online, OnlineUser{
				UserID:     userID,
				Username:   e.name,
				LastSeen:   e.lastSeen,
				MinutesAgo: int(diff.Minutes()),
			})
		} else {
			evicted = append(evicted, userID)
		}
	}
	for _, userID := range evicted {
		delete(m.entries, userID)
	}
	onlineUsersGauge.Set(float64(len(m.entries)))
	m.mu.Unlock()

	for _, userID := range evicted {
		m.hub.Publish(hub.Message{
			Name: event.UserOffline,
			Fields: hub.Fields{
				"user_id": userID,
			},
		})
	}
	return
}

// IsOnline 指定したユーザーがオンラインかどうかを取得します。副作用はありません
func (m *Manager) IsOnline(userID uuid.UUID) bool {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[userID]
	return ok && now.Sub(e.lastSeen) <= m.threshold
}

// Reset 全エントリを削除します (管理者用リセット操作)
func (m *Manager) Reset() {
	m.mu.Lock()
	m.entries = make(map[uuid.UUID]*entry)
	onlineUsersGauge.Set(0)
	m.mu.Unlock()
}

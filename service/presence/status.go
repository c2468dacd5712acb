package presence

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"

	"github.com/stadtwache/stadtwache/model"
)

// UserWithStatus オンライン情報を付加したユーザー
type UserWithStatus struct {
	*model.User
	IsOnline     bool       `json:"is_online"`
	LastSeen     *time.Time `json:"last_seen"`
	OnlineStatus string     `json:"online_status"`
}

// Status 指定したユーザーのオンライン状態を取得します。副作用はありません
//
// ラベルはしきい値以内なら"Online"、レコードはあるが超過していれば"Vor N Min."、
// レコードがなければ"Offline"です。
func (m *Manager) Status(userID uuid.UUID) (isOnline bool, lastSeen *time.Time, label string) {
	now := m.now()

	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[userID]
	if !ok {
		return false, nil, "Offline"
	}

	seen := e.lastSeen
	diff := now.Sub(seen)
	if diff <= m.threshold {
		return true, &seen, "Online"
	}
	return false, &seen, fmt.Sprintf("Vor %d Min.", int(diff.Minutes()))
}

// GroupByWorkStatus ユーザーディレクトリ全体を勤務状態ごとにまとめ、
// 各ユーザーに現在のオンライン情報を付加します。読み取り専用の合成で、削除は行いません
func (m *Manager) GroupByWorkStatus(users []*model.User) map[string][]UserWithStatus {
	grouped := make(map[string][]UserWithStatus)
	for _, u := range users {
		status := u.WorkStatus
		if len(status) == 0 {
			status = model.DefaultWorkStatus
		}

		isOnline, lastSeen, label := m.Status(u.ID)
		grouped[status] = append(grouped[status], UserWithStatus{
			User:         u,
			IsOnline:     isOnline,
			LastSeen:     lastSeen,
			OnlineStatus: label,
		})
	}
	return grouped
}

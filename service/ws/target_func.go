package ws

import "github.com/gofrs/uuid"

// TargetFunc メッセージ送信対象関数
type TargetFunc func(s Session) bool

// TargetAll 全セッションを対象に送信します
func TargetAll() TargetFunc {
	return func(_ Session) bool {
		return true
	}
}

// TargetUsers 指定したユーザーを対象に送信します
func TargetUsers(userID ...uuid.UUID) TargetFunc {
	return func(s Session) bool {
		for _, u := range userID {
			if u == s.UserID() {
				return true
			}
		}
		return false
	}
}

// TargetSessionKey 指定したセッションのみを対象に送信します
func TargetSessionKey(key string) TargetFunc {
	return func(s Session) bool {
		return s.Key() == key
	}
}

// TargetNone いずれのセッションにも送信しません
func TargetNone() TargetFunc {
	return func(_ Session) bool {
		return false
	}
}

// TargetRoom 指定したルームに参加しているセッションを対象に送信します
func (s *Streamer) TargetRoom(room string) TargetFunc {
	return func(sess Session) bool {
		return s.rooms.IsMember(sess.Key(), room)
	}
}

package ws

import "sync"

// roomManager ルーム名とセッションキーの対応を管理します
//
// 順方向 (room→sessions) と逆方向 (session→rooms) の両インデックスを保持し、
// 切断時の全ルームからの除去をO(所属ルーム数)で行います。
type roomManager struct {
	rooms    map[string]map[string]struct{}
	sessions map[string]map[string]struct{}
	mu       sync.RWMutex
}

func newRoomManager() *roomManager {
	return &roomManager{
		rooms:    make(map[string]map[string]struct{}),
		sessions: make(map[string]map[string]struct{}),
	}
}

// Join セッションをルームに参加させます。重複参加は無視されます
func (rm *roomManager) Join(sessionKey, room string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.rooms[room] == nil {
		rm.rooms[room] = make(map[string]struct{})
	}
	rm.rooms[room][sessionKey] = struct{}{}
	if rm.sessions[sessionKey] == nil {
		rm.sessions[sessionKey] = make(map[string]struct{})
	}
	rm.sessions[sessionKey][room] = struct{}{}
}

// IsMember セッションがルームに参加しているかどうか
func (rm *roomManager) IsMember(sessionKey, room string) bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	_, ok := rm.rooms[room][sessionKey]
	return ok
}

// Rooms セッションが参加しているルームの一覧
func (rm *roomManager) Rooms(sessionKey string) []string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	rooms := rm.sessions[sessionKey]
	if len(rooms) == 0 {
		return nil
	}
	result := make([]string, 0, len(rooms))
	for room := range rooms {
		result = append(result, room)
	}
	return result
}

// RemoveAll セッションを全ルームから除去します
func (rm *roomManager) RemoveAll(sessionKey string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for room := range rm.sessions[sessionKey] {
		if members, ok := rm.rooms[room]; ok {
			delete(members, sessionKey)
			if len(members) == 0 {
				delete(rm.rooms, room)
			}
		}
	}
	delete(rm.sessions, sessionKey)
}

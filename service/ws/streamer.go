package ws

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/extension/ctxkey"
	"github.com/stadtwache/stadtwache/service/presence"
	"github.com/stadtwache/stadtwache/utils/random"
)

var (
	// ErrAlreadyClosed 既に閉じられています
	ErrAlreadyClosed = errors.New("already closed")
	// ErrBufferIsFull 送信バッファが溢れました
	ErrBufferIsFull = errors.New("buffer is full")
)

// Streamer WebSocketストリーマー
type Streamer struct {
	repo     repository.Repository
	presence *presence.Manager
	logger   *zap.Logger
	rooms    *roomManager
	sessions map[*session]struct{}
	closed   bool
	mu       sync.RWMutex
}

// NewStreamer WebSocketストリーマーを生成します
func NewStreamer(repo repository.Repository, p *presence.Manager, logger *zap.Logger) *Streamer {
	return &Streamer{
		repo:     repo,
		presence: p,
		logger:   logger.Named("ws"),
		rooms:    newRoomManager(),
		sessions: make(map[*session]struct{}),
		closed:   false,
	}
}

func (s *Streamer) register(session *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session] = struct{}{}
}

func (s *Streamer) unregister(session *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session)
}

// WriteMessage 対象のセッションにメッセージを書き込みます
//
// 送信はfire-and-forgetです。バッファの溢れたセッションへの配信は破棄され、
// エラーが呼び出し元に返ることはありません。
func (s *Streamer) WriteMessage(t string, body interface{}, targetFunc TargetFunc) {
	m := &rawMessage{
		t:    websocket.TextMessage,
		data: makeMessage(t, body).toJSON(),
	}
	s.mu.RLock()
	for session := range s.sessions {
		if targetFunc(session) {
			if err := session.writeMessage(m); err != nil {
				if err == ErrBufferIsFull {
					s.logger.Warn("Discard a message because the session's buffer is full.",
						zap.String("type", t),
						zap.Stringer("userID", session.userID))
				}
				continue
			}
		}
	}
	s.mu.RUnlock()
}

// ServeHTTP http.Handlerインターフェイスの実装
func (s *Streamer) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	if s.closed {
		http.Error(rw, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		s.mu.RUnlock()
		return
	}
	s.mu.RUnlock()

	user, ok := r.Context().Value(ctxkey.User).(*model.User)
	if !ok {
		http.Error(rw, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(rw, r, rw.Header())
	if err != nil {
		return
	}

	session := &session{
		key:      random.AlphaNumeric(20),
		userID:   user.ID,
		username: user.Name,
		req:      r,
		conn:     conn,
		open:     true,
		streamer: s,
		send:     make(chan *rawMessage, messageBufferSize),
	}

	s.register(session)
	s.presence.AttachConnection(session.userID, session.username, session.key)

	go session.writeLoop()
	session.readLoop()

	// 切断時の掃除: ルーム所属とコネクションの帰属は破棄するが、
	// 在席レコード自体は残す (削除は明示的なログアウトか遅延削除のみ)
	s.rooms.RemoveAll(session.key)
	s.presence.DetachConnection(session.userID, session.key)
	s.unregister(session)
	session.close()
}

// Close ストリーマーを停止します
func (s *Streamer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrAlreadyClosed
	}
	s.closed = true

	m := &rawMessage{
		t:    websocket.CloseMessage,
		data: websocket.FormatCloseMessage(websocket.CloseServiceRestart, "Server is stopping..."),
	}
	for session := range s.sessions {
		_ = session.writeMessage(m)
		session.close()
	}
	s.sessions = make(map[*session]struct{})
	return nil
}

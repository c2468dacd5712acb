package notification

import (
	"context"
	stdjson "encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/event"
	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/router/extension/ctxkey"
	"github.com/stadtwache/stadtwache/service/presence"
	"github.com/stadtwache/stadtwache/service/ws"
)

// 発行順とセッションへの配信順が一致すること
func TestStartService_DeliveryOrder(t *testing.T) {
	t.Parallel()

	h := hub.New()
	logger := zap.NewNop()
	pm := presence.NewManager(h, logger, 0)
	streamer := ws.NewStreamer(nil, pm, logger)
	StartService(h, logger, streamer)

	user := &model.User{ID: uuid.Must(uuid.NewV4()), Name: "wache1", Role: model.RolePolice, IsActive: true}
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		streamer.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), ctxkey.User, user)))
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	type frame struct {
		Type string             `json:"type"`
		Body stdjson.RawMessage `json:"body"`
	}

	// 接続時のuser_onlineが届いた時点でセッションの登録は完了している
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	require.Equal(t, "user_online", f.Type)

	published := make([]uuid.UUID, 20)
	for i := range published {
		published[i] = uuid.Must(uuid.NewV4())
		h.Publish(hub.Message{
			Name: event.MessageDeleted,
			Fields: hub.Fields{
				"message_id": published[i],
				"channel":    model.DefaultChannel,
			},
		})
	}

	received := make([]uuid.UUID, 0, len(published))
	for len(received) < len(published) {
		require.NoError(t, conn.ReadJSON(&f))
		if f.Type != "message_deleted" {
			continue
		}
		var body struct {
			MessageID uuid.UUID `json:"message_id"`
		}
		require.NoError(t, stdjson.Unmarshal(f.Body, &body))
		received = append(received, body.MessageID)
	}
	require.Equal(t, published, received)
}

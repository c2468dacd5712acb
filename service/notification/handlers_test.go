package notification

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/event"
	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/service/ws"
)

func TestHandlerMapCoversAllTopics(t *testing.T) {
	t.Parallel()

	topics := []string{
		event.UserOnline,
		event.UserOffline,
		event.MessageCreated,
		event.MessageDeleted,
		event.IncidentCreated,
		event.IncidentAssigned,
		event.IncidentUpdated,
		event.IncidentCompleted,
		event.LocationUpdated,
	}
	assert.Len(t, handlerMap, len(topics))
	for _, topic := range topics {
		assert.Contains(t, handlerMap, topic)
	}
}

// セッションのないストリーマーに対してもハンドラが安全に動作すること
func TestHandlersWithoutSessions(t *testing.T) {
	t.Parallel()

	ns := &Service{
		hub:    hub.New(),
		logger: zap.NewNop(),
		ws:     ws.NewStreamer(nil, nil, zap.NewNop()),
	}

	userID := uuid.Must(uuid.NewV4())
	userOnlineHandler(ns, hub.Message{
		Name: event.UserOnline,
		Fields: hub.Fields{
			"user_id":  userID,
			"username": "wache1",
			"datetime": time.Now(),
		},
	})
	userOfflineHandler(ns, hub.Message{
		Name:   event.UserOffline,
		Fields: hub.Fields{"user_id": userID},
	})
	messageCreatedHandler(ns, hub.Message{
		Name: event.MessageCreated,
		Fields: hub.Fields{
			"message_id": userID,
			"message":    &model.Message{Channel: "general"},
		},
	})
}

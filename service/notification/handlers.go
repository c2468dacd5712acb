package notification

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"

	"github.com/stadtwache/stadtwache/event"
	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/service/ws"
)

type eventHandler func(ns *Service, ev hub.Message)

var handlerMap = map[string]eventHandler{
	event.UserOnline:        userOnlineHandler,
	event.UserOffline:       userOfflineHandler,
	event.MessageCreated:    messageCreatedHandler,
	event.MessageDeleted:    messageDeletedHandler,
	event.IncidentCreated:   incidentCreatedHandler,
	event.IncidentAssigned:  incidentAssignedHandler,
	event.IncidentUpdated:   incidentUpdatedHandler,
	event.IncidentCompleted: incidentCompletedHandler,
	event.LocationUpdated:   locationUpdatedHandler,
}

func userOnlineHandler(ns *Service, ev hub.Message) {
	ns.ws.WriteMessage("user_online", map[string]interface{}{
		"user_id":   ev.Fields["user_id"].(uuid.UUID),
		"username":  ev.Fields["username"].(string),
		"timestamp": ev.Fields["datetime"].(time.Time),
	}, ws.TargetAll())
}

func userOfflineHandler(ns *Service, ev hub.Message) {
	ns.ws.WriteMessage("user_offline", map[string]interface{}{
		"user_id": ev.Fields["user_id"].(uuid.UUID),
	}, ws.TargetAll())
}

func messageCreatedHandler(ns *Service, ev hub.Message) {
	m := ev.Fields["message"].(*model.Message)
	// メッセージはそのチャンネルのルームに参加しているセッションにのみ届く
	ns.ws.WriteMessage("new_message", m, ns.ws.TargetRoom(m.Channel))
}

func messageDeletedHandler(ns *Service, ev hub.Message) {
	ns.ws.WriteMessage("message_deleted", map[string]interface{}{
		"message_id": ev.Fields["message_id"].(uuid.UUID),
		"channel":    ev.Fields["channel"].(string),
	}, ws.TargetAll())
}

func incidentCreatedHandler(ns *Service, ev hub.Message) {
	ns.ws.WriteMessage("new_incident", ev.Fields["incident"].(*model.Incident), ws.TargetAll())
}

func incidentAssignedHandler(ns *Service, ev hub.Message) {
	ns.ws.WriteMessage("incident_assigned", map[string]interface{}{
		"incident_id": ev.Fields["incident_id"].(uuid.UUID),
		"assigned_to": ev.Fields["assigned_to"].(string),
		"incident":    ev.Fields["incident"].(*model.Incident),
	}, ws.TargetAll())
}

func incidentUpdatedHandler(ns *Service, ev hub.Message) {
	ns.ws.WriteMessage("incident_updated", ev.Fields["incident"].(*model.Incident), ws.TargetAll())
}

func incidentCompletedHandler(ns *Service, ev hub.Message) {
	ns.ws.WriteMessage("incident_completed", map[string]interface{}{
		"incident_id":  ev.Fields["incident_id"].(uuid.UUID),
		"completed_by": ev.Fields["completed_by"].(string),
		"archived_as":  ev.Fields["archived_as"].(uuid.UUID),
	}, ws.TargetAll())
}

func locationUpdatedHandler(ns *Service, ev hub.Message) {
	ns.ws.WriteMessage("location_updated", ev.Fields["location"].(*model.LocationLog), ws.TargetAll())
}

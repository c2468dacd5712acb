package event

const (
	// UserOnline ユーザーがオンラインになった
	// 	Fields:
	// 		user_id: uuid.UUID
	// 		username: string
	// 		datetime: time.Time
	UserOnline = "user.online"
	// UserOffline ユーザーがオフラインになった
	// 	Fields:
	// 		user_id: uuid.UUID
	UserOffline = "user.offline"

	// MessageCreated メッセージが作成された
	// 	Fields:
	// 		message_id: uuid.UUID
	// 		message: *model.Message
	MessageCreated = "message.created"
	// MessageDeleted メッセージが削除された
	// 	Fields:
	// 		message_id: uuid.UUID
	// 		channel: string
	MessageDeleted = "message.deleted"

	// IncidentCreated 事案が作成された
	// 	Fields:
	// 		incident_id: uuid.UUID
	// 		incident: *model.Incident
	IncidentCreated = "incident.created"
	// IncidentAssigned 事案に担当者が割り当てられた
	// 	Fields:
	// 		incident_id: uuid.UUID
	// 		incident: *model.Incident
	// 		assigned_to: string
	IncidentAssigned = "incident.assigned"
	// IncidentUpdated 事案が更新された
	// 	Fields:
	// 		incident_id: uuid.UUID
	// 		incident: *model.Incident
	IncidentUpdated = "incident.updated"
	// IncidentCompleted 事案が完了しアーカイブされた
	// 	Fields:
	// 		incident_id: uuid.UUID
	// 		completed_by: string
	// 		archived_as: uuid.UUID
	IncidentCompleted = "incident.completed"

	// LocationUpdated 位置情報が更新された
	// 	Fields:
	// 		location: *model.LocationLog
	LocationUpdated = "location.updated"
)

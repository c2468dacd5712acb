package ws

import (
	stdjson "encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
)

type inboundFrame struct {
	Type string             `json:"type"`
	Body stdjson.RawMessage `json:"body"`
}

type joinRoomBody struct {
	Room string `json:"room"`
}

type sendMessageBody struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

type locationUpdateBody struct {
	Location model.Coordinates `json:"location"`
}

func (s *session) frameHandler(data []byte) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		s.sendErrorMessage(fmt.Sprintf("invalid frame: %s", err))
		return
	}

	switch frame.Type {
	case "join_room":
		var body joinRoomBody
		if len(frame.Body) > 0 {
			if err := json.Unmarshal(frame.Body, &body); err != nil {
				s.sendErrorMessage(fmt.Sprintf("invalid body: %s", err))
				return
			}
		}
		if len(body.Room) == 0 {
			body.Room = model.DefaultChannel
		}

		s.streamer.rooms.Join(s.key, body.Room)
		// 参加の確認応答は参加したセッションにのみ送る
		_ = s.writeMessage(&rawMessage{
			t:    websocket.TextMessage,
			data: makeMessage("joined_room", joinRoomBody{Room: body.Room}).toJSON(),
		})

	case "send_message":
		var body sendMessageBody
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			s.sendErrorMessage(fmt.Sprintf("invalid body: %s", err))
			return
		}
		if len(body.Message) == 0 {
			s.sendErrorMessage("message is empty")
			return
		}
		if len(body.Room) == 0 {
			body.Room = model.DefaultChannel
		}

		// 永続化に成功した場合のみイベントが発行される
		_, err := s.streamer.repo.CreateMessage(repository.CreateMessageArgs{
			Content:     body.Message,
			SenderID:    s.userID,
			SenderName:  s.username,
			Channel:     body.Room,
			MessageType: model.MessageTypeText,
		})
		if err != nil {
			s.streamer.logger.Error("failed to create message", zap.Error(err), zap.Stringer("userID", s.userID))
			s.sendErrorMessage("failed to send message")
			return
		}
		s.streamer.presence.TouchOnActivity(s.userID)

	case "location_update":
		var body locationUpdateBody
		if err := json.Unmarshal(frame.Body, &body); err != nil {
			s.sendErrorMessage(fmt.Sprintf("invalid body: %s", err))
			return
		}

		if _, err := s.streamer.repo.RecordLocation(s.userID, body.Location); err != nil {
			s.streamer.logger.Error("failed to record location", zap.Error(err), zap.Stringer("userID", s.userID))
			s.sendErrorMessage("failed to update location")
			return
		}
		s.streamer.presence.TouchOnActivity(s.userID)

	default:
		s.sendErrorMessage(fmt.Sprintf("unknown frame type: %s", frame.Type))
	}
}

func (s *session) sendErrorMessage(message string) {
	_ = s.writeMessage(&rawMessage{
		t:    websocket.TextMessage,
		data: makeMessage("ERROR", message).toJSON(),
	})
}

package router

import (
	"errors"
	"net/http"
	"strconv"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/extension/herror"
)

// GetMessages GET /api/messages
func (h *Handlers) GetMessages(c echo.Context) error {
	channel := c.QueryParam("channel")
	if len(channel) == 0 {
		channel = model.DefaultChannel
	}

	limit := 50
	if l := c.QueryParam("limit"); len(l) > 0 {
		v, err := strconv.Atoi(l)
		if err != nil || v <= 0 {
			return herror.BadRequest("invalid limit")
		}
		limit = v
	}

	messages, err := h.Repo.GetMessages(channel, limit)
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, messages)
}

// PostMessageRequest POST /api/messages リクエストボディ
type PostMessageRequest struct {
	Content     string    `json:"content"`
	RecipientID uuid.UUID `json:"recipient_id"`
	Channel     string    `json:"channel"`
	MessageType string    `json:"message_type"`
}

func (r PostMessageRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Content, vd.Required),
		vd.Field(&r.Channel, vd.RuneLength(0, 64)),
	)
}

// PostMessage POST /api/messages
func (h *Handlers) PostMessage(c echo.Context) error {
	var req PostMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	me := getRequestUser(c)
	message, err := h.Repo.CreateMessage(repository.CreateMessageArgs{
		Content:     req.Content,
		SenderID:    me.ID,
		SenderName:  me.Name,
		RecipientID: req.RecipientID,
		Channel:     req.Channel,
		MessageType: req.MessageType,
	})
	if err != nil {
		return herror.InternalServerError(err)
	}

	h.Presence.TouchOnActivity(me.ID)
	return c.JSON(http.StatusOK, message)
}

// DeleteMessage DELETE /api/messages/:messageID
func (h *Handlers) DeleteMessage(c echo.Context) error {
	id, err := getParamAsUUID(c, "messageID")
	if err != nil {
		return err
	}

	message, err := h.Repo.GetMessage(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("Message not found")
		}
		return herror.InternalServerError(err)
	}

	me := getRequestUser(c)
	if message.SenderID != me.ID && !me.IsAdmin() {
		return herror.Forbidden("Not authorized to delete this message")
	}

	if err := h.Repo.DeleteMessage(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("Message not found")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "Message deleted"})
}

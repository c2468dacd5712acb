package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/extension/herror"
)

// GetUsers GET /api/users
func (h *Handlers) GetUsers(c echo.Context) error {
	if !getRequestUser(c).IsAdmin() {
		return herror.Forbidden("Admin access required")
	}

	users, err := h.Repo.GetUsers(false)
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser DELETE /api/users/:userID
func (h *Handlers) DeleteUser(c echo.Context) error {
	me := getRequestUser(c)
	if !me.IsAdmin() {
		return herror.Forbidden("Not authorized")
	}

	id, err := getParamAsUUID(c, "userID")
	if err != nil {
		return err
	}
	if id == me.ID {
		return herror.BadRequest("Cannot delete yourself")
	}

	if err := h.Repo.DeleteUser(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("User not found")
		}
		return herror.InternalServerError(err)
	}

	// 削除されたユーザーのプレゼンスも破棄する
	h.Presence.MarkOffline(id)

	return c.JSON(http.StatusOK, echo.Map{"status": "success", "message": "User deleted"})
}

// PostOnlineStatus POST /api/users/online-status
func (h *Handlers) PostOnlineStatus(c echo.Context) error {
	me := getRequestUser(c)
	h.Presence.MarkOnline(me.ID, me.Name)
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "online",
		"user_id":   me.ID,
		"timestamp": time.Now().UTC(),
	})
}

// PostHeartbeat POST /api/users/heartbeat
func (h *Handlers) PostHeartbeat(c echo.Context) error {
	me := getRequestUser(c)
	h.Presence.Heartbeat(me.ID, me.Name)
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "heartbeat",
		"timestamp": time.Now().UTC(),
	})
}

// GetOnlineUsers GET /api/users/online
func (h *Handlers) GetOnlineUsers(c echo.Context) error {
	online, _ := h.Presence.Snapshot()
	return c.JSON(http.StatusOK, online)
}

// PostLogout POST /api/users/logout
func (h *Handlers) PostLogout(c echo.Context) error {
	me := getRequestUser(c)
	h.Presence.MarkOffline(me.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "logged_out",
		"user_id": me.ID,
	})
}

// GetUsersByStatus GET /api/users/by-status
func (h *Handlers) GetUsersByStatus(c echo.Context) error {
	users, err := h.Repo.GetUsers(false)
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, h.Presence.GroupByWorkStatus(users))
}

package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/extension/herror"
)

// GetStats GET /api/admin/stats
func (h *Handlers) GetStats(c echo.Context) error {
	if !getRequestUser(c).IsAdmin() {
		return herror.Forbidden("Admin access required")
	}

	totalUsers, err := h.Repo.CountUsers()
	if err != nil {
		return herror.InternalServerError(err)
	}
	totalIncidents, err := h.Repo.CountIncidents("")
	if err != nil {
		return herror.InternalServerError(err)
	}
	openIncidents, err := h.Repo.CountIncidents(model.IncidentStatusOpen)
	if err != nil {
		return herror.InternalServerError(err)
	}
	totalMessages, err := h.Repo.CountMessages()
	if err != nil {
		return herror.InternalServerError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_users":     totalUsers,
		"total_incidents": totalIncidents,
		"open_incidents":  openIncidents,
		"total_messages":  totalMessages,
	})
}

// CreateFirstUser POST /api/admin/create-first-user
//
// ユーザーが一人も存在しない場合のみ、初期管理者を作成します。認証は不要です。
func (h *Handlers) CreateFirstUser(c echo.Context) error {
	var req PostUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	n, err := h.Repo.CountUsers()
	if err != nil {
		return herror.InternalServerError(err)
	}
	if n > 0 {
		return herror.BadRequest("Users already exist. Use normal registration.")
	}

	hashed, err := h.Authn.HashPassword(req.Password)
	if err != nil {
		return herror.InternalServerError(err)
	}

	user, err := h.Repo.CreateUser(repository.CreateUserArgs{
		Email:         req.Email,
		Name:          req.Name,
		Password:      hashed,
		Role:          model.RoleAdmin, // 初期ユーザーは必ず管理者
		BadgeNumber:   req.BadgeNumber,
		Department:    req.Department,
		Phone:         req.Phone,
		ServiceNumber: req.ServiceNumber,
		Rank:          req.Rank,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return herror.BadRequest("Users already exist. Use normal registration.")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "First admin user created successfully",
		"user":    user,
	})
}

// ResetDatabase DELETE /api/admin/reset-database
//
// 全テーブルの内容とプレゼンス情報を消去します。管理者のみ実行可能です。
func (h *Handlers) ResetDatabase(c echo.Context) error {
	if !getRequestUser(c).IsAdmin() {
		return herror.Forbidden("Admin access required")
	}

	deleted, err := h.Repo.Wipe()
	if err != nil {
		return herror.InternalServerError(err)
	}
	h.Presence.Reset()

	return c.JSON(http.StatusOK, echo.Map{
		"message":                 "Database completely reset!",
		"total_documents_deleted": deleted,
	})
}

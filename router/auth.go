package router

import (
	"errors"
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/extension/herror"
	"github.com/stadtwache/stadtwache/service/authn"
)

// PostUserRequest POST /api/auth/register リクエストボディ
type PostUserRequest struct {
	Email         string         `json:"email"`
	Name          string         `json:"username"`
	Password      string         `json:"password"`
	Role          model.UserRole `json:"role"`
	BadgeNumber   string         `json:"badge_number"`
	Department    string         `json:"department"`
	Phone         string         `json:"phone"`
	ServiceNumber string         `json:"service_number"`
	Rank          string         `json:"rank"`
}

func (r PostUserRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Email, vd.Required, is.Email),
		vd.Field(&r.Name, vd.Required, vd.RuneLength(1, 64)),
		vd.Field(&r.Password, vd.Required, vd.RuneLength(8, 72)),
	)
}

// Register POST /api/auth/register
func (h *Handlers) Register(c echo.Context) error {
	var req PostUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = model.RolePolice
	}
	if !role.Valid() {
		return herror.BadRequest("invalid role")
	}

	hashed, err := h.Authn.HashPassword(req.Password)
	if err != nil {
		return herror.InternalServerError(err)
	}

	user, err := h.Repo.CreateUser(repository.CreateUserArgs{
		Email:         req.Email,
		Name:          req.Name,
		Password:      hashed,
		Role:          role,
		BadgeNumber:   req.BadgeNumber,
		Department:    req.Department,
		Phone:         req.Phone,
		ServiceNumber: req.ServiceNumber,
		Rank:          req.Rank,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return herror.BadRequest("Email already registered")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// LoginRequest POST /api/auth/login リクエストボディ
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Email, vd.Required, is.Email),
		vd.Field(&r.Password, vd.Required),
	)
}

// Login POST /api/auth/login
func (h *Handlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.Repo.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.Unauthorized("Incorrect email or password")
		}
		return herror.InternalServerError(err)
	}
	if err := h.Authn.VerifyPassword(user.Password, req.Password); err != nil {
		if errors.Is(err, authn.ErrWrongPassword) {
			return herror.Unauthorized("Incorrect email or password")
		}
		return herror.InternalServerError(err)
	}

	token, err := h.Authn.IssueToken(user.ID)
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// GetMe GET /api/auth/me
func (h *Handlers) GetMe(c echo.Context) error {
	return c.JSON(http.StatusOK, getRequestUser(c))
}

// PutProfileRequest PUT /api/auth/profile リクエストボディ
type PutProfileRequest struct {
	Name          *string `json:"username"`
	Phone         *string `json:"phone"`
	ServiceNumber *string `json:"service_number"`
	Rank          *string `json:"rank"`
	Department    *string `json:"department"`
	WorkStatus    *string `json:"status"`
}

func (r PutProfileRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Name, vd.NilOrNotEmpty, vd.RuneLength(1, 64)),
		vd.Field(&r.WorkStatus, vd.NilOrNotEmpty, vd.RuneLength(1, 32)),
	)
}

// UpdateProfile PUT /api/auth/profile
func (h *Handlers) UpdateProfile(c echo.Context) error {
	var req PutProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	me := getRequestUser(c)
	user, err := h.Repo.UpdateUser(me.ID, repository.UpdateUserArgs{
		Name:          req.Name,
		Phone:         req.Phone,
		ServiceNumber: req.ServiceNumber,
		Rank:          req.Rank,
		Department:    req.Department,
		WorkStatus:    req.WorkStatus,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("User not found")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, user)
}

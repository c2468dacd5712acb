// Package router HTTP APIルーティング
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/extension"
	"github.com/stadtwache/stadtwache/router/middlewares"
	"github.com/stadtwache/stadtwache/service/authn"
	"github.com/stadtwache/stadtwache/service/presence"
	"github.com/stadtwache/stadtwache/service/ws"
)

type Handlers struct {
	Repo     repository.Repository
	WS       *ws.Streamer
	Presence *presence.Manager
	Authn    *authn.Service
	Logger   *zap.Logger

	Version  string
	Revision string
}

// Setup APIルーティングを行います
func Setup(h *Handlers, dev bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = extension.ErrorHandler(h.Logger)

	e.Use(middlewares.ServerVersion(h.Version))
	e.Use(middlewares.RequestID())
	e.Use(middlewares.AccessLogging(h.Logger.Named("access_log"), dev))
	e.Use(middlewares.Recovery(h.Logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(extension.Wrap())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/ping", h.Ping)

	requiresAuth := middlewares.UserAuthenticate(h.Repo, h.Authn)

	apiAuth := api.Group("/auth")
	{
		apiAuth.POST("/register", h.Register)
		apiAuth.POST("/login", h.Login)
		apiAuth.GET("/me", h.GetMe, requiresAuth)
		apiAuth.PUT("/profile", h.UpdateProfile, requiresAuth)
	}
	apiUsers := api.Group("/users", requiresAuth)
	{
		apiUsers.GET("", h.GetUsers)
		apiUsers.POST("/online-status", h.PostOnlineStatus)
		apiUsers.POST("/heartbeat", h.PostHeartbeat)
		apiUsers.GET("/online", h.GetOnlineUsers)
		apiUsers.POST("/logout", h.PostLogout)
		apiUsers.GET("/by-status", h.GetUsersByStatus)
		apiUsers.DELETE("/:userID", h.DeleteUser)
	}
	apiIncidents := api.Group("/incidents", requiresAuth)
	{
		apiIncidents.POST("", h.CreateIncident)
		apiIncidents.GET("", h.GetIncidents)
		apiIncidents.GET("/:incidentID", h.GetIncident)
		apiIncidents.PUT("/:incidentID", h.UpdateIncident)
		apiIncidents.PUT("/:incidentID/assign", h.AssignIncident)
		apiIncidents.PUT("/:incidentID/complete", h.CompleteIncident)
		apiIncidents.DELETE("/:incidentID", h.DeleteIncident)
	}
	apiMessages := api.Group("/messages", requiresAuth)
	{
		apiMessages.GET("", h.GetMessages)
		apiMessages.POST("", h.PostMessage)
		apiMessages.DELETE("/:messageID", h.DeleteMessage)
	}
	apiReports := api.Group("/reports", requiresAuth)
	{
		apiReports.POST("", h.CreateReport)
		apiReports.GET("", h.GetReports)
		apiReports.GET("/folders", h.GetReportFolders)
		apiReports.PUT("/:reportID", h.UpdateReport)
	}
	apiLocations := api.Group("/locations", requiresAuth)
	{
		apiLocations.POST("/update", h.PostLocationUpdate)
		apiLocations.GET("/live", h.GetLiveLocations)
	}
	apiAdmin := api.Group("/admin")
	{
		apiAdmin.POST("/create-first-user", h.CreateFirstUser)
		apiAdmin.GET("/stats", h.GetStats, requiresAuth)
		apiAdmin.DELETE("/reset-database", h.ResetDatabase, requiresAuth)
	}
	api.GET("/ws", echo.WrapHandler(h.WS), requiresAuth)

	return e
}

// Ping ヘルスチェック用エンドポイント
func (h *Handlers) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "version": h.Version})
}

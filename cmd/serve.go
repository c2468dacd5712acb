package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/leandro-lugaresi/hub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	rgorm "github.com/stadtwache/stadtwache/repository/gorm"
	"github.com/stadtwache/stadtwache/router"
	"github.com/stadtwache/stadtwache/service/authn"
	"github.com/stadtwache/stadtwache/service/notification"
	"github.com/stadtwache/stadtwache/service/presence"
	"github.com/stadtwache/stadtwache/service/ws"
	"github.com/stadtwache/stadtwache/utils/random"
)

// serveCommand サーバー起動コマンド
func serveCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "serve",
		Short: "Serve Stadtwache API",
		Run: func(_ *cobra.Command, _ []string) {
			// Logger
			logger := getLogger()
			defer logger.Sync()

			logger.Info(fmt.Sprintf("Stadtwache %s (revision %s)", Version, Revision))

			// Message Hub
			hub := hub.New()

			// Database
			logger.Info("connecting database...")
			engine, err := c.getDatabase(logger)
			if err != nil {
				logger.Fatal("failed to connect database", zap.Error(err))
			}
			db, err := engine.DB()
			if err != nil {
				logger.Fatal("failed to get *sql.DB", zap.Error(err))
			}
			defer db.Close()
			logger.Info("database connection was established")

			// Repository
			logger.Info("setting up repository...")
			repo, err := rgorm.NewGormRepository(engine, hub, logger)
			if err != nil {
				logger.Fatal("failed to initialize repository", zap.Error(err))
			}
			logger.Info("repository was set up")

			// Token signer
			secret := c.JWT.Secret
			if len(secret) == 0 {
				// 一時シークレットを発行
				secret = random.SecureAlphaNumeric(64)
				logger.Warn("a temporary JWT secret was generated. Tokens are valid only during this running.")
			}
			tokens := authn.NewService(secret, time.Duration(c.JWT.LifetimeMinutes)*time.Minute)

			// Presence
			pm := presence.NewManager(hub, logger, time.Duration(c.Presence.OfflineThresholdSeconds)*time.Second)

			// WebSocket
			streamer := ws.NewStreamer(repo, pm, logger)

			// Notification
			notification.StartService(hub, logger, streamer)

			// Routing
			e := router.Setup(&router.Handlers{
				Repo:     repo,
				WS:       streamer,
				Presence: pm,
				Authn:    tokens,
				Logger:   logger.Named("router"),
				Version:  Version,
				Revision: Revision,
			}, c.DevMode)

			server := &Server{
				L:      logger,
				Router: e,
				WS:     streamer,
			}

			go func() {
				if err := e.Start(fmt.Sprintf(":%d", c.Port)); err != nil {
					logger.Info("shutting down the server")
				}
			}()

			logger.Info("Stadtwache started")
			waitSIGINT()
			logger.Info("Stadtwache shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.ShutdownTimeout)*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Warn("abnormal shutdown", zap.Error(err))
			}
			logger.Info("Stadtwache shutdown")
		},
	}
	return &cmd
}

type Server struct {
	L      *zap.Logger
	Router *echo.Echo
	WS     *ws.Streamer
}

func (s *Server) Shutdown(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		err := s.Router.Shutdown(ctx)
		s.L.Info("Router shutdown")
		return err
	})
	eg.Go(func() error {
		err := s.WS.Close()
		s.L.Info("WebSocket shutdown")
		return err
	})
	return eg.Wait()
}

func waitSIGINT() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
}

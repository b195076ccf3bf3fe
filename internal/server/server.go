// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/api"
	"github.com/vaudience/fleethub/internal/auth"
	"github.com/vaudience/fleethub/internal/config"
	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/fleetservice"
	"github.com/vaudience/fleethub/internal/monitoring"
	"github.com/vaudience/fleethub/internal/repository/postgres"
	"github.com/vaudience/fleethub/internal/repository/redis"
)

// Server represents our HTTP server
type Server struct {
	config       *config.Config
	srv          *http.Server
	fleetservice *fleetservice.FleetService
	monitoring   *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	svc, err := initializeFleetService(s.config)
	if err != nil {
		return err
	}
	s.fleetservice = svc
	s.monitoring = monitoring.NewService(monitoring.Config{})

	// Set up cleanup event handlers
	s.setupCleanupHandlers()

	router := api.NewRouter(s.fleetservice, s.config.Auth.Modes)

	// Recovery, CORS and request logging around the whole surface
	handler := handlers.RecoveryHandler()(
		handlers.CORS(
			handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		)(handlers.CombinedLoggingHandler(os.Stdout, router)),
	)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupCleanupHandlers() {
	s.fleetservice.Cleanup.OnCleanup("user.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] User %s and all owned data deleted", id)
		s.monitoring.RecordEvent("user_deletion", map[string]string{
			"user_id": id,
		})
	})

	s.fleetservice.Cleanup.OnCleanup("device.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Device %s and all readings deleted", id)
		s.monitoring.RecordEvent("device_deletion", map[string]string{
			"device_id": id,
		})
	})

	s.fleetservice.Cleanup.OnCleanup("systems.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] All systems of user %s deleted", id)
		s.monitoring.RecordEvent("systems_deletion", map[string]string{
			"user_id": id,
		})
	})
}

// initializeFleetService creates and configures the fleet service
func initializeFleetService(cfg *config.Config) (*fleetservice.FleetService, error) {
	appDB, err := database.NewPostgresDB(cfg.Database.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	users := postgres.NewUserRepository(appDB)
	systems := postgres.NewSystemRepository(appDB)
	devices := postgres.NewDeviceRepository(appDB)
	deviceInputs := postgres.NewDeviceInputRepository(appDB)
	notifications := postgres.NewNotificationRepository(appDB)
	readings := postgres.NewReadingRepository(appDB)

	resetTokens := redis.NewResetTokenRepository(cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := resetTokens.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	credentials := auth.NewCredentialStore(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	svc := fleetservice.New(
		users, systems, devices, deviceInputs, notifications, readings,
		resetTokens, credentials, tokens, cfg.Auth.ResetTokenTTL,
	)
	if err := svc.Validate(); err != nil {
		return nil, err
	}
	return svc, nil
}

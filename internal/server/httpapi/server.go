// Package httpapi exposes the auth service over HTTP. Handlers are a thin
// translation layer: they bind JSON, call the service, and map sentinel
// outcomes to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	auth    *auth.Service
	logger  logging.Logger
	engine  *gin.Engine
}

func NewServer(cfg *config.Config, svc *auth.Service, logger logging.Logger) *Server {

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		address: cfg.EndpointAddrHTTP,
		auth:    svc,
		logger:  logger.With("module", "http_server"),
	}

	engine := gin.New()
	// requestLogger is outermost so its completion log sees the status
	// written by recovery on panics.
	engine.Use(requestLogger(s.logger))
	engine.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		}))
	}

	engine.GET("/", s.handleAlive)

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/signin", s.handleSignIn)
		authGroup.POST("/signup", s.handleSignUp)
	}

	jwtGroup := engine.Group("/jwt")
	jwtGroup.Use(bearerTokenGate([]byte(cfg.SecretKey)))
	{
		jwtGroup.GET("/check", s.handleJWTCheck)
	}

	s.engine = engine
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

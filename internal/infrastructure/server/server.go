package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/kelimeci/kelimeci/internal/adapter/httpapi"
	"github.com/kelimeci/kelimeci/internal/infrastructure/config"
)

// Server represents the application server
type Server struct {
	config *config.Config
	echo   *echo.Echo
	logger *logrus.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logrus.Logger, handler *httpapi.Handler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))

	group := e.Group("/api/v1", httpapi.UserIDMiddleware())
	handler.Register(group)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return &Server{
		config: cfg,
		echo:   e,
		logger: logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Server.HTTPPort)
	s.logger.Infof("HTTP server starting on %s", addr)

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Errorf("Failed to shutdown HTTP server: %v", err)
		return err
	}

	s.logger.Info("Server shutdown complete")
	return nil
}

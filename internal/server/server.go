// Package server exposes the estimate pipeline over HTTP: multipart upload
// of an estimate file into the full processing pipeline, rule-based
// validation of the same upload, and price redistribution over a processed
// document. Every request runs its own pipeline invocation, so concurrent
// uploads need no coordination.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fjacquet/xact-rollup/internal/engine"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/reviewer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

// ServiceName identifies the service in the health endpoint.
const ServiceName = "xact-rollup"

// Config carries the server settings resolved from the application
// configuration.
type Config struct {
	Port          int
	MaxFileSizeMB int
	Version       string
}

// Server wires the pipeline engine and the reviewer into a Fiber app.
type Server struct {
	app      *fiber.App
	cfg      Config
	engine   *engine.Engine
	reviewer *reviewer.Reviewer
	logger   logging.Logger
}

// New builds the HTTP server around the given engine and reviewer.
func New(cfg Config, eng *engine.Engine, rev *reviewer.Reviewer, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.GetLogger()
	}

	s := &Server{
		cfg:      cfg,
		engine:   eng,
		reviewer: rev,
		logger:   logger.WithField("component", "Server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               ServiceName,
		BodyLimit:             cfg.MaxFileSizeMB * 1024 * 1024,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(s.requestID)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/parse-estimate", s.handleParseEstimate)
	api.Post("/validate-estimate", s.handleValidateEstimate)
	api.Post("/reprice", s.handleReprice)
}

// requestID tags every request with a UUID, echoed in the response header
// and attached to the request-scoped logger.
func (s *Server) requestID(c *fiber.Ctx) error {
	id := uuid.New().String()
	c.Locals(logging.FieldRequestID, id)
	c.Set("X-Request-ID", id)

	s.logger.Debug("Request received",
		logging.Field{Key: logging.FieldRequestID, Value: id},
		logging.Field{Key: "method", Value: c.Method()},
		logging.Field{Key: "path", Value: c.Path()})
	return c.Next()
}

// handleError renders every error as the JSON error shape. Fiber errors keep
// their status code (the body limit surfaces here as 413); anything else is
// an internal error.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	s.logger.WithError(err).Error("Request failed",
		logging.Field{Key: logging.FieldRequestID, Value: c.Locals(logging.FieldRequestID)},
		logging.Field{Key: "path", Value: c.Path()},
		logging.Field{Key: logging.FieldStatus, Value: code})

	return c.Status(code).JSON(fiber.Map{"success": false, "error": err.Error()})
}

// Listen starts serving on the configured port and blocks until the server
// stops.
func (s *Server) Listen() error {
	s.logger.Info("HTTP service listening",
		logging.Field{Key: "port", Value: s.cfg.Port})
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Port))
}

// Shutdown stops the server gracefully, waiting for in-flight requests up to
// the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App returns the underlying Fiber app, used by tests to issue requests
// without a network listener.
func (s *Server) App() *fiber.App {
	return s.app
}

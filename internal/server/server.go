// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the conversion proxy over HTTP: the upload page at
// GET /, the proxy endpoint at POST /api/convert, and GET /healthz.
package server

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/opticalsecurity/markify/internal/convert"
	"github.com/opticalsecurity/markify/pkg/types"
)

// defaultBodyLimit applies when ServerConfig.MaxUploadBytes is zero.
const defaultBodyLimit = 100 * 1024 * 1024

// Options configures a Server beyond ServerConfig.
type Options struct {
	// Logger receives error diagnostics. Nil selects slog.Default().
	Logger *slog.Logger

	// AccessLog receives one line per request. Nil disables access logging.
	AccessLog io.Writer

	// JSONAccessLog writes access lines as JSON objects.
	JSONAccessLog bool
}

// Server is the HTTP front end.
type Server struct {
	app  *fiber.App
	svc  *convert.Service
	log  *slog.Logger
	page []byte
}

// New builds the fiber app and registers all routes.
func New(cfg types.ServerConfig, svc *convert.Service, opts Options) (*Server, error) {
	page, err := renderIndex()
	if err != nil {
		return nil, err
	}

	s := &Server{
		svc:  svc,
		log:  opts.Logger,
		page: page,
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	limit := cfg.MaxUploadBytes
	if limit <= 0 {
		limit = defaultBodyLimit
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "markify",
		BodyLimit:             limit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	if opts.AccessLog != nil {
		s.app.Use(accessLogger(opts.AccessLog, opts.JSONAccessLog))
	}
	if cfg.AllowOrigins != "" {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET,POST,OPTIONS",
		}))
	}

	s.app.Get("/", s.handleIndex)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	s.app.Post("/api/convert", s.handleConvert)

	return s, nil
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info("server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func accessLogger(w io.Writer, jsonLines bool) fiber.Handler {
	if jsonLines {
		return logger.New(logger.Config{
			Format:     `{"time":"${time}","ip":"${ip}","method":"${method}","path":"${path}","status":${status},"latency":"${latency}"}` + "\n",
			TimeFormat: time.RFC3339,
			TimeZone:   "Local",
			Output:     w,
		})
	}
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Output:     w,
	})
}

// handleError is the fiber error handler. Routing errors keep their status;
// anything else, panics included, becomes the generic 500 body.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(types.ErrorResponse{Error: fe.Message})
	}
	s.log.Error("unhandled request error", "method", c.Method(), "path", c.Path(), "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: convert.MsgInternal})
}

// Package api is the HTTP serving layer: a Fiber application exposing the
// latest collected job-market trends, the health scores, and the published
// macro indicators as a JSON API, plus a Prometheus scrape endpoint.
package api

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fedwatch/fedwatch/internal/config"
	"github.com/fedwatch/fedwatch/internal/macro"
	"github.com/fedwatch/fedwatch/internal/storage"
)

// Version is reported by the root banner endpoint.
const Version = "0.1.0"

// Server wraps the Fiber app and configuration.
type Server struct {
	App *fiber.App
	Cfg *config.Config
}

// New creates a new server with middleware configured.
func New(cfg *config.Config) *Server {
	app := fiber.New(fiber.Config{
		AppName: "FedWatch API",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			return jsonError(c, code, message)
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(cfg.Server.CORSOrigins, ","),
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	return &Server{
		App: app,
		Cfg: cfg,
	}
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(store *storage.Storage, provider *macro.Provider) {
	trendsHandler := NewTrendsHandler(store)
	macroHandler := NewMacroHandler(provider)

	s.App.Get("/", s.root)

	v1 := s.App.Group("/api/v1")
	v1.Get("/trends", trendsHandler.Trends)
	v1.Get("/signals", trendsHandler.Signals)
	v1.Get("/history", trendsHandler.History)
	v1.Get("/employment", macroHandler.Employment)
	v1.Get("/inflation", macroHandler.Inflation)
	v1.Get("/health", macroHandler.Health)
	v1.Get("/metrics", macroHandler.Metrics)

	// Prometheus scrape endpoint
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// root returns the service banner with an endpoint index.
func (s *Server) root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        "FedWatch API",
		"version":     Version,
		"description": "Real-Time Economic Intelligence",
		"endpoints": fiber.Map{
			"trends":     "/api/v1/trends",
			"signals":    "/api/v1/signals",
			"history":    "/api/v1/history",
			"employment": "/api/v1/employment",
			"inflation":  "/api/v1/inflation",
			"health":     "/api/v1/health",
			"metrics":    "/api/v1/metrics",
		},
	})
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	return s.App.Listen(s.Cfg.Server.ListenAddr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}

package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/delivery/http/handler"
	"github.com/parking-microservice/internal/delivery/http/middleware"
)

// HealthChecker reports readiness of one backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server is the Fiber HTTP server.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	searchHandler  *handler.SearchHandler
	lotHandler     *handler.LotHandler
	bookingHandler *handler.BookingHandler
	statsHandler   *handler.StatsHandler

	// Health checks
	db    HealthChecker
	cache HealthChecker
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	searchHandler *handler.SearchHandler,
	lotHandler *handler.LotHandler,
	bookingHandler *handler.BookingHandler,
	statsHandler *handler.StatsHandler,
	db HealthChecker,
	cache HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Parking Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		searchHandler:  searchHandler,
		lotHandler:     lotHandler,
		bookingHandler: bookingHandler,
		statsHandler:   statsHandler,
		db:             db,
		cache:          cache,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.health)

	// Search routes
	api.Post("/search/resolve", s.searchHandler.Resolve)
	api.Get("/search/nearby", s.searchHandler.Nearby)

	// Search session routes
	api.Post("/search/sessions", s.searchHandler.CreateSession)
	api.Get("/search/sessions/:id", s.searchHandler.GetSession)
	api.Post("/search/sessions/:id/events", s.searchHandler.ApplyEvent)
	api.Delete("/search/sessions/:id", s.searchHandler.CloseSession)

	// Lot directory routes
	api.Get("/lots", s.lotHandler.List)
	api.Get("/lots/:id", s.lotHandler.GetByID)
	api.Get("/lots/:id/status", s.lotHandler.Status)

	// Booking routes
	api.Post("/bookings/quote", s.bookingHandler.Quote)
	api.Post("/bookings", s.bookingHandler.Confirm)
	api.Get("/bookings/:id", s.bookingHandler.GetByID)
	api.Post("/bookings/:id/cancel", s.bookingHandler.Cancel)

	// Manager routes, JWT protected
	manager := api.Group("/manager", middleware.Auth(s.config.Auth))
	manager.Post("/lots", s.lotHandler.Register)
	manager.Get("/lots", s.lotHandler.ListByManager)
	manager.Get("/lots/:id/bookings", s.bookingHandler.ListByLot)
	manager.Get("/bookings", s.bookingHandler.ListByManager)
	manager.Get("/stats", s.statsHandler.Dashboard)
}

func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	checks := fiber.Map{}

	if s.db != nil {
		if err := s.db.Health(ctx); err != nil {
			status = "degraded"
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}
	}
	if s.cache != nil {
		if err := s.cache.Health(ctx); err != nil {
			status = "degraded"
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts the HTTP server down.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}

// Package server contains the HTTP and WebSocket handlers for the API.
package server

import (
	"context"
	"fmt"
	"time"

	_ "foms/docs" // swagger docs
	"foms/internal/cache"
	"foms/internal/config"
	"foms/internal/database"
	"foms/internal/featureflags"
	"foms/internal/middleware"
	"foms/internal/notifications"
	"foms/internal/repository"
	"foms/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	requestRepo  repository.RequestRepository
	statusRepo   repository.StatusRepository
	authGateRepo repository.AuthGateRepository

	requestService  *service.RequestService
	authGateService *service.AuthGateService

	notifier     *notifications.Notifier
	hub          *notifications.Hub
	featureFlags *featureflags.Manager
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	requestRepo := repository.NewRequestRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	authGateRepo := repository.NewAuthGateRepository(db)

	prom := fiberprometheus.New("foms-api")

	shutdownCtx, shutdownFn := context.WithCancel(context.Background())

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		shutdownCtx:    shutdownCtx,
		shutdownFn:     shutdownFn,
		requestRepo:    requestRepo,
		statusRepo:     statusRepo,
		authGateRepo:   authGateRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub()
		if err := server.hub.StartWiring(shutdownCtx, server.notifier); err != nil {
			return nil, fmt.Errorf("event wiring failed: %w", err)
		}
	}

	server.requestService = service.NewRequestService(requestRepo, statusRepo, server.notifier)
	server.authGateService = service.NewAuthGateService(authGateRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.Tracing())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "FOMS Backend Metrics Dashboard",
	}))

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Public request routes: anyone can file a request or browse listings;
	// the UI's auth gate controls route visibility, not the API.
	requests := api.Group("/requests")
	requests.Get("/", s.ListRequests)
	requests.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_request"), s.CreateRequest)

	// Status catalog
	statuses := api.Group("/statuses")
	statuses.Get("/", s.ListStatuses)
	statuses.Post("/seed", s.SeedStatuses)

	// Auth-gate settings drive the signed-out redirect; reads stay public.
	authGate := api.Group("/auth-gate")
	authGate.Get("/state", s.GetAuthGateState)
	authGate.Get("/settings", s.ListAuthGateSettings)
	authGate.Put("/settings", s.SetAuthGateRequirement)

	// Protected routes
	protected := api.Group("", s.AuthRequired())
	protected.Patch("/requests/:id/status", s.UpdateRequestStatus)
	protected.Post("/requests/seed-mock", s.SeedMockRequests)

	// Live request events
	api.Get("/ws/requests", middleware.WebSocketAuthRequired(s.config), s.RequestEvents())

	// Generic /:id route registered after the specific ones.
	requests.Get("/:id", s.GetRequest)
}

// AuthRequired returns the bearer-token middleware bound to this server's config.
func (s *Server) AuthRequired() fiber.Handler {
	return middleware.AuthRequired(s.config)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownFn()
	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

package bootstrap

import (
	"strings"
	"time"

	"mailmind_server/adapter/in/http"
	"mailmind_server/config"
	"mailmind_server/infra/middleware"
	"mailmind_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func NewAPI(cfg *config.Config) (*fiber.App, error) {
	logLevel := logger.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = logger.LevelDebug
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "mailmind-api",
	})

	deps := NewDependencies(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		ReadBufferSize:        16384,
		WriteBufferSize:       16384,

		// go-json is measurably faster than encoding/json for the
		// email-heavy payloads these routes move around
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit: 10 * 1024 * 1024,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,X-Request-ID",
		ExposeHeaders: "X-Request-ID,X-RateLimit-Limit,X-RateLimit-Remaining,X-RateLimit-Reset",
		MaxAge:        86400,
	}))

	// Health check (not rate limited)
	http.NewHealthHandler(deps.Store).Register(app)

	api := app.Group("/api/v1")

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)
	api.Use(rateLimiter.Handler())

	http.NewAIHandler(deps.AssistService).Register(api)
	http.NewRAGHandler(deps.Store, deps.Retriever).Register(api)
	http.NewCalendarHandler(deps.CalendarService).Register(api)
	http.NewSearchHandler(deps.SearchService).Register(api)

	logger.Info("API initialized (rag dimension=%d, max records=%d)", cfg.RAGDimension, cfg.RAGMaxRecords)
	return app, nil
}

package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/pmcdona037/mcd-moves/internal/config"
	"github.com/pmcdona037/mcd-moves/internal/stream"
	"github.com/pmcdona037/mcd-moves/internal/trip"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	src := trip.NewHTTPSource(s.Cfg.DataRoot, time.Duration(s.Cfg.FetchTimeout)*time.Second)
	trip.RegisterRoutes(s.App.Group("/trips"), trip.NewService(src, s.Stream))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

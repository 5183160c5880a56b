package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gigboard/internal/config"
	"gigboard/internal/database/migration"
	"gigboard/internal/database/seeder"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/delivery/http/routes"
	"gigboard/internal/infrastructure/cache"
	"gigboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	setupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(setupCtx, container.DB.SQLDB()); err != nil {
		_ = container.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	seedRunner := seeder.Runner{Seeders: seeder.Defaults()}
	if err := seedRunner.Run(setupCtx, container.DB); err != nil {
		_ = container.Close()
		return nil, nil, fmt.Errorf("run seeders: %w", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, logger)

	registry := routes.NewRegistry(cfg, container.DB, redisCache, hub, logger)
	registry.Register(f)

	cleanup := func() error {
		_ = redisCache.Close()
		return container.Close()
	}

	return &App{Fiber: f}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

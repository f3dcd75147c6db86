// Package server assembles the Fiber application.
package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"usersvc/internal/config"
	"usersvc/internal/handlers"
	"usersvc/internal/middleware"
	"usersvc/internal/openapi"
	"usersvc/internal/repositories"
	"usersvc/internal/services"
)

const (
	// APIPrefix is where every route is mounted.
	APIPrefix = "/api/v1"
	// Version is reported in the API document.
	Version = "1.0.0"
)

// New wires the user handlers onto a configured Fiber app. publisher may be nil.
func New(cfg config.Config, log *zap.Logger, repo repositories.UserRepository, publisher services.EventPublisher) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               "usersvc",
		ErrorHandler:          middleware.ErrorHandler(log),
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Env == "development"}))
	app.Use(helmet.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins()}))

	userService := services.NewUserService(repo, publisher, log)

	apiV1 := app.Group(APIPrefix)
	handlers.NewHealthHandler().RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)
	if err := openapi.New(APIPrefix, Version).RegisterRoutes(apiV1); err != nil {
		return nil, fmt.Errorf("failed to register api docs: %w", err)
	}

	app.Use(middleware.NotFound)
	return app, nil
}

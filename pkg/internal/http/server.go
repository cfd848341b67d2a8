package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/sofialeaf/quillfeed/pkg/internal/auth"
	localCache "github.com/sofialeaf/quillfeed/pkg/internal/cache"
	"github.com/sofialeaf/quillfeed/pkg/internal/http/admin"
	"github.com/sofialeaf/quillfeed/pkg/internal/http/api"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Quillfeed",
		AppName:               "Quillfeed",
		ErrorHandler:          errorHandler,
	})

	app.Use(auth.ContextMiddleware)

	feedTTL := viper.GetInt("cache.feed_ttl")
	if feedTTL <= 0 {
		feedTTL = 20
	}
	api.FeedCache = localCache.NewFeedCache(localCache.S, time.Duration(feedTTL)*time.Second)

	api.MapControllers(app, "")
	admin.MapControllers(app, "/admin")

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "page not found")
	})

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Fiber() *fiber.App {
	return v.app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
	}

	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"message": err.Error(),
	})
}

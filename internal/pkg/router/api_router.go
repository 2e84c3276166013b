package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/foxcms/app/controllers"
	"github.com/ManuelReschke/foxcms/internal/pkg/constants"
	"github.com/ManuelReschke/foxcms/internal/pkg/env"
	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

type ApiRouter struct {
	table *routes.Table
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.ApiRoute, limiter.New(limiter.Config{
		Max:        int(env.GetEnvInt64("API_RATE_LIMIT", 60)),
		Expiration: time.Minute,
	}))

	rc := controllers.NewRoutesController(h.table)
	api.Get("/routes", rc.HandleList)
	api.Get("/routes/match", rc.HandleMatch)
	api.Get("/routes/:name/url", rc.HandleAssemble)
}

func NewApiRouter(table *routes.Table) *ApiRouter {
	return &ApiRouter{table: table}
}

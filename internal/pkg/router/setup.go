package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/foxcms/internal/pkg/constants"
	"github.com/ManuelReschke/foxcms/internal/pkg/env"
	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

// DefaultBodyLimit caps a request at 100 MiB.
const DefaultBodyLimit = 100 << 20

type Router interface {
	InstallRouter(app *fiber.App)
}

// NewApplication builds the fiber app serving table.
func NewApplication(table *routes.Table) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: int(env.GetEnvInt64("UPLOAD_BODY_LIMIT", DefaultBodyLimit)),
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())
	if env.IsDev() {
		log.SetLevel(log.LevelDebug)
	}

	// fiber metrics
	app.Get(constants.MetricsRoute, monitor.New())

	InstallRouter(app, table)
	return app
}

func InstallRouter(app *fiber.App, table *routes.Table) {
	// The API router goes first: the HTTP router ends in a catch-all.
	setup(app, NewApiRouter(table), NewHttpRouter(table))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}

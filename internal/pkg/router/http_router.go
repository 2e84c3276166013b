package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/foxcms/app/controllers"
	"github.com/ManuelReschke/foxcms/internal/pkg/middleware"
	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

// HttpRouter sends every remaining request through the route table.
type HttpRouter struct {
	table *routes.Table
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.All("/*", middleware.RouteMatch(h.table), controllers.HandleDispatch)
}

func NewHttpRouter(table *routes.Table) *HttpRouter {
	return &HttpRouter{table: table}
}

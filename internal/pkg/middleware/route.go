package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

// RouteMatchKey is the Locals key holding the routes.Match of a request.
const RouteMatchKey = "route_match"

// RouteMatch resolves the request path against the route table and stores
// the match for the controllers. Unmatched paths end here with 404.
func RouteMatch(table *routes.Table) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, ok := table.Match(c.Path())
		if !ok {
			log.Debugf("[Routes] No route for %s", c.Path())
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "not_found",
				"message": "No route matches " + c.Path(),
			})
		}
		c.Locals(RouteMatchKey, m)
		return c.Next()
	}
}

// GetRouteMatch returns the match stored by RouteMatch.
func GetRouteMatch(c *fiber.Ctx) (routes.Match, bool) {
	m, ok := c.Locals(RouteMatchKey).(routes.Match)
	return m, ok
}

package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

// RoutesController exposes the loaded route table read-only.
type RoutesController struct {
	table *routes.Table
}

func NewRoutesController(table *routes.Table) *RoutesController {
	return &RoutesController{table: table}
}

// HandleList returns the descriptors in match order.
func (rc *RoutesController) HandleList(c *fiber.Ctx) error {
	list := make([]routes.Descriptor, 0)
	for _, r := range rc.table.Routes() {
		list = append(list, r.Descriptor)
	}
	return c.JSON(fiber.Map{"routes": list})
}

// HandleMatch resolves ?path= without dispatching it.
func (rc *RoutesController) HandleMatch(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path missing"})
	}
	m, ok := rc.table.Match(path)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no route matches", "path": path})
	}
	return c.JSON(fiber.Map{
		"route":    m.Route.Name,
		"dispatch": m.Dispatch(),
		"params":   m.Params,
	})
}

// HandleAssemble builds the URL of a named route from the query parameters.
func (rc *RoutesController) HandleAssemble(c *fiber.Ctx) error {
	params := routes.Params(c.Queries())
	url, err := rc.table.Assemble(c.Params("name"), params)
	switch {
	case errors.Is(err, routes.ErrRouteNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"url": url})
}

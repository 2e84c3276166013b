package controllers

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/foxcms/internal/pkg/middleware"
	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

// AnyModule registers a handler for a controller/action in every module.
const AnyModule = "*"

var (
	handlersMu sync.RWMutex
	handlers   = map[routes.Dispatch]fiber.Handler{
		{Module: AnyModule, Controller: "upload", Action: "receive"}: HandleUpload,
	}
)

// RegisterHandler binds a dispatch target to a handler.
func RegisterHandler(d routes.Dispatch, h fiber.Handler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers[d] = h
}

func lookupHandler(d routes.Dispatch) (fiber.Handler, bool) {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	if h, ok := handlers[d]; ok {
		return h, true
	}
	h, ok := handlers[routes.Dispatch{Module: AnyModule, Controller: d.Controller, Action: d.Action}]
	return h, ok
}

// HandleDispatch runs the handler bound to the matched route's dispatch
// target. Targets without a handler answer with the resolved route.
func HandleDispatch(c *fiber.Ctx) error {
	m, ok := middleware.GetRouteMatch(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}

	if h, ok := lookupHandler(m.Dispatch()); ok {
		return h(c)
	}

	return c.JSON(fiber.Map{
		"route":    m.Route.Name,
		"section":  m.Route.Section,
		"dispatch": m.Dispatch(),
		"params":   m.Params,
	})
}

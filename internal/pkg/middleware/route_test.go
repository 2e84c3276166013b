package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

func TestRouteMatch(t *testing.T) {
	table, err := routes.Load([]routes.Descriptor{{
		Name:    "api",
		Type:    routes.TypePrefix,
		Options: map[string]any{"prefix": "/api", "defaults": map[string]string{"module": "api"}},
	}})
	require.NoError(t, err)

	app := fiber.New()
	app.All("/*", RouteMatch(table), func(c *fiber.Ctx) error {
		m, ok := GetRouteMatch(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(m.Route.Name + ":" + m.Params[routes.ParamPath])
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/images", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "api:v1/images", string(body[:n]))

	resp, err = app.Test(httptest.NewRequest("GET", "/blog", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "not_found", payload["error"])
}

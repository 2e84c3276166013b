package router

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/foxcms/internal/pkg/env"
	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("UPLOAD_ROOT", t.TempDir())
	env.Env = nil

	table, err := routes.Default()
	require.NoError(t, err)
	return NewApplication(table)
}

func getJSON(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestApiRoutes_ListInMatchOrder(t *testing.T) {
	status, payload := getJSON(t, newApp(t), "/api/v1/routes")
	require.Equal(t, fiber.StatusOK, status)

	list := payload["routes"].([]any)
	require.NotEmpty(t, list)
	assert.Equal(t, "api", list[0].(map[string]any)["name"])
	assert.Equal(t, "default", list[len(list)-1].(map[string]any)["name"])
}

func TestApiRoutes_Match(t *testing.T) {
	app := newApp(t)

	status, payload := getJSON(t, app, "/api/v1/routes/match?path=/admin/users/list")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "admin", payload["route"])

	status, _ = getJSON(t, app, "/api/v1/routes/match")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestApiRoutes_Assemble(t *testing.T) {
	app := newApp(t)

	status, payload := getJSON(t, app, "/api/v1/routes/static/url?slug=imprint")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "/page/imprint", payload["url"])

	status, _ = getJSON(t, app, "/api/v1/routes/nope/url")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = getJSON(t, app, "/api/v1/routes/static/url?slug=Not%20Valid")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCatchAll_DispatchesThroughTable(t *testing.T) {
	status, payload := getJSON(t, newApp(t), "/api/v2/images")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "api", payload["route"])
	assert.Equal(t, "api", payload["section"])
}

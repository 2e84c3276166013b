package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/foxcms/internal/pkg/env"
	"github.com/ManuelReschke/foxcms/internal/pkg/routes"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	env.Env = nil
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeRoutes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoutesCmd_ListsInMatchOrder(t *testing.T) {
	out, err := run(t, "routes", "--env-file", "missing.env")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(routes.DefaultDescriptors())+1)
	assert.Contains(t, lines[0], "PRIORITY")
	assert.Contains(t, lines[1], "api/index/index")
	assert.Contains(t, lines[len(lines)-1], "default")
	assert.Contains(t, out, "admin/:controller/:action")
}

func TestRoutesMatchCmd(t *testing.T) {
	out, err := run(t, "routes", "match", "/page/about-us", "--env-file", "missing.env")
	require.NoError(t, err)
	assert.Contains(t, out, "route:    static")
	assert.Contains(t, out, "dispatch: cms/page/view")
	assert.Contains(t, out, "slug=about-us")
}

func TestRoutesMatchCmd_FromFile(t *testing.T) {
	path := writeRoutes(t, `
routes:
  - name: docs
    type: standard
    options:
      route: docs/:slug
      defaults: {module: cms, controller: docs, action: view}
`)

	out, err := run(t, "--routes", path, "routes", "match", "/docs/intro", "--env-file", "missing.env")
	require.NoError(t, err)
	assert.Contains(t, out, "route:    docs")

	_, err = run(t, "--routes", path, "routes", "match", "/elsewhere", "--env-file", "missing.env")
	assert.ErrorContains(t, err, "no route matches")
}

func TestRoutesCmd_RoutesFileFromEnv(t *testing.T) {
	path := writeRoutes(t, `
routes:
  - name: only
    type: prefix
    options:
      prefix: /
      defaults: {module: default, controller: index, action: index}
`)
	t.Setenv("ROUTES_FILE", path)

	out, err := run(t, "routes", "--env-file", "missing.env")
	require.NoError(t, err)
	assert.Contains(t, out, "only")
	assert.NotContains(t, out, "sysuser")
}

func TestRoutesCmd_RejectsBadTable(t *testing.T) {
	path := writeRoutes(t, `
routes:
  - name: twice
    type: prefix
    options: {prefix: /a}
  - name: twice
    type: prefix
    options: {prefix: /b}
`)

	_, err := run(t, "--routes", path, "routes", "--env-file", "missing.env")
	assert.ErrorIs(t, err, routes.ErrDuplicateRoute)

	path = writeRoutes(t, `
routes:
  - name: odd
    type: hologram
`)
	_, err = run(t, "--routes", path, "serve", "--env-file", "missing.env")
	assert.ErrorIs(t, err, routes.ErrUnknownStrategy)
}

package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catchAll(name string, priority int) Descriptor {
	return Descriptor{
		Name:     name,
		Priority: priority,
		Type:     TypePrefix,
		Options:  map[string]any{"prefix": "/", "defaults": map[string]string{ParamModule: name}},
	}
}

func TestLoad_RejectsDuplicateNames(t *testing.T) {
	_, err := Load([]Descriptor{catchAll("admin", 1), catchAll("front", 2), catchAll("admin", 3)})

	require.ErrorIs(t, err, ErrDuplicateRoute)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 2, loadErr.Index)
	assert.Equal(t, "admin", loadErr.Name)
}

func TestLoad_InvalidDescriptors(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		want error
	}{
		{
			name: "unknown type",
			desc: Descriptor{Name: "x", Type: "regex"},
			want: ErrUnknownStrategy,
		},
		{
			name: "missing name",
			desc: Descriptor{Type: TypePrefix},
			want: ErrInvalidRoute,
		},
		{
			name: "missing type",
			desc: Descriptor{Name: "x"},
			want: ErrInvalidRoute,
		},
		{
			name: "unknown section",
			desc: Descriptor{Name: "x", Section: "backstage", Type: TypePrefix},
			want: ErrInvalidRoute,
		},
		{
			name: "unknown option",
			desc: Descriptor{Name: "x", Type: TypePrefix, Options: map[string]any{"prefx": "/api"}},
			want: ErrInvalidRoute,
		},
		{
			name: "wildcard not last",
			desc: Descriptor{Name: "x", Type: TypeStandard, Options: map[string]any{"route": "a/*/b"}},
			want: ErrInvalidRoute,
		},
		{
			name: "bad requirement",
			desc: Descriptor{Name: "x", Type: TypeStandard, Options: map[string]any{
				"route":        ":id",
				"requirements": map[string]string{"id": "("},
			}},
			want: ErrInvalidRoute,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]Descriptor{tc.desc})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoad_DefaultsSectionToFront(t *testing.T) {
	table, err := Load([]Descriptor{catchAll("home", 0)})
	require.NoError(t, err)

	r, ok := table.Get("home")
	require.True(t, ok)
	assert.Equal(t, SectionFront, r.Section)
}

func TestMatch_HigherPriorityIsTriedFirst(t *testing.T) {
	table, err := Load([]Descriptor{catchAll("sysuser", 5), catchAll("api", 100)})
	require.NoError(t, err)

	m, ok := table.Match("/anything")
	require.True(t, ok)
	assert.Equal(t, "api", m.Route.Name)

	names := []string{}
	for _, r := range table.Routes() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"api", "sysuser"}, names)
}

func TestMatch_EqualPrioritiesKeepDeclarationOrder(t *testing.T) {
	table, err := Load([]Descriptor{catchAll("first", 7), catchAll("low", 1), catchAll("second", 7)})
	require.NoError(t, err)

	var names []string
	for _, r := range table.Routes() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"first", "second", "low"}, names)

	m, ok := table.Match("/")
	require.True(t, ok)
	assert.Equal(t, "first", m.Route.Name)
	assert.Equal(t, "first", m.Dispatch().Module)
}

func TestMatch_NoRoute(t *testing.T) {
	table, err := Load([]Descriptor{{
		Name: "api", Type: TypePrefix, Options: map[string]any{"prefix": "/api"},
	}})
	require.NoError(t, err)

	_, ok := table.Match("/blog")
	assert.False(t, ok)
}

func TestRoutes_ReturnsCopy(t *testing.T) {
	table, err := Load([]Descriptor{catchAll("a", 1), catchAll("b", 0)})
	require.NoError(t, err)

	routes := table.Routes()
	routes[0] = routes[1]

	assert.Equal(t, "a", table.Routes()[0].Name)
}

func TestAssemble_UnknownRoute(t *testing.T) {
	table, err := Load(nil)
	require.NoError(t, err)

	_, err = table.Assemble("nope", nil)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

package routes

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2/log"
)

// Route is a loaded descriptor with its strategy.
type Route struct {
	Descriptor
	strategy Strategy
}

func (r *Route) Match(path string) (Params, bool) {
	return r.strategy.Match(path)
}

func (r *Route) Assemble(params Params) (string, error) {
	return r.strategy.Assemble(params)
}

// Match is the result of routing a path.
type Match struct {
	Route  *Route
	Params Params
}

func (m Match) Dispatch() Dispatch {
	return m.Params.Dispatch()
}

// Table is an immutable, priority ordered set of routes. It is safe for
// concurrent use once loaded.
type Table struct {
	routes []*Route
	byName map[string]*Route
}

// Load validates descriptors and orders them by priority, highest first.
// Equal priorities keep their declaration order. Every problem is reported
// here so a bad table stops the process before it serves requests.
func Load(descriptors []Descriptor) (*Table, error) {
	t := &Table{
		routes: make([]*Route, 0, len(descriptors)),
		byName: make(map[string]*Route, len(descriptors)),
	}

	for i, d := range descriptors {
		if d.Section == "" {
			d.Section = SectionFront
		}
		if err := d.Validate(); err != nil {
			return nil, &LoadError{Index: i, Name: d.Name, Err: fmt.Errorf("%w: %v", ErrInvalidRoute, err)}
		}
		if _, exists := t.byName[d.Name]; exists {
			return nil, &LoadError{Index: i, Name: d.Name, Err: ErrDuplicateRoute}
		}
		strategy, err := newStrategy(d.Type, d.Options)
		if err != nil {
			return nil, &LoadError{Index: i, Name: d.Name, Err: err}
		}

		r := &Route{Descriptor: d, strategy: strategy}
		t.routes = append(t.routes, r)
		t.byName[d.Name] = r
	}

	sort.SliceStable(t.routes, func(a, b int) bool {
		return t.routes[a].Priority > t.routes[b].Priority
	})

	log.Infof("[Routes] Loaded %d routes", len(t.routes))
	return t, nil
}

// Routes returns the routes in match order.
func (t *Table) Routes() []*Route {
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

func (t *Table) Get(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match tries every route in priority order and returns the first hit.
func (t *Table) Match(path string) (Match, bool) {
	for _, r := range t.routes {
		if params, ok := r.Match(path); ok {
			return Match{Route: r, Params: params}, true
		}
	}
	return Match{}, false
}

// Assemble builds the URL of the named route.
func (t *Table) Assemble(name string, params Params) (string, error) {
	r, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return r.Assemble(params)
}

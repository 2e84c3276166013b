package routes

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Sections group routes by application zone.
const (
	SectionFront = "front"
	SectionAdmin = "admin"
	SectionAPI   = "api"
)

// Dispatch parameter keys every route is expected to resolve.
const (
	ParamModule     = "module"
	ParamController = "controller"
	ParamAction     = "action"
)

var (
	ErrDuplicateRoute  = errors.New("duplicate route name")
	ErrUnknownStrategy = errors.New("unknown route type")
	ErrInvalidRoute    = errors.New("invalid route")
	ErrMissingParam    = errors.New("missing route parameter")
	ErrRouteNotFound   = errors.New("route not found")
)

// Descriptor is the declarative form of a route. Options are interpreted
// by the strategy named in Type; "defaults" holds the dispatch target.
type Descriptor struct {
	Name     string         `yaml:"name" json:"name" validate:"required"`
	Section  string         `yaml:"section" json:"section" validate:"omitempty,oneof=front admin api"`
	Priority int            `yaml:"priority" json:"priority"`
	Type     string         `yaml:"type" json:"type" validate:"required"`
	Options  map[string]any `yaml:"options" json:"options,omitempty"`
}

func (d Descriptor) Validate() error {
	v := validator.New()
	return v.Struct(d)
}

// Dispatch is the module/controller/action triple a route resolves to.
type Dispatch struct {
	Module     string `json:"module"`
	Controller string `json:"controller"`
	Action     string `json:"action"`
}

func (d Dispatch) String() string {
	return d.Module + "/" + d.Controller + "/" + d.Action
}

// Params are the variables produced by a match, defaults included.
type Params map[string]string

func (p Params) Dispatch() Dispatch {
	return Dispatch{
		Module:     p[ParamModule],
		Controller: p[ParamController],
		Action:     p[ParamAction],
	}
}

// merge returns a copy of p overlaid with values.
func (p Params) merge(values Params) Params {
	out := make(Params, len(p)+len(values))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range values {
		out[k] = v
	}
	return out
}

// LoadError reports the descriptor that made a table unusable.
type LoadError struct {
	Index int
	Name  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("route #%d %q: %v", e.Index, e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

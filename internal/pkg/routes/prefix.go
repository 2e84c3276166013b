package routes

import (
	"net/url"
	"strings"
)

// TypePrefix matches every path below a fixed prefix and exposes the rest
// as the "path" parameter.
const TypePrefix = "prefix"

// ParamPath holds the remainder of a prefix match.
const ParamPath = "path"

type prefixOptions struct {
	Prefix   string            `mapstructure:"prefix"`
	Defaults map[string]string `mapstructure:"defaults"`
}

type prefixRoute struct {
	prefix   string
	defaults Params
}

func init() {
	RegisterStrategy(TypePrefix, func(options map[string]any) (Strategy, error) {
		var opts prefixOptions
		if err := decodeOptions(options, &opts); err != nil {
			return nil, err
		}
		return &prefixRoute{
			prefix:   "/" + strings.Trim(opts.Prefix, "/"),
			defaults: Params(opts.Defaults).merge(nil),
		}, nil
	})
}

func (r *prefixRoute) Match(path string) (Params, bool) {
	clean := "/" + strings.Trim(path, "/")
	var rest string
	switch {
	case r.prefix == "/":
		rest = clean
	case clean == r.prefix:
		rest = ""
	case strings.HasPrefix(clean, r.prefix+"/"):
		rest = clean[len(r.prefix):]
	default:
		return nil, false
	}
	return r.defaults.merge(Params{ParamPath: strings.Trim(rest, "/")}), true
}

func (r *prefixRoute) Assemble(params Params) (string, error) {
	rest := strings.Trim(params[ParamPath], "/")
	if rest == "" {
		return r.prefix, nil
	}
	parts := strings.Split(rest, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.TrimSuffix(r.prefix, "/") + "/" + strings.Join(parts, "/"), nil
}

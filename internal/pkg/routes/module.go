package routes

import (
	"net/url"
	"strings"
)

// TypeModule matches [/prefix]/module/controller/action/key/value/...
// Missing parts come from the defaults. With a modules list the first
// segment is only taken as module when it is listed.
const TypeModule = "module"

type moduleOptions struct {
	Prefix   string            `mapstructure:"prefix"`
	Modules  []string          `mapstructure:"modules"`
	Defaults map[string]string `mapstructure:"defaults"`
}

type moduleRoute struct {
	prefix   string
	modules  map[string]bool
	defaults Params
}

func init() {
	RegisterStrategy(TypeModule, func(options map[string]any) (Strategy, error) {
		var opts moduleOptions
		if err := decodeOptions(options, &opts); err != nil {
			return nil, err
		}
		r := &moduleRoute{
			prefix:   strings.Trim(opts.Prefix, "/"),
			defaults: Params(opts.Defaults).merge(nil),
		}
		if len(opts.Modules) > 0 {
			r.modules = make(map[string]bool, len(opts.Modules))
			for _, m := range opts.Modules {
				r.modules[m] = true
			}
		}
		return r, nil
	})
}

func (r *moduleRoute) Match(path string) (Params, bool) {
	parts := splitPath(path, "/")
	if r.prefix != "" {
		prefix := splitPath(r.prefix, "/")
		if len(parts) < len(prefix) {
			return nil, false
		}
		for i, p := range prefix {
			if parts[i] != p {
				return nil, false
			}
		}
		parts = parts[len(prefix):]
	}

	values := make(Params)
	if len(parts) > 0 && (r.modules == nil || r.modules[parts[0]]) {
		values[ParamModule] = parts[0]
		parts = parts[1:]
	}
	for _, key := range []string{ParamController, ParamAction} {
		if len(parts) == 0 {
			break
		}
		v, err := url.PathUnescape(parts[0])
		if err != nil {
			return nil, false
		}
		values[key] = v
		parts = parts[1:]
	}
	if !pairs(parts, values) {
		return nil, false
	}
	return r.defaults.merge(values), true
}

func (r *moduleRoute) Assemble(params Params) (string, error) {
	merged := r.defaults.merge(params)
	var out []string
	if r.prefix != "" {
		out = append(out, r.prefix)
	}
	out = append(out,
		url.PathEscape(merged[ParamModule]),
		url.PathEscape(merged[ParamController]),
		url.PathEscape(merged[ParamAction]),
	)

	extra := make(Params)
	for k, v := range params {
		if _, isDefault := r.defaults[k]; !isDefault {
			extra[k] = v
		}
	}
	out = appendPairs(out, extra, map[string]bool{ParamModule: true, ParamController: true, ParamAction: true})
	return "/" + strings.Join(out, "/"), nil
}

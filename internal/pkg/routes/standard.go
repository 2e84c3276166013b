package routes

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// TypeStandard matches delimiter separated segments. ":name" captures a
// variable, "*" captures the rest as key/value pairs.
const TypeStandard = "standard"

type standardOptions struct {
	Route        string            `mapstructure:"route"`
	Delimiter    string            `mapstructure:"delimiter"`
	Defaults     map[string]string `mapstructure:"defaults"`
	Requirements map[string]string `mapstructure:"requirements"`
}

type segment struct {
	literal  string
	variable string
	wildcard bool
}

type standardRoute struct {
	delimiter    string
	segments     []segment
	defaults     Params
	requirements map[string]*regexp.Regexp
}

func init() {
	RegisterStrategy(TypeStandard, newStandardRoute)
}

func newStandardRoute(options map[string]any) (Strategy, error) {
	var opts standardOptions
	if err := decodeOptions(options, &opts); err != nil {
		return nil, err
	}
	if opts.Delimiter == "" {
		opts.Delimiter = "/"
	}

	r := &standardRoute{
		delimiter:    opts.Delimiter,
		defaults:     Params(opts.Defaults).merge(nil),
		requirements: make(map[string]*regexp.Regexp, len(opts.Requirements)),
	}

	parts := splitPath(strings.Trim(opts.Route, "/"), opts.Delimiter)
	for i, part := range parts {
		switch {
		case part == "*":
			if i != len(parts)-1 {
				return nil, fmt.Errorf("%w: wildcard must be the last segment of %q", ErrInvalidRoute, opts.Route)
			}
			r.segments = append(r.segments, segment{wildcard: true})
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, fmt.Errorf("%w: empty variable in %q", ErrInvalidRoute, opts.Route)
			}
			r.segments = append(r.segments, segment{variable: name})
		default:
			r.segments = append(r.segments, segment{literal: part})
		}
	}

	for name, expr := range opts.Requirements {
		re, err := regexp.Compile(`^(?:` + expr + `)$`)
		if err != nil {
			return nil, fmt.Errorf("%w: requirement for %q: %v", ErrInvalidRoute, name, err)
		}
		r.requirements[name] = re
	}
	return r, nil
}

func (r *standardRoute) Match(path string) (Params, bool) {
	parts := splitPath(strings.Trim(path, "/"), r.delimiter)
	values := make(Params)

	for i, seg := range r.segments {
		if seg.wildcard {
			if !pairs(parts[min(i, len(parts)):], values) || !r.checkRequirements(values) {
				return nil, false
			}
			return r.defaults.merge(values), true
		}
		if i >= len(parts) {
			if seg.literal != "" {
				return nil, false
			}
			if _, ok := r.defaults[seg.variable]; !ok {
				return nil, false
			}
			continue
		}

		part, err := url.PathUnescape(parts[i])
		if err != nil {
			return nil, false
		}
		if seg.literal != "" {
			if part != seg.literal {
				return nil, false
			}
			continue
		}
		values[seg.variable] = part
	}

	if len(parts) > len(r.segments) {
		return nil, false
	}
	if !r.checkRequirements(values) {
		return nil, false
	}
	return r.defaults.merge(values), true
}

func (r *standardRoute) checkRequirements(values Params) bool {
	for name, re := range r.requirements {
		if v, ok := values[name]; ok && !re.MatchString(v) {
			return false
		}
	}
	return true
}

func (r *standardRoute) Assemble(params Params) (string, error) {
	merged := r.defaults.merge(params)
	used := map[string]bool{}
	var out []string

	for _, seg := range r.segments {
		switch {
		case seg.wildcard:
			extra := make(Params)
			for k, v := range params {
				if _, isDefault := r.defaults[k]; !isDefault {
					extra[k] = v
				}
			}
			out = appendPairs(out, extra, used)
		case seg.literal != "":
			out = append(out, url.PathEscape(seg.literal))
		default:
			v, ok := merged[seg.variable]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrMissingParam, seg.variable)
			}
			if re, ok := r.requirements[seg.variable]; ok && v != "" && !re.MatchString(v) {
				return "", fmt.Errorf("%w: %s=%q does not satisfy its requirement", ErrInvalidRoute, seg.variable, v)
			}
			used[seg.variable] = true
			if v != "" {
				out = append(out, url.PathEscape(v))
			}
		}
	}
	return "/" + strings.Join(out, r.delimiter), nil
}

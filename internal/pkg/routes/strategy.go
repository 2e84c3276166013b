package routes

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// Strategy matches request paths and builds URLs for one route.
type Strategy interface {
	Match(path string) (Params, bool)
	Assemble(params Params) (string, error)
}

// StrategyFactory builds a Strategy from a descriptor's options.
type StrategyFactory func(options map[string]any) (Strategy, error)

var (
	strategiesMu sync.RWMutex
	strategies   = map[string]StrategyFactory{}
)

// RegisterStrategy adds a route type. Call it during initialisation.
func RegisterStrategy(typ string, factory StrategyFactory) {
	strategiesMu.Lock()
	defer strategiesMu.Unlock()
	strategies[typ] = factory
}

// Strategies lists the registered route types.
func Strategies() []string {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newStrategy(typ string, options map[string]any) (Strategy, error) {
	strategiesMu.RLock()
	factory, ok := strategies[typ]
	strategiesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, typ)
	}
	return factory(options)
}

// decodeOptions maps loosely typed descriptor options onto a config struct.
// Unknown keys are rejected so typos fail at load time.
func decodeOptions(options map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(options); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRoute, err)
	}
	return nil
}

func splitPath(path, delimiter string) []string {
	trimmed := strings.Trim(path, delimiter)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, delimiter)
}

// reservedKeys hold the dispatch target and only come from captures or
// defaults, never from trailing pairs.
var reservedKeys = map[string]bool{
	ParamModule:     true,
	ParamController: true,
	ParamAction:     true,
}

// pairs decodes trailing key/value segments; a dangling key gets "".
// A reserved key, or a key already captured, fails the match.
func pairs(segments []string, into Params) bool {
	for i := 0; i < len(segments); i += 2 {
		key, err := url.PathUnescape(segments[i])
		if err != nil || key == "" || reservedKeys[key] {
			return false
		}
		if _, taken := into[key]; taken {
			return false
		}
		value := ""
		if i+1 < len(segments) {
			if value, err = url.PathUnescape(segments[i+1]); err != nil {
				return false
			}
		}
		into[key] = value
	}
	return true
}

// appendPairs writes params not in skip as sorted key/value segments.
func appendPairs(segments []string, params Params, skip map[string]bool) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if !skip[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		segments = append(segments, url.PathEscape(k), url.PathEscape(params[k]))
	}
	return segments
}

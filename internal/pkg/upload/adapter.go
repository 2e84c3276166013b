package upload

import (
	"fmt"
	"mime/multipart"
	"sort"
	"sync"
)

// DefaultAdapter is the identifier of the multipart HTTP transfer adapter.
const DefaultAdapter = "Http"

// Filter transforms the stored filename of a file before it is written.
type Filter interface {
	Name() string
	Filter(name string) (string, error)
}

// Adapter performs the transfer of one request's files and owns the filter
// and validator pipelines.
type Adapter interface {
	SetDestination(dir string) error
	Destination() string
	AddFilter(f Filter)
	RemoveFilter(name string)
	AddValidator(name string, breakOnFailure bool, v Validator)
	RemoveValidator(name string)
	Files() map[string]*FileEntry
	IsValid() bool
	Messages() []string
	Receive() error
}

// AdapterFactory builds an adapter for the files of one multipart form.
type AdapterFactory func(form *multipart.Form) (Adapter, error)

var (
	adaptersMu sync.RWMutex
	adapters   = map[string]AdapterFactory{
		DefaultAdapter: func(form *multipart.Form) (Adapter, error) {
			return NewHTTPAdapter(form)
		},
	}
)

// RegisterAdapter makes a transfer adapter available under name.
// Call it during program initialisation.
func RegisterAdapter(name string, factory AdapterFactory) {
	adaptersMu.Lock()
	defer adaptersMu.Unlock()
	adapters[name] = factory
}

// Adapters lists the registered adapter identifiers.
func Adapters() []string {
	adaptersMu.RLock()
	defer adaptersMu.RUnlock()
	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newAdapter(name string, form *multipart.Form) (Adapter, error) {
	adaptersMu.RLock()
	factory, ok := adapters[name]
	adaptersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAdapter, name)
	}
	return factory(form)
}

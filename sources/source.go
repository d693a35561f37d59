// Package sources provides the signal sources sigscope can chart. Each
// source produces one numeric sample per read, from a device file or from
// the operating system's resource counters.
package sources

import (
	"context"
	"errors"
)

// ErrMalformedSample is returned when a source produced data that could not
// be interpreted as a sample.
var ErrMalformedSample = errors.New("malformed sample")

// Source is the interface that all signal sources implement.
type Source interface {
	// Name returns the source's unique identifier (e.g., "gpio", "cpu", "ram").
	Name() string

	// Read returns the current value of the signal. It is called on every
	// tick of the render loop, so implementations must return promptly.
	Read(ctx context.Context) (float64, error)
}

// Toggler is implemented by sources that can switch the underlying signal
// they report, such as the GPIO device whose driver alternates between two
// input lines.
type Toggler interface {
	Toggle(ctx context.Context) error
}

// Registry holds registered sources and provides lookup by name.
type Registry struct {
	sources []Source
}

// NewRegistry creates a new empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make([]Source, 0),
	}
}

// Register adds a source to the registry.
// If a source with the same name already exists, it is replaced in place.
func (r *Registry) Register(s Source) {
	for i, existing := range r.sources {
		if existing.Name() == s.Name() {
			r.sources[i] = s
			return
		}
	}
	r.sources = append(r.sources, s)
}

// Get returns a source by name. The second return value indicates
// whether the source was found.
func (r *Registry) Get(name string) (Source, bool) {
	for _, s := range r.sources {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// All returns all registered sources in registration order.
func (r *Registry) All() []Source {
	result := make([]Source, len(r.sources))
	copy(result, r.sources)
	return result
}

// Names returns the names of all registered sources in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

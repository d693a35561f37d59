package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fixedSource is a Source that always returns the same value.
type fixedSource struct {
	name  string
	value float64
}

func (f fixedSource) Name() string                          { return f.name }
func (f fixedSource) Read(context.Context) (float64, error) { return f.value, nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(fixedSource{name: "cpu", value: 1})
	r.Register(fixedSource{name: "ram", value: 2})

	s, ok := r.Get("ram")
	assert.True(t, ok)
	v, _ := s.Read(context.Background())
	assert.Equal(t, 2.0, v)

	_, ok = r.Get("gpio")
	assert.False(t, ok)
}

func TestRegistry_ReplaceKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(fixedSource{name: "cpu", value: 1})
	r.Register(fixedSource{name: "ram", value: 2})
	r.Register(fixedSource{name: "cpu", value: 3})

	assert.Equal(t, []string{"cpu", "ram"}, r.Names())
	s, _ := r.Get("cpu")
	v, _ := s.Read(context.Background())
	assert.Equal(t, 3.0, v)
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(fixedSource{name: "cpu"})

	all := r.All()
	all[0] = fixedSource{name: "other"}

	assert.Equal(t, []string{"cpu"}, r.Names())
}

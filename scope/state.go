package scope

import (
	"context"
	"fmt"

	"gitlab.com/tinyland/lab/sigscope/sources"
	"gitlab.com/tinyland/lab/sigscope/window"
)

// State is everything the render loop needs to draw a frame.
type State struct {
	Variant Variant
	Active  Profile
	Window  *window.SampleWindow

	// LastErr is the most recent read or selection failure, cleared by the
	// next successful sample.
	LastErr error
	// Samples counts successful ticks since the last reset.
	Samples int
	// Toggles counts device toggle requests.
	Toggles int
	// Generation increments whenever the window is reset by a selection or
	// toggle. Ticks read under an older generation are discarded.
	Generation int
}

// NewState returns the initial state for v: its first profile active and a
// zero-filled window.
func NewState(v Variant) State {
	var active Profile
	if len(v.Profiles) > 0 {
		active = v.Profiles[0]
	}
	return State{
		Variant: v,
		Active:  active,
		Window:  window.New(active.Capacity),
	}
}

// Event is an input to Transition.
type Event interface {
	event()
}

// Tick carries one sample read from Source while the state was at
// Generation.
type Tick struct {
	Source     string
	Generation int
	Value      float64
	Err        error
}

// Select switches the active profile to the one reading Source.
type Select struct {
	Source string
}

// Toggle asks the device to switch input lines. The write itself happens
// outside Transition; the event only resets the display.
type Toggle struct{}

func (Tick) event()   {}
func (Select) event() {}
func (Toggle) event() {}

// Transition returns the state that follows s after e. s is not modified.
func Transition(s State, e Event) State {
	switch e := e.(type) {
	case Tick:
		// Drop samples read before the last reset, or from a source that
		// is no longer active.
		if e.Source != s.Active.Source || e.Generation != s.Generation {
			return s
		}
		if e.Err != nil {
			s.LastErr = e.Err
			return s
		}
		s.Window = s.Window.Clone()
		s.Window.Advance(e.Value)
		s.LastErr = nil
		s.Samples++
		return s

	case Select:
		p, ok := s.Variant.Profile(e.Source)
		if !ok {
			s.LastErr = fmt.Errorf("source %q is not available in the %s variant", e.Source, s.Variant.Name)
			return s
		}
		s.Active = p
		s.Window = window.New(p.Capacity)
		s.LastErr = nil
		s.Samples = 0
		s.Generation++
		return s

	case Toggle:
		if !s.Variant.Toggle {
			return s
		}
		s.Window = window.New(s.Active.Capacity)
		s.Samples = 0
		s.Toggles++
		s.Generation++
		return s
	}

	return s
}

// Sample reads src once and wraps the result in a Tick stamped with
// generation.
func Sample(ctx context.Context, src sources.Source, generation int) Tick {
	v, err := src.Read(ctx)
	return Tick{Source: src.Name(), Generation: generation, Value: v, Err: err}
}

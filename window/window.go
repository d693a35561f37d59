// Package window provides the fixed-capacity sliding window of samples that
// backs the scrolling chart. The window is owned by a single render loop and
// is not safe for concurrent use.
package window

// SampleWindow is a fixed-length FIFO of numeric samples, ordered oldest
// first. Its length never changes between resets.
type SampleWindow struct {
	samples []float64
}

// New returns a zero-filled window holding capacity samples.
// A capacity below 1 is clamped to 1.
func New(capacity int) *SampleWindow {
	w := &SampleWindow{}
	w.Reset(capacity)
	return w
}

// Reset reinitializes the window to capacity zeros.
func (w *SampleWindow) Reset(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	w.samples = make([]float64, capacity)
}

// Advance evicts the oldest sample and appends v as the newest.
func (w *SampleWindow) Advance(v float64) {
	if len(w.samples) == 0 {
		w.samples = []float64{v}
		return
	}
	copy(w.samples, w.samples[1:])
	w.samples[len(w.samples)-1] = v
}

// Values returns a copy of the samples, oldest first.
func (w *SampleWindow) Values() []float64 {
	out := make([]float64, len(w.samples))
	copy(out, w.samples)
	return out
}

// Len returns the number of samples held.
func (w *SampleWindow) Len() int {
	return len(w.samples)
}

// Capacity is an alias for Len; the window is always full.
func (w *SampleWindow) Capacity() int {
	return len(w.samples)
}

// Last returns the newest sample, or 0 for an uninitialized window.
func (w *SampleWindow) Last() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	return w.samples[len(w.samples)-1]
}

// Clone returns an independent copy of the window.
func (w *SampleWindow) Clone() *SampleWindow {
	return &SampleWindow{samples: w.Values()}
}

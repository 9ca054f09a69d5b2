// Package slider implements the dual-handle price range selector as an
// explicit finite state machine: idle or dragging one handle, transitioned
// only by Start, Move, and End/Cancel events.
package slider

// Handle identifies which slider handle a gesture owns.
type Handle string

const (
	HandleNone Handle = ""
	HandleMin  Handle = "min"
	HandleMax  Handle = "max"
)

// DefaultStep is the value-space quantization step.
const DefaultStep = 5

// DefaultMinGap is the smallest allowed distance between the two handles.
const DefaultMinGap = 10

// Listener is notified with the committed (min, max) pair after every move.
type Listener func(min, max float64)

// Slider holds the state of one price range selector. Only one handle may be
// active at a time; gesture state is created on Start and discarded on
// End or Cancel.
type Slider struct {
	globalMin float64
	globalMax float64
	step      float64
	minGap    float64

	min    float64
	max    float64
	active Handle
	anchor float64 // value of the active handle at gesture start
	width  float64 // measured track width in pixels

	onChange Listener
}

// New creates a slider spanning [globalMin, globalMax] with both handles at
// the bounds. The listener may be nil.
func New(globalMin, globalMax float64, onChange Listener) *Slider {
	if globalMax < globalMin {
		globalMin, globalMax = globalMax, globalMin
	}
	return &Slider{
		globalMin: globalMin,
		globalMax: globalMax,
		step:      DefaultStep,
		minGap:    DefaultMinGap,
		min:       globalMin,
		max:       globalMax,
		onChange:  onChange,
	}
}

// SetWidth records the measured track width; it is re-measured on layout and
// converts pixel deltas to value-space deltas. A zero or negative width
// makes moves no-ops.
func (s *Slider) SetWidth(w float64) {
	s.width = w
}

// Start begins a drag on the given handle. Returns false if a gesture is
// already in progress or the handle is unknown.
func (s *Slider) Start(h Handle) bool {
	if s.active != HandleNone {
		return false
	}
	switch h {
	case HandleMin:
		s.anchor = s.min
	case HandleMax:
		s.anchor = s.max
	default:
		return false
	}
	s.active = h
	return true
}

// Move recomputes the active handle's value from the pixel delta since
// gesture start: clamp to the global bounds, quantize to the step, then
// apply the ordering constraint against the other handle before committing.
// Moves are ignored while idle or when the width is unknown.
func (s *Slider) Move(dx float64) {
	if s.active == HandleNone || s.width <= 0 {
		return
	}

	candidate := s.anchor + dx*(s.globalMax-s.globalMin)/s.width
	candidate = clamp(candidate, s.globalMin, s.globalMax)
	candidate = s.quantize(candidate)

	switch s.active {
	case HandleMin:
		if candidate > s.max-s.minGap {
			candidate = s.max - s.minGap
		}
		s.min = candidate
	case HandleMax:
		if candidate < s.min+s.minGap {
			candidate = s.min + s.minGap
		}
		s.max = candidate
	}

	if s.onChange != nil {
		s.onChange(s.min, s.max)
	}
}

// End finishes the gesture, returning to idle.
func (s *Slider) End() {
	s.active = HandleNone
	s.anchor = 0
}

// Cancel aborts the gesture, e.g. when a parent scroll interrupts it. The
// committed values stay; only the gesture state is discarded.
func (s *Slider) Cancel() {
	s.End()
}

// Reset returns the slider to idle with both handles at the global bounds.
func (s *Slider) Reset() {
	s.End()
	s.min = s.globalMin
	s.max = s.globalMax
}

// Values returns the current (min, max) pair.
func (s *Slider) Values() (float64, float64) {
	return s.min, s.max
}

// Bounds returns the global (min, max) bounds.
func (s *Slider) Bounds() (float64, float64) {
	return s.globalMin, s.globalMax
}

// Active returns the handle currently being dragged, or HandleNone.
func (s *Slider) Active() Handle {
	return s.active
}

// quantize snaps a value to the nearest step, keeping it inside the global
// bounds.
func (s *Slider) quantize(v float64) float64 {
	steps := (v - s.globalMin) / s.step
	snapped := s.globalMin + float64(int(steps+0.5))*s.step
	return clamp(snapped, s.globalMin, s.globalMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

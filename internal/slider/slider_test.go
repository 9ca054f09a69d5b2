package slider

import "testing"

// track of 400px over a 0..400 value range: 1px == 1 unit.
func newTestSlider(listener Listener) *Slider {
	s := New(0, 400, listener)
	s.SetWidth(400)
	return s
}

func TestDragMinHandle(t *testing.T) {
	s := newTestSlider(nil)

	if !s.Start(HandleMin) {
		t.Fatal("Start(min) failed")
	}
	s.Move(100)
	s.End()

	min, max := s.Values()
	if min != 100 || max != 400 {
		t.Errorf("Values() = (%v, %v), want (100, 400)", min, max)
	}
	if s.Active() != HandleNone {
		t.Errorf("handle still active after End: %q", s.Active())
	}
}

func TestQuantizationToStep(t *testing.T) {
	s := newTestSlider(nil)
	s.Start(HandleMin)

	tests := []struct {
		dx   float64
		want float64
	}{
		{102, 100}, // rounds down
		{103, 105}, // rounds up
		{97.4, 95},
		{0, 0},
	}
	for _, tt := range tests {
		s.Move(tt.dx)
		if min, _ := s.Values(); min != tt.want {
			t.Errorf("Move(%v): min = %v, want %v", tt.dx, min, tt.want)
		}
	}
}

func TestClampToGlobalBounds(t *testing.T) {
	s := newTestSlider(nil)

	s.Start(HandleMin)
	s.Move(-500)
	s.End()
	if min, _ := s.Values(); min != 0 {
		t.Errorf("min dragged past global bound = %v, want 0", min)
	}

	s.Start(HandleMax)
	s.Move(900)
	s.End()
	if _, max := s.Values(); max != 400 {
		t.Errorf("max dragged past global bound = %v, want 400", max)
	}
}

func TestOrderingConstraintSnapsToGap(t *testing.T) {
	s := newTestSlider(nil)

	// Park max at 200, then drag min far past it.
	s.Start(HandleMax)
	s.Move(-200)
	s.End()

	s.Start(HandleMin)
	s.Move(350)
	s.End()

	min, max := s.Values()
	if max != 200 {
		t.Fatalf("max = %v, want 200", max)
	}
	if min != max-DefaultMinGap {
		t.Errorf("min crossed the gap: %v, want %v", min, max-DefaultMinGap)
	}

	// And the mirror case for the max handle.
	s.Start(HandleMax)
	s.Move(-500)
	s.End()
	min, max = s.Values()
	if max != min+DefaultMinGap {
		t.Errorf("max crossed the gap: %v, want %v", max, min+DefaultMinGap)
	}
}

func TestOnlyOneActiveHandle(t *testing.T) {
	s := newTestSlider(nil)
	if !s.Start(HandleMin) {
		t.Fatal("first Start failed")
	}
	if s.Start(HandleMax) {
		t.Error("second Start must fail while dragging")
	}
	s.End()
	if !s.Start(HandleMax) {
		t.Error("Start should succeed after End")
	}
}

func TestMoveIgnoredWhenIdleOrZeroWidth(t *testing.T) {
	s := New(0, 400, nil)

	// Idle: no gesture started.
	s.SetWidth(400)
	s.Move(100)
	if min, _ := s.Values(); min != 0 {
		t.Errorf("idle Move changed min to %v", min)
	}

	// Dragging but width unknown.
	s.SetWidth(0)
	s.Start(HandleMin)
	s.Move(100)
	if min, _ := s.Values(); min != 0 {
		t.Errorf("zero-width Move changed min to %v", min)
	}
	s.End()
}

func TestCancelClearsActiveHandle(t *testing.T) {
	s := newTestSlider(nil)
	s.Start(HandleMin)
	s.Move(50)
	s.Cancel()

	if s.Active() != HandleNone {
		t.Error("Cancel left a stuck active handle")
	}
	// Committed values survive the cancel.
	if min, _ := s.Values(); min != 50 {
		t.Errorf("min = %v, want 50", min)
	}
}

func TestListenerNotifiedOnCommit(t *testing.T) {
	var gotMin, gotMax float64
	calls := 0
	s := newTestSlider(func(min, max float64) {
		gotMin, gotMax = min, max
		calls++
	})

	s.Start(HandleMin)
	s.Move(100)
	s.End()

	if calls != 1 {
		t.Fatalf("listener called %d times, want 1", calls)
	}
	if gotMin != 100 || gotMax != 400 {
		t.Errorf("listener got (%v, %v), want (100, 400)", gotMin, gotMax)
	}
}

func TestMoveIsRelativeToGestureStart(t *testing.T) {
	s := newTestSlider(nil)
	s.Start(HandleMin)
	s.Move(100)
	s.Move(50) // not cumulative: 50px from the anchor, not from 100
	s.End()

	if min, _ := s.Values(); min != 50 {
		t.Errorf("min = %v, want 50", min)
	}
}

func TestReset(t *testing.T) {
	s := newTestSlider(nil)
	s.Start(HandleMin)
	s.Move(100)
	s.Reset()

	min, max := s.Values()
	if min != 0 || max != 400 || s.Active() != HandleNone {
		t.Errorf("Reset left (%v, %v, %q)", min, max, s.Active())
	}
}

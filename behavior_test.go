package motive

import "testing"

// --- First trigger (nil state) ---

func TestDecideFirstTrigger(t *testing.T) {
	tests := []struct {
		name         string
		behavior     Behavior
		wantTarget   float64
		wantDir      Direction
		wantReset    bool
		wantLoop     bool
		wantOverride bool
		overrideVal  float64
	}{
		{"playForward", PlayForward, 1, DirectionForward, false, false, false, 0},
		{"playBackward", PlayBackward, 0, DirectionBackward, false, false, false, 0},
		{"toggle acts as forward", Toggle, 1, DirectionForward, false, false, false, 0},
		{"forwardAndReset", PlayForwardAndReset, 1, DirectionForward, true, false, true, 0},
		{"backwardAndReset", PlayBackwardAndReset, 0, DirectionBackward, true, false, true, 1},
		{"forwardAndReverse", PlayForwardAndReverse, 1, DirectionForward, false, true, false, 0},
		{"backwardAndReverse", PlayBackwardAndReverse, 0, DirectionBackward, false, true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(nil, tt.behavior, false)
			if d.TargetProgress != tt.wantTarget {
				t.Errorf("target = %v, want %v", d.TargetProgress, tt.wantTarget)
			}
			if d.Direction != tt.wantDir {
				t.Errorf("direction = %v, want %v", d.Direction, tt.wantDir)
			}
			if d.ShouldResetAfterCompletion != tt.wantReset {
				t.Errorf("reset = %v, want %v", d.ShouldResetAfterCompletion, tt.wantReset)
			}
			if d.IsLoopIteration != tt.wantLoop {
				t.Errorf("loop = %v, want %v", d.IsLoopIteration, tt.wantLoop)
			}
			if d.HasOverrideStart != tt.wantOverride {
				t.Errorf("hasOverride = %v, want %v", d.HasOverrideStart, tt.wantOverride)
			}
			if d.HasOverrideStart && d.OverrideStartProgress != tt.overrideVal {
				t.Errorf("overrideStart = %v, want %v", d.OverrideStartProgress, tt.overrideVal)
			}
			if d.NoOp {
				t.Error("first trigger should never be a no-op")
			}
		})
	}
}

// --- Play forward/backward against state ---

func TestDecidePlayFromMidFlight(t *testing.T) {
	st := &AnimationState{Progress: 0.4, TargetProgress: 1}

	d := Decide(st, PlayForward, false)
	if d.TargetProgress != 1 || d.Direction != DirectionForward || d.NoOp {
		t.Errorf("playForward from 0.4 = %+v, want target 1 forward", d)
	}
	if d.HasOverrideStart {
		t.Error("no override requested, got an override start")
	}

	d = Decide(st, PlayBackward, false)
	if d.TargetProgress != 0 || d.Direction != DirectionBackward || d.NoOp {
		t.Errorf("playBackward from 0.4 = %+v, want target 0 backward", d)
	}
}

func TestDecidePlayAtPoleIsNoOp(t *testing.T) {
	st := &AnimationState{Progress: 1, TargetProgress: 1}
	d := Decide(st, PlayForward, false)
	if !d.NoOp {
		t.Fatal("playForward while at 1 should be a no-op")
	}
	if d.TargetProgress != 1 {
		t.Errorf("no-op target = %v, want 1 (unchanged)", d.TargetProgress)
	}

	// Epsilon tolerance: 0.995 counts as "at the pole".
	st = &AnimationState{Progress: 0.995, TargetProgress: 1}
	if d := Decide(st, PlayForward, false); !d.NoOp {
		t.Error("progress within epsilon of the pole should be a no-op")
	}
}

func TestDecidePlayOverrideForcesJump(t *testing.T) {
	st := &AnimationState{Progress: 0.6, TargetProgress: 1}
	d := Decide(st, PlayForward, true)
	if !d.HasOverrideStart || d.OverrideStartProgress != 0 {
		t.Fatalf("override playForward mid-flight = %+v, want instant jump to 0", d)
	}
	if d.TargetProgress != 1 || d.Direction != DirectionForward {
		t.Errorf("override decision = %+v, want target 1 forward", d)
	}

	// Already at the pole: override is moot, plain re-run (not a no-op jump).
	st = &AnimationState{Progress: 1, TargetProgress: 1}
	d = Decide(st, PlayForward, true)
	if d.HasOverrideStart {
		t.Error("override at the pole should not jump")
	}
	if d.NoOp {
		t.Error("override suppresses the no-op shortcut")
	}
}

// --- Toggle ---

func TestToggleFlipsIntentNotPosition(t *testing.T) {
	// Mid-flight toward 1: toggling flips the target to 0 even though
	// progress is nowhere near a pole.
	st := &AnimationState{Progress: 0.3, TargetProgress: 1}
	d := Decide(st, Toggle, false)
	if d.TargetProgress != 0 {
		t.Errorf("toggle mid-flight target = %v, want 0", d.TargetProgress)
	}
	if d.Direction != DirectionBackward {
		t.Errorf("toggle mid-flight direction = %v, want backward", d.Direction)
	}
}

func TestToggleAlternatesIndefinitely(t *testing.T) {
	st := &AnimationState{Progress: 0, TargetProgress: 0}
	want := 1.0
	for i := 0; i < 10; i++ {
		d := Decide(st, Toggle, false)
		if d.TargetProgress != want {
			t.Fatalf("toggle %d: target = %v, want %v", i, d.TargetProgress, want)
		}
		st.TargetProgress = d.TargetProgress
		want = 1 - want
	}
}

func TestToggleFirstThenSecondDecision(t *testing.T) {
	// First decision with no state: target 1, forward.
	d := Decide(nil, Toggle, false)
	if d.TargetProgress != 1 || d.Direction != DirectionForward {
		t.Fatalf("first toggle = %+v, want target 1 forward", d)
	}

	// Intent applied, progress untouched. Second decision flips.
	st := &AnimationState{Progress: 0, TargetProgress: d.TargetProgress}
	d = Decide(st, Toggle, false)
	if d.TargetProgress != 0 || d.Direction != DirectionBackward {
		t.Fatalf("second toggle = %+v, want target 0 backward", d)
	}
}

// --- Ping-pong ---

func TestPingPongMarksLoopIteration(t *testing.T) {
	st := &AnimationState{Progress: 0, TargetProgress: 0}
	d := Decide(st, PlayForwardAndReverse, false)
	if !d.IsLoopIteration {
		t.Fatal("ping-pong first leg must be marked as a loop iteration")
	}
	if d.TargetProgress != 1 {
		t.Errorf("first leg target = %v, want 1", d.TargetProgress)
	}

	d = Decide(st, PlayBackwardAndReverse, false)
	if !d.IsLoopIteration || d.TargetProgress != 0 {
		t.Errorf("backward ping-pong = %+v, want loop-marked target 0", d)
	}
}

// --- Reset variants against state ---

func TestResetVariantsSetResetFlag(t *testing.T) {
	st := &AnimationState{Progress: 0.5, TargetProgress: 1}
	d := Decide(st, PlayForwardAndReset, false)
	if !d.ShouldResetAfterCompletion {
		t.Error("forwardAndReset should set the reset flag")
	}
	if d.TargetProgress != 1 {
		t.Errorf("target = %v, want 1", d.TargetProgress)
	}

	d = Decide(st, PlayBackwardAndReset, false)
	if !d.ShouldResetAfterCompletion || d.TargetProgress != 0 {
		t.Errorf("backwardAndReset = %+v, want reset-flagged target 0", d)
	}
}

// --- ParseBehavior ---

func TestParseBehaviorCanonicalNames(t *testing.T) {
	for name, want := range behaviorNames {
		if got := ParseBehavior(name); got != want {
			t.Errorf("ParseBehavior(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseBehaviorDeprecatedAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  Behavior
	}{
		{"play", PlayForward},
		{"playReverse", PlayBackward},
		{"playAndReset", PlayForwardAndReset},
		{"pingPong", PlayForwardAndReverse},
		{"playPingPong", PlayForwardAndReverse},
		{"reversePingPong", PlayBackwardAndReverse},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			if got := ParseBehavior(tt.alias); got != tt.want {
				t.Errorf("ParseBehavior(%q) = %v, want %v", tt.alias, got, tt.want)
			}
		})
	}
}

func TestParseBehaviorUnknownFallsBack(t *testing.T) {
	if got := ParseBehavior("moonwalk"); got != PlayForward {
		t.Errorf("ParseBehavior(unknown) = %v, want PlayForward", got)
	}
}

func TestBehaviorStringRoundTrip(t *testing.T) {
	for name, b := range behaviorNames {
		if b.String() != name {
			t.Errorf("%v.String() = %q, want %q", b, b.String(), name)
		}
	}
}

// --- Purity ---

func TestDecideDoesNotMutateState(t *testing.T) {
	st := &AnimationState{Progress: 0.42, TargetProgress: 1, Status: StatusRunning}
	before := *st
	_ = Decide(st, Toggle, true)
	_ = Decide(st, PlayForwardAndReverse, false)
	_ = Decide(st, PlayBackwardAndReset, true)
	if *st != before {
		t.Errorf("Decide mutated state: %+v -> %+v", before, *st)
	}
}

func TestDecideDoesNotAllocate(t *testing.T) {
	st := &AnimationState{Progress: 0.4, TargetProgress: 1}
	allocs := testing.AllocsPerRun(100, func() {
		_ = Decide(st, Toggle, false)
	})
	if allocs > 0 {
		t.Errorf("Decide allocated %v times per run, want 0", allocs)
	}
}

func BenchmarkDecide(b *testing.B) {
	st := &AnimationState{Progress: 0.4, TargetProgress: 1}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Decide(st, Toggle, false)
	}
}

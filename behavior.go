package motive

// Decision is the transient result of evaluating a behavior against a slot's
// current state. It is consumed immediately by the animator (or by the host
// driving progress itself) and never persisted.
type Decision struct {
	TargetProgress float64
	Direction      Direction

	// ShouldResetAfterCompletion snaps progress back to the run's start pole
	// once the run completes (the *AndReset behaviors).
	ShouldResetAfterCompletion bool

	// IsLoopIteration marks the first leg of a ping-pong run. Scheduling the
	// return leg after this leg completes is the caller's responsibility;
	// the Animator does it through the completion mechanism.
	IsLoopIteration bool

	// OverrideStartProgress forces an instant jump before animating.
	// Only meaningful when HasOverrideStart is true.
	OverrideStartProgress float64
	HasOverrideStart      bool

	// NoOp reports that the trigger requires no new run (already at the
	// requested pole with no override). Callers skip driver setup entirely.
	NoOp bool
}

// behaviorAliases maps deprecated config names to their modern equivalents.
// The table is consulted once, at configuration load (ParseBehavior), never
// at decision time.
var behaviorAliases = map[string]Behavior{
	"play":            PlayForward,
	"playReverse":     PlayBackward,
	"playAndReset":    PlayForwardAndReset,
	"pingPong":        PlayForwardAndReverse,
	"playPingPong":    PlayForwardAndReverse,
	"reversePingPong": PlayBackwardAndReverse,
}

// behaviorNames maps canonical config names to behaviors.
var behaviorNames = map[string]Behavior{
	"playForward":            PlayForward,
	"playBackward":           PlayBackward,
	"playForwardAndReset":    PlayForwardAndReset,
	"playBackwardAndReset":   PlayBackwardAndReset,
	"toggle":                 Toggle,
	"playForwardAndReverse":  PlayForwardAndReverse,
	"playBackwardAndReverse": PlayBackwardAndReverse,
}

// ParseBehavior translates a config string to a Behavior. Deprecated aliases
// resolve to their modern equivalent with a warning. Unknown names warn and
// fall back to PlayForward — configuration errors degrade, they never fail.
func ParseBehavior(name string) Behavior {
	if b, ok := behaviorNames[name]; ok {
		return b
	}
	if b, ok := behaviorAliases[name]; ok {
		warnf("behavior %q is deprecated, use %q", name, b.String())
		return b
	}
	warnf("unknown behavior %q, falling back to playForward", name)
	return PlayForward
}

// Decide maps (current state, behavior, override flag) to a Decision.
// Pure and stateless: state may be nil, meaning the slot has never been
// triggered, which is treated as a first trigger from the behavior's start
// pole.
func Decide(state *AnimationState, b Behavior, override bool) Decision {
	if state == nil {
		return decideFirstTrigger(b)
	}

	switch b {
	case PlayForward:
		return decidePlay(state, 1, override)
	case PlayBackward:
		return decidePlay(state, 0, override)

	case PlayForwardAndReset:
		d := decidePlay(state, 1, override)
		d.ShouldResetAfterCompletion = true
		return d
	case PlayBackwardAndReset:
		d := decidePlay(state, 0, override)
		d.ShouldResetAfterCompletion = true
		return d

	case Toggle:
		// Intent-based, not position-based: flip the *current target*, so a
		// toggle issued mid-flight reverses travel instead of snapping.
		target := 1.0
		if state.TargetProgress >= 0.5 {
			target = 0.0
		}
		return Decision{
			TargetProgress: target,
			Direction:      directionToward(state.Progress, target),
		}

	case PlayForwardAndReverse:
		return Decision{
			TargetProgress:  1,
			Direction:       directionToward(state.Progress, 1),
			IsLoopIteration: true,
		}
	case PlayBackwardAndReverse:
		return Decision{
			TargetProgress:  0,
			Direction:       directionToward(state.Progress, 0),
			IsLoopIteration: true,
		}
	}

	warnf("unhandled behavior %d, falling back to playForward", b)
	return decidePlay(state, 1, override)
}

// decideFirstTrigger handles the nil-state case: forward-type behaviors
// target 1, backward-type target 0, reset variants additionally force the
// start pole.
func decideFirstTrigger(b Behavior) Decision {
	switch b {
	case PlayBackward:
		return Decision{TargetProgress: 0, Direction: DirectionBackward}
	case PlayForwardAndReset:
		return Decision{
			TargetProgress:             1,
			Direction:                  DirectionForward,
			ShouldResetAfterCompletion: true,
			OverrideStartProgress:      0,
			HasOverrideStart:           true,
		}
	case PlayBackwardAndReset:
		return Decision{
			TargetProgress:             0,
			Direction:                  DirectionBackward,
			ShouldResetAfterCompletion: true,
			OverrideStartProgress:      1,
			HasOverrideStart:           true,
		}
	case PlayForwardAndReverse:
		return Decision{TargetProgress: 1, Direction: DirectionForward, IsLoopIteration: true}
	case PlayBackwardAndReverse:
		return Decision{TargetProgress: 0, Direction: DirectionBackward, IsLoopIteration: true}
	default:
		// PlayForward, Toggle, and any future forward-type behavior.
		return Decision{TargetProgress: 1, Direction: DirectionForward}
	}
}

// decidePlay handles play-forward/backward against existing state.
// pole is the destination (0 or 1).
func decidePlay(state *AnimationState, pole float64, override bool) Decision {
	atPole := absFloat(state.Progress-pole) <= poleEpsilon

	if override && !atPole {
		// Instant jump to the opposite pole, then animate the full run.
		opposite := 1 - pole
		return Decision{
			TargetProgress:        pole,
			Direction:             directionToward(opposite, pole),
			OverrideStartProgress: opposite,
			HasOverrideStart:      true,
		}
	}

	if atPole && !override {
		// Already exactly where the trigger wants us: no-op decision that
		// prevents useless re-triggering.
		return Decision{
			TargetProgress: pole,
			Direction:      directionToward(state.Progress, pole),
			NoOp:           true,
		}
	}

	return Decision{
		TargetProgress: pole,
		Direction:      directionToward(state.Progress, pole),
	}
}

// directionToward derives travel direction from a start progress and a
// target. A target at or below the current progress reads as backward, so a
// toggle back to 0 issued while parked at 0 still reports backward intent.
func directionToward(from, to float64) Direction {
	if to > from {
		return DirectionForward
	}
	return DirectionBackward
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package motive

// Behavior is the high-level intent a trigger requests for a slot.
// The set is closed; config strings (including deprecated aliases) are
// translated once at load time by ParseBehavior.
type Behavior uint8

const (
	PlayForward            Behavior = iota // animate toward progress 1
	PlayBackward                           // animate toward progress 0
	PlayForwardAndReset                    // jump to 0, animate to 1, snap back to 0 on completion
	PlayBackwardAndReset                   // jump to 1, animate to 0, snap back to 1 on completion
	Toggle                                 // flip the current target between 0 and 1
	PlayForwardAndReverse                  // ping-pong: to 1, then a scheduled return leg to 0
	PlayBackwardAndReverse                 // ping-pong: to 0, then a scheduled return leg to 1
)

// String returns the canonical config name for the behavior.
func (b Behavior) String() string {
	switch b {
	case PlayForward:
		return "playForward"
	case PlayBackward:
		return "playBackward"
	case PlayForwardAndReset:
		return "playForwardAndReset"
	case PlayBackwardAndReset:
		return "playBackwardAndReset"
	case Toggle:
		return "toggle"
	case PlayForwardAndReverse:
		return "playForwardAndReverse"
	case PlayBackwardAndReverse:
		return "playBackwardAndReverse"
	default:
		return "unknown"
	}
}

// Status describes where a slot's animation currently is in its lifecycle.
type Status uint8

const (
	StatusIdle      Status = iota // initialized, no driver attached
	StatusRunning                 // a driver is advancing progress
	StatusCompleted               // last run reached its target
)

// String returns the serialized name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// statusFromString is the inverse of Status.String. Unknown names restore
// as idle (lossy snapshots must never fail a restore).
func statusFromString(s string) Status {
	switch s {
	case "running":
		return StatusRunning
	case "completed":
		return StatusCompleted
	default:
		return StatusIdle
	}
}

// Direction is the current direction of travel for a slot's progress.
type Direction uint8

const (
	DirectionForward  Direction = iota // progress increasing toward the target
	DirectionBackward                  // progress decreasing toward the target
)

// String returns the serialized name for the direction.
func (d Direction) String() string {
	if d == DirectionBackward {
		return "backward"
	}
	return "forward"
}

// AnimationMode selects how a slot's progress is driven.
type AnimationMode uint8

const (
	ModeEvent  AnimationMode = iota // timed tween started by discrete triggers
	ModeScroll                      // progress scrubbed directly from a scroll position
)

// poleEpsilon is the tolerance used when checking whether progress sits at
// a pole (0 or 1). Float drift from easing math makes exact comparison
// unreliable.
const poleEpsilon = 0.01

// TriggerSpec binds one external event name to a behavior for a slot.
// Triggers are matched in declaration order; the first event match wins.
type TriggerSpec struct {
	Event    string
	Behavior Behavior
	// Override forces an instant jump to the opposite pole before the run
	// starts when the slot is mid-flight (play-forward/backward only).
	Override bool
}

// PropertyTrack animates one CSS-like property between two value strings.
// From and To may be simple values ("20px", "50%", "1.5rem") or calc()
// expressions; they are resolved to pixels per frame through the conversion
// engine.
type PropertyTrack struct {
	Property string
	From     string
	To       string
}

// AnimationSlot is the immutable configuration for one animation unit.
// Created when an animation is registered and never mutated afterward;
// mutable run state lives in the Store, keyed by ID.
type AnimationSlot struct {
	ID       string
	Element  *Element
	Mode     AnimationMode
	Duration float32 // seconds, event mode only
	Easing   string  // easing name resolved via easeByName
	Triggers []TriggerSpec
	Tracks   []PropertyTrack

	// Stagger places the slot's element inside a shared scroll window
	// (scroll mode only). Zero values mean the full window.
	StaggerOffset float64
	StaggerWindow float64
}

// Package motive is a headless animation-intent engine: it decides what an
// animation should do, tracks how far along it is, and turns CSS-like value
// pairs into concrete pixel numbers — without rendering anything itself.
//
// Motive owns the progress state machine (behavior decisions, target
// tracking, interruption, persistence across destructive remounts), the
// cross-unit value conversion engine (unit parsing, calc() evaluation,
// time-windowed caching), and the scroll progress-grouping coordinator that
// amortizes per-frame work across many animated elements. Applying the
// resulting values to live elements is the host's job, through the
// [StyleApplier] contract.
//
// # Quick start
//
// Build an [Engine], register a slot, and pump it from your frame loop:
//
//	eng := motive.NewEngine()
//	el := motive.NewElement("hero", 200, 100)
//	eng.RegisterSlot(motive.AnimationSlot{
//		ID:       "hero-slide",
//		Element:  el,
//		Mode:     motive.ModeEvent,
//		Duration: 0.6,
//		Easing:   "outCubic",
//		Triggers: []motive.TriggerSpec{{Event: "click", Behavior: motive.Toggle}},
//		Tracks:   []motive.PropertyTrack{{Property: "translateX", From: "0px", To: "calc(50% - 20px)"}},
//	})
//
//	// per frame:
//	eng.HandleTrigger("hero-slide", "click") // from your input layer
//	eng.Update(dt)
//	values := eng.Resolve("hero-slide")
//
// Triggers update intent immediately: a rapid double-trigger reflects the
// latest intent rather than queuing stale animations. Progress and target are
// tracked separately, so an interrupted animation reverses from wherever it
// currently is instead of snapping.
//
// # Scroll-scrubbed animations
//
// Slots in [ModeScroll] are driven by a scroll position instead of a clock.
// The [ScrollCoordinator] groups elements that share the same (rounded)
// progress and resolves each group's property set once, so a non-staggered
// animation over N elements costs one resolution per frame, not N.
//
// # Key features
//
// Behavior decisions (play, toggle, reset, and ping-pong variants), a
// per-slot state store with serialization for breakpoint remounts, cross-unit
// interpolation with calc() support, a TTL conversion cache, tween drivers
// (via [gween]), and JSON trigger scripts for headless runs.
//
// [gween]: https://github.com/tanema/gween
package motive

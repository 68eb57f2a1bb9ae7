package motive

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// easeByName maps config easing names to gween easing functions. Unknown
// names warn and fall back to linear.
var easeByName = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inExpo":     ease.InExpo,
	"outExpo":    ease.OutExpo,
	"inOutExpo":  ease.InOutExpo,
	"inBack":     ease.InBack,
	"outBack":    ease.OutBack, // overshoots past the target, hence no upper progress clamp
	"inOutBack":  ease.InOutBack,
	"inElastic":  ease.InElastic,
	"outElastic": ease.OutElastic,
	"inBounce":   ease.InBounce,
	"outBounce":  ease.OutBounce,
}

// EaseByName resolves an easing name, falling back to linear with a warning.
func EaseByName(name string) ease.TweenFunc {
	if name == "" {
		return ease.Linear
	}
	if fn, ok := easeByName[name]; ok {
		return fn
	}
	warnf("unknown easing %q, falling back to linear", name)
	return ease.Linear
}

// progressDriver tweens one slot's progress toward its target.
type progressDriver struct {
	slotID   string
	tween    *gween.Tween
	decision Decision
	duration float32
	easeFn   ease.TweenFunc
	stopped  bool
}

// Animator owns the event-mode progress drivers. One driver per slot at
// most: starting a run cancels whatever was active through the Store's
// cleanup registry. Pump it once per frame with Update.
type Animator struct {
	store   *Store
	drivers map[string]*progressDriver
}

// NewAnimator creates an animator bound to a store.
func NewAnimator(store *Store) *Animator {
	return &Animator{
		store:   store,
		drivers: make(map[string]*progressDriver),
	}
}

// Start applies a decision to a slot: cancels any active driver, applies the
// instant-jump override, records the new intent, and attaches a tween from
// the current progress to the target. NoOp decisions return immediately.
func (a *Animator) Start(slotID string, d Decision, duration float32, fn ease.TweenFunc) {
	st := a.store.State(slotID)
	if st == nil {
		warnf("Start on unknown slot %q", slotID)
		return
	}
	if d.NoOp {
		return
	}

	// Interruption: at most one logical animation owns a slot's progress.
	a.store.CancelActiveAnimations(slotID)

	if d.HasOverrideStart {
		a.store.UpdateProgress(slotID, d.OverrideStartProgress, StatusRunning)
	}
	a.store.UpdateTarget(slotID, d.TargetProgress)

	if duration <= 0 {
		// Zero-duration runs complete on the spot.
		a.store.UpdateProgress(slotID, d.TargetProgress, StatusCompleted)
		a.finishRun(slotID, d, duration, fn)
		return
	}

	driver := &progressDriver{
		slotID:   slotID,
		tween:    gween.New(float32(st.Progress), float32(d.TargetProgress), duration, fn),
		decision: d,
		duration: duration,
		easeFn:   fn,
	}
	a.drivers[slotID] = driver
	a.store.RegisterCleanup(slotID, func() {
		driver.stopped = true
		if a.drivers[slotID] == driver {
			delete(a.drivers, slotID)
		}
	})
	a.store.UpdateProgress(slotID, st.Progress, StatusRunning)
}

// Update advances every driver by dt seconds. Completed drivers update the
// store (firing completion waiters) and may schedule follow-up work:
// the ping-pong return leg and the post-completion reset.
func (a *Animator) Update(dt float32) {
	// Snapshot the keys: completing a ping-pong leg starts the return leg,
	// which mutates the driver map mid-iteration. The new leg first advances
	// on the next frame.
	slotIDs := make([]string, 0, len(a.drivers))
	for slotID := range a.drivers {
		slotIDs = append(slotIDs, slotID)
	}
	for _, slotID := range slotIDs {
		a.tickDriver(slotID, dt)
	}
}

// tickDriver advances one driver, recovering per slot: a panic in one slot's
// tween or cleanup closures must not skip the remaining drivers' tick this
// frame.
func (a *Animator) tickDriver(slotID string, dt float32) {
	defer func() {
		if r := recover(); r != nil {
			delete(a.drivers, slotID)
			warnf("recovered from driver panic on slot %q: %v", slotID, r)
		}
	}()
	driver, ok := a.drivers[slotID]
	if !ok {
		return
	}
	if driver.stopped {
		delete(a.drivers, slotID)
		return
	}
	value, finished := driver.tween.Update(dt)
	if !finished {
		a.store.UpdateProgress(slotID, float64(value), StatusRunning)
		return
	}
	delete(a.drivers, slotID)
	a.store.CancelActiveAnimations(slotID)
	a.store.UpdateProgress(slotID, float64(value), StatusCompleted)
	a.finishRun(slotID, driver.decision, driver.duration, driver.easeFn)
}

// finishRun handles post-completion semantics for a decision.
//
// Ping-pong: a decision marked IsLoopIteration schedules the return leg to
// the opposite pole immediately, not loop-marked, with the same duration and
// easing. The second leg is ordinary — interrupting triggers cancel it like
// any other run.
//
// Reset: ShouldResetAfterCompletion snaps progress back to the run's start
// pole, leaving the slot idle there.
func (a *Animator) finishRun(slotID string, d Decision, duration float32, fn ease.TweenFunc) {
	if d.IsLoopIteration {
		opposite := 1 - d.TargetProgress
		st := a.store.State(slotID)
		if st == nil {
			return
		}
		returnLeg := Decision{
			TargetProgress: opposite,
			Direction:      directionToward(st.Progress, opposite),
		}
		a.Start(slotID, returnLeg, duration, fn)
		return
	}

	if d.ShouldResetAfterCompletion {
		start := 1 - d.TargetProgress
		a.store.UpdateProgress(slotID, start, StatusIdle)
		a.store.UpdateTarget(slotID, start)
	}
}

// HasDriver reports whether a slot currently has an attached driver.
func (a *Animator) HasDriver(slotID string) bool {
	_, ok := a.drivers[slotID]
	return ok
}

// DriverCount returns the number of attached drivers.
func (a *Animator) DriverCount() int {
	return len(a.drivers)
}

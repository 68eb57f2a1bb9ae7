package motive

// Engine wires the store, cache, animator, and scroll coordinator together
// behind the surface the host talks to. Collaborators receive the pieces by
// explicit reference — the engine is the only owner, there are no package
// singletons.
type Engine struct {
	store    *Store
	cache    *ConversionCache
	animator *Animator
	scroll   *ScrollCoordinator

	slots map[string]*AnimationSlot

	// Viewport size for conversions, updated by the host via SetViewport.
	viewportW, viewportH float64
	rootFontSize         float64

	scrollProgress float64
}

// NewEngine creates an engine with its own store, cache, animator, and
// scroll coordinator.
func NewEngine() *Engine {
	store := NewStore()
	return &Engine{
		store:    store,
		cache:    NewConversionCache(),
		animator: NewAnimator(store),
		scroll:   NewScrollCoordinator(),
		slots:    make(map[string]*AnimationSlot),
	}
}

// Store exposes the state store for direct host access (queries, waiters,
// serialization).
func (e *Engine) Store() *Store { return e.store }

// Cache exposes the conversion cache (for resize notifications).
func (e *Engine) Cache() *ConversionCache { return e.cache }

// Animator exposes the event-mode driver pump.
func (e *Engine) Animator() *Animator { return e.animator }

// Scroll exposes the grouping coordinator.
func (e *Engine) Scroll() *ScrollCoordinator { return e.scroll }

// SetViewport records the viewport size used for unit conversion and clears
// the conversion cache when the size actually changed.
func (e *Engine) SetViewport(width, height float64) {
	if width == e.viewportW && height == e.viewportH {
		return
	}
	e.viewportW = width
	e.viewportH = height
	e.cache.HandleResize()
}

// SetRootFontSize records the document root font size for rem conversion.
func (e *Engine) SetRootFontSize(size float64) {
	e.rootFontSize = size
}

// RegisterSlot registers an immutable animation slot and initializes its
// state record. Scroll-mode slots are also registered with the coordinator.
// Registering an id twice overwrites the config but keeps existing state,
// so a re-render does not lose a slot's progress.
func (e *Engine) RegisterSlot(slot AnimationSlot) {
	if slot.ID == "" {
		panic("motive: slot needs an id")
	}
	s := slot // private copy; the registry owns it
	e.slots[slot.ID] = &s

	elementID := ""
	if s.Element != nil {
		elementID = s.Element.Name
	}
	if e.store.State(s.ID) == nil {
		e.store.InitializeState(s.ID, elementID, 0, 0)
	}

	if s.Mode == ModeScroll && s.Element != nil {
		e.scroll.AddTarget(&ScrollTarget{
			Element:       s.Element,
			StaggerOffset: s.StaggerOffset,
			StaggerWindow: s.StaggerWindow,
			Tracks:        s.Tracks,
		})
	}
	debugCheckSlotCount(len(e.slots))
}

// Unregister removes a slot and every trace of it: config, state, waiters,
// active drivers, and scroll targets.
func (e *Engine) Unregister(slotID string) {
	slot, ok := e.slots[slotID]
	if !ok {
		return
	}
	delete(e.slots, slotID)
	e.store.Cleanup(slotID)
	if slot.Mode == ModeScroll && slot.Element != nil {
		e.scroll.RemoveTarget(slot.Element)
	}
}

// Slot returns the registered config for an id, or nil.
func (e *Engine) Slot(slotID string) *AnimationSlot {
	return e.slots[slotID]
}

// HandleTrigger fires an external event against a slot. The slot's ordered
// trigger list is matched first-wins; the matched behavior is decided
// against current state and applied through the animator. Unknown slots and
// unmatched events are no-ops with a warning.
func (e *Engine) HandleTrigger(slotID, event string) {
	defer func() {
		if r := recover(); r != nil {
			warnf("recovered from trigger %q on slot %q: %v", event, slotID, r)
		}
	}()
	slot, ok := e.slots[slotID]
	if !ok {
		warnf("trigger %q on unknown slot %q", event, slotID)
		return
	}
	for _, trig := range slot.Triggers {
		if trig.Event != event {
			continue
		}
		d := Decide(e.store.State(slotID), trig.Behavior, trig.Override)
		e.animator.Start(slotID, d, slot.Duration, EaseByName(slot.Easing))
		return
	}
	warnf("slot %q has no trigger for event %q", slotID, event)
}

// DecideBehavior exposes the pure decision engine against a slot's live
// state, for hosts that drive progress themselves.
func (e *Engine) DecideBehavior(slotID string, b Behavior, override bool) Decision {
	return Decide(e.store.State(slotID), b, override)
}

// SetScrollProgress records the global scroll progress for scroll-mode
// slots. The value is applied on the next Update with an applier, or
// immediately via ApplyScroll.
func (e *Engine) SetScrollProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	e.scrollProgress = p
}

// ApplyScroll resolves every scroll target at the current scroll progress
// and pushes the values through the applier.
func (e *Engine) ApplyScroll(applier StyleApplier) {
	e.scroll.Apply(e.scrollProgress, e.cache, e.viewportW, e.viewportH, applier)
}

// Update is the per-frame pump for event-mode animations. A panicking
// driver is recovered and logged: one faulty animation must never stop the
// others sharing the frame driver.
func (e *Engine) Update(dt float32) {
	defer func() {
		if r := recover(); r != nil {
			warnf("recovered from animation pump panic: %v", r)
		}
	}()
	e.animator.Update(dt)
}

// Resolve computes the current pixel value of every track of a slot at its
// present progress. Scroll-mode slots resolve at their shaped scroll
// progress; event-mode slots at their stored progress.
func (e *Engine) Resolve(slotID string) map[string]float64 {
	slot, ok := e.slots[slotID]
	if !ok {
		warnf("Resolve on unknown slot %q", slotID)
		return nil
	}

	var progress float64
	if slot.Mode == ModeScroll {
		progress = IndividualProgress(e.scrollProgress, slot.StaggerOffset, slot.StaggerWindow)
	} else if st := e.store.State(slotID); st != nil {
		progress = st.Progress
	}

	ctx := slot.Element.Context(e.viewportW, e.viewportH, e.rootFontSize)
	values := make(map[string]float64, len(slot.Tracks))
	for _, tr := range slot.Tracks {
		// The mixed percent/pixel case depends on progress and stays out of
		// the cache; plain endpoints convert through it.
		if m, ok := InterpolateMixed(tr.From, tr.To, progress); ok {
			values[tr.Property] = m.ToPixels(ctx, tr.Property)
			continue
		}
		fromPx := e.cache.Convert(tr.From, slot.Element, tr.Property, ctx)
		toPx := e.cache.Convert(tr.To, slot.Element, tr.Property, ctx)
		values[tr.Property] = fromPx + (toPx-fromPx)*progress
	}
	return values
}

// Apply resolves a slot and pushes the values to the applier.
func (e *Engine) Apply(slotID string, applier StyleApplier) {
	slot, ok := e.slots[slotID]
	if !ok || slot.Element == nil {
		return
	}
	if values := e.Resolve(slotID); values != nil {
		applier.Apply(slot.Element, values)
	}
}

// SerializeStates snapshots all slot states for the breakpoint-persistence
// host. The engine makes no assumption about when the host calls this.
func (e *Engine) SerializeStates() ([]byte, error) {
	return e.store.MarshalStates()
}

// RestoreStates restores a snapshot taken before a destructive remount.
func (e *Engine) RestoreStates(data []byte) error {
	return e.store.UnmarshalStates(data)
}

// CleanupAll tears down every slot.
func (e *Engine) CleanupAll() {
	for id := range e.slots {
		e.Unregister(id)
	}
}

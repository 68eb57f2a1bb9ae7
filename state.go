package motive

import (
	"encoding/json"
	"fmt"
	"time"
)

// AnimationState is the mutable record for one slot. Created by
// InitializeState, mutated only through Store methods, removed by Cleanup.
type AnimationState struct {
	Progress       float64 // current position; >= 0, may exceed 1 for overshoot
	TargetProgress float64 // current intent, typically 0 or 1
	Status         Status
	Direction      Direction
	ElementID      string    // debug correlation only
	LastUpdated    time.Time // stamped on every progress write
}

// Store owns one AnimationState per slot plus the completion-waiter and
// cleanup registries. All access happens on the host's single logical thread
// of control; there is no locking anywhere in the store.
type Store struct {
	states   map[string]*AnimationState
	waiters  map[string][]chan struct{}
	cleanups map[string][]func()
}

// NewStore creates an empty state store.
func NewStore() *Store {
	return &Store{
		states:   make(map[string]*AnimationState),
		waiters:  make(map[string][]chan struct{}),
		cleanups: make(map[string][]func()),
	}
}

// InitializeState creates the state record for a slot with status idle.
// Re-initializing an existing slot overwrites silently; avoiding that is the
// caller's responsibility.
func (s *Store) InitializeState(slotID, elementID string, initialProgress, initialTarget float64) {
	if initialProgress < 0 {
		initialProgress = 0
	}
	s.states[slotID] = &AnimationState{
		Progress:       initialProgress,
		TargetProgress: initialTarget,
		Status:         StatusIdle,
		Direction:      DirectionForward,
		ElementID:      elementID,
		LastUpdated:    time.Now(),
	}
}

// State returns the slot's state record, or nil if the slot is unknown.
// The returned pointer is live; callers must not mutate it directly.
func (s *Store) State(slotID string) *AnimationState {
	return s.states[slotID]
}

// UpdateProgress writes a new progress value and status. Progress is clamped
// to >= 0 but has no upper clamp (overshoot and spring easing run past 1).
// A transition into StatusCompleted fires all registered completion waiters
// for the slot, exactly once.
func (s *Store) UpdateProgress(slotID string, progress float64, status Status) {
	st, ok := s.states[slotID]
	if !ok {
		warnf("UpdateProgress on unknown slot %q", slotID)
		return
	}
	if progress < 0 {
		progress = 0
	}
	st.Progress = progress
	st.Status = status
	st.LastUpdated = time.Now()

	if status == StatusCompleted {
		s.fireCompletion(slotID)
	}
}

// UpdateTarget updates intent without touching progress. Triggers call this
// immediately, even if the visual animation has not caught up, so a rapid
// double-trigger reflects the latest intent rather than queuing stale ones.
func (s *Store) UpdateTarget(slotID string, target float64) {
	st, ok := s.states[slotID]
	if !ok {
		warnf("UpdateTarget on unknown slot %q", slotID)
		return
	}
	st.TargetProgress = target
	switch {
	case target > st.Progress:
		st.Direction = DirectionForward
	case target < st.Progress:
		st.Direction = DirectionBackward
	}
	// Equal target keeps the previous direction.
}

// SyncTargetWithProgress forces target to equal current progress. Used to
// repair drift when a run completes at a value that differs from the
// originally requested target (e.g. after an interruption).
func (s *Store) SyncTargetWithProgress(slotID string) {
	st, ok := s.states[slotID]
	if !ok {
		warnf("SyncTargetWithProgress on unknown slot %q", slotID)
		return
	}
	st.TargetProgress = st.Progress
}

// ResetSlotState returns a slot to progress 0, target 0, status idle.
// Active drivers are cancelled first.
func (s *Store) ResetSlotState(slotID string) {
	st, ok := s.states[slotID]
	if !ok {
		warnf("ResetSlotState on unknown slot %q", slotID)
		return
	}
	s.CancelActiveAnimations(slotID)
	st.Progress = 0
	st.TargetProgress = 0
	st.Status = StatusIdle
	st.Direction = DirectionForward
	st.LastUpdated = time.Now()
}

// --- Completion waiters ---

// WaitForCompletion returns a channel closed the next time the slot's status
// transitions to completed. If the slot is already completed, the channel is
// closed on return. Single-shot: each returned channel is closed at most
// once and the registration is then cleared.
func (s *Store) WaitForCompletion(slotID string) <-chan struct{} {
	ch := make(chan struct{})
	st, ok := s.states[slotID]
	if ok && st.Status == StatusCompleted {
		close(ch)
		return ch
	}
	if !ok {
		warnf("WaitForCompletion on unknown slot %q", slotID)
		close(ch)
		return ch
	}
	s.waiters[slotID] = append(s.waiters[slotID], ch)
	return ch
}

// fireCompletion closes and clears all waiters for the slot.
func (s *Store) fireCompletion(slotID string) {
	for _, ch := range s.waiters[slotID] {
		close(ch)
	}
	delete(s.waiters, slotID)
}

// --- Cleanup registry (interruption) ---

// RegisterCleanup registers a closure that stops an in-flight driver for the
// slot (e.g. a tween's stop function). A new trigger on an already-animating
// slot calls CancelActiveAnimations before applying its decision,
// guaranteeing at most one active driver per slot.
func (s *Store) RegisterCleanup(slotID string, fn func()) {
	if _, ok := s.states[slotID]; !ok {
		warnf("RegisterCleanup on unknown slot %q", slotID)
		return
	}
	s.cleanups[slotID] = append(s.cleanups[slotID], fn)
}

// CancelActiveAnimations invokes and clears every registered cleanup for the
// slot. Cancellation is cooperative: each closure is expected to stop its own
// driver promptly.
func (s *Store) CancelActiveAnimations(slotID string) {
	fns := s.cleanups[slotID]
	if len(fns) == 0 {
		return
	}
	delete(s.cleanups, slotID)
	for _, fn := range fns {
		fn()
	}
}

// --- Queries ---

// IsAtStart reports whether the slot's progress sits at 0 (within epsilon).
// Unknown slots report false.
func (s *Store) IsAtStart(slotID string) bool {
	st, ok := s.states[slotID]
	return ok && absFloat(st.Progress) <= poleEpsilon
}

// IsAtEnd reports whether the slot's progress sits at 1 (within epsilon).
func (s *Store) IsAtEnd(slotID string) bool {
	st, ok := s.states[slotID]
	return ok && absFloat(st.Progress-1) <= poleEpsilon
}

// ActiveSlots returns the ids of all slots whose status is running.
func (s *Store) ActiveSlots() []string {
	var ids []string
	for id, st := range s.states {
		if st.Status == StatusRunning {
			ids = append(ids, id)
		}
	}
	return ids
}

// HasRunningAnimations reports whether any slot is currently running.
func (s *Store) HasRunningAnimations() bool {
	for _, st := range s.states {
		if st.Status == StatusRunning {
			return true
		}
	}
	return false
}

// --- Cleanup ---

// Cleanup cancels active drivers and removes all record of the slot.
func (s *Store) Cleanup(slotID string) {
	s.CancelActiveAnimations(slotID)
	// Pending waiters resolve on cleanup rather than leaking forever.
	s.fireCompletion(slotID)
	delete(s.states, slotID)
}

// CleanupAll removes every slot.
func (s *Store) CleanupAll() {
	for id := range s.states {
		s.Cleanup(id)
	}
}

// --- Serialization (breakpoint remount survival) ---

// SlotSnapshot is the serialized form of one slot's state. LastUpdated is
// carried for debugging but intentionally refreshed on restore.
type SlotSnapshot struct {
	Progress       float64 `json:"progress"`
	TargetProgress float64 `json:"targetProgress"`
	Status         string  `json:"status"`
	Direction      string  `json:"direction,omitempty"`
	ElementID      string  `json:"elementId,omitempty"`
	LastUpdated    int64   `json:"lastUpdated,omitempty"` // unix milliseconds
}

// SerializeAll produces a plain slot-id -> snapshot mapping of every state.
func (s *Store) SerializeAll() map[string]SlotSnapshot {
	out := make(map[string]SlotSnapshot, len(s.states))
	for id, st := range s.states {
		out[id] = SlotSnapshot{
			Progress:       st.Progress,
			TargetProgress: st.TargetProgress,
			Status:         st.Status.String(),
			Direction:      st.Direction.String(),
			ElementID:      st.ElementID,
			LastUpdated:    st.LastUpdated.UnixMilli(),
		}
	}
	return out
}

// RestoreAll consumes a snapshot mapping, replacing any existing state for
// the slots it names. Missing fields default (progress 0, target 0, status
// idle, direction forward) rather than failing — snapshots taken before a
// destructive remount may be lossy or partial. LastUpdated is reset to now.
func (s *Store) RestoreAll(data map[string]SlotSnapshot) {
	now := time.Now()
	for id, snap := range data {
		progress := snap.Progress
		if progress < 0 {
			progress = 0
		}
		dir := DirectionForward
		if snap.Direction == "backward" {
			dir = DirectionBackward
		}
		s.states[id] = &AnimationState{
			Progress:       progress,
			TargetProgress: snap.TargetProgress,
			Status:         statusFromString(snap.Status),
			Direction:      dir,
			ElementID:      snap.ElementID,
			LastUpdated:    now,
		}
	}
}

// MarshalStates encodes the full snapshot mapping as JSON, for hosts that
// persist state as an opaque blob across remounts.
func (s *Store) MarshalStates() ([]byte, error) {
	data, err := json.Marshal(s.SerializeAll())
	if err != nil {
		return nil, fmt.Errorf("marshal states: %w", err)
	}
	return data, nil
}

// UnmarshalStates decodes a JSON blob produced by MarshalStates and restores
// it. A malformed blob is an error; individual missing fields are not.
func (s *Store) UnmarshalStates(data []byte) error {
	var snaps map[string]SlotSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return fmt.Errorf("unmarshal states: %w", err)
	}
	s.RestoreAll(snaps)
	return nil
}

package motive

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a trigger script.
type scriptStep struct {
	Action   string  `json:"action"`
	Slot     string  `json:"slot,omitempty"`
	Event    string  `json:"event,omitempty"`
	Progress float64 `json:"progress,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// triggerScript is the top-level JSON structure for a script.
type triggerScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences trigger and scroll actions against an engine,
// frame by frame, for headless and automated runs. Supported actions:
//
//	{"action": "trigger", "slot": "hero", "event": "click"}
//	{"action": "scroll", "progress": 0.5}
//	{"action": "wait", "frames": 30}
//
// Unknown actions warn and are skipped.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTriggerScript parses a JSON trigger script.
func LoadTriggerScript(data []byte) (*ScriptRunner, error) {
	var script triggerScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse trigger script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse trigger script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step executes script actions for one frame. Instant actions (trigger,
// scroll) run back to back within the same frame; a wait step consumes the
// requested number of frames before the script continues.
func (r *ScriptRunner) Step(eng *Engine) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}

	for r.cursor < len(r.steps) {
		step := r.steps[r.cursor]
		r.cursor++

		switch step.Action {
		case "trigger":
			eng.HandleTrigger(step.Slot, step.Event)
		case "scroll":
			eng.SetScrollProgress(step.Progress)
		case "wait":
			frames := step.Frames
			if frames < 1 {
				frames = 1
			}
			// This frame counts as the first waited frame.
			r.waitCount = frames - 1
			return
		default:
			warnf("trigger script: unknown action %q, skipping", step.Action)
		}
	}
	r.done = true
}

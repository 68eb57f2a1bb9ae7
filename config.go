package motive

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML slot definitions. Behavior and easing strings are normalized once
// here, at load time — deprecated behavior aliases never reach the decision
// engine.

type slotConfig struct {
	ID       string       `yaml:"id"`
	Element  string       `yaml:"element"`
	Mode     string       `yaml:"mode"` // "event" (default) or "scroll"
	Duration float32      `yaml:"duration"`
	Easing   string       `yaml:"easing"`
	Triggers []triggerDef `yaml:"triggers"`
	Tracks   []trackDef   `yaml:"tracks"`
	Stagger  staggerDef   `yaml:"stagger"`
}

type triggerDef struct {
	Event    string `yaml:"event"`
	Behavior string `yaml:"behavior"`
	Override bool   `yaml:"override"`
}

type trackDef struct {
	Property string `yaml:"property"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

type staggerDef struct {
	Offset float64 `yaml:"offset"`
	Window float64 `yaml:"window"`
}

type slotFile struct {
	Slots []slotConfig `yaml:"slots"`
}

// LoadSlotConfig parses YAML slot definitions into AnimationSlots, resolving
// element names through the resolver (first match wins; a slot whose element
// resolves to nothing keeps a nil element and still animates state).
// Behavior names go through ParseBehavior, so aliases and unknown names
// degrade with warnings instead of failing the load.
func LoadSlotConfig(data []byte, resolver ElementResolver) ([]AnimationSlot, error) {
	var file slotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse slot config: %w", err)
	}
	if len(file.Slots) == 0 {
		return nil, fmt.Errorf("parse slot config: no slots")
	}

	slots := make([]AnimationSlot, 0, len(file.Slots))
	for i, sc := range file.Slots {
		if sc.ID == "" {
			return nil, fmt.Errorf("parse slot config: slot %d has no id", i)
		}

		slot := AnimationSlot{
			ID:            sc.ID,
			Duration:      sc.Duration,
			Easing:        sc.Easing,
			StaggerOffset: sc.Stagger.Offset,
			StaggerWindow: sc.Stagger.Window,
		}

		switch sc.Mode {
		case "", "event":
			slot.Mode = ModeEvent
		case "scroll":
			slot.Mode = ModeScroll
		default:
			warnf("slot %q: unknown mode %q, treating as event", sc.ID, sc.Mode)
			slot.Mode = ModeEvent
		}

		if resolver != nil && sc.Element != "" {
			if els := resolver.Resolve(sc.Element); len(els) > 0 {
				slot.Element = els[0]
			} else {
				warnf("slot %q: element %q resolved to nothing", sc.ID, sc.Element)
			}
		}

		for _, td := range sc.Triggers {
			slot.Triggers = append(slot.Triggers, TriggerSpec{
				Event:    td.Event,
				Behavior: ParseBehavior(td.Behavior),
				Override: td.Override,
			})
		}
		for _, td := range sc.Tracks {
			slot.Tracks = append(slot.Tracks, PropertyTrack{
				Property: td.Property,
				From:     td.From,
				To:       td.To,
			})
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// MarshalSlotConfig serializes slots back to YAML, with behaviors in their
// canonical modern names. Round-tripping a config therefore also migrates
// its deprecated aliases.
func MarshalSlotConfig(slots []AnimationSlot) ([]byte, error) {
	file := slotFile{Slots: make([]slotConfig, 0, len(slots))}
	for _, s := range slots {
		sc := slotConfig{
			ID:       s.ID,
			Duration: s.Duration,
			Easing:   s.Easing,
			Stagger:  staggerDef{Offset: s.StaggerOffset, Window: s.StaggerWindow},
		}
		if s.Element != nil {
			sc.Element = s.Element.Name
		}
		if s.Mode == ModeScroll {
			sc.Mode = "scroll"
		} else {
			sc.Mode = "event"
		}
		for _, t := range s.Triggers {
			sc.Triggers = append(sc.Triggers, triggerDef{
				Event:    t.Event,
				Behavior: t.Behavior.String(),
				Override: t.Override,
			})
		}
		for _, t := range s.Tracks {
			sc.Tracks = append(sc.Tracks, trackDef{Property: t.Property, From: t.From, To: t.To})
		}
		file.Slots = append(file.Slots, sc)
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("marshal slot config: %w", err)
	}
	return data, nil
}

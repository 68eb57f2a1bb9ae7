package motive

import (
	"math"
	"strconv"
	"strings"
)

// groupPrecision is the rounding applied to individual progress values when
// forming group keys: 3 decimal places. Elements whose shaped progress
// agrees to a thousandth share one resolution.
const groupPrecision = 1000

// ScrollTarget binds one element to a shared scroll window.
type ScrollTarget struct {
	Element *Element

	// StaggerOffset delays this element's window start within the global
	// [0,1] progress; StaggerWindow is the width of its active window.
	// Zero window means the full range.
	StaggerOffset float64
	StaggerWindow float64

	// Tracks resolved for this element at its shaped progress.
	Tracks []PropertyTrack

	// PerElement forces the element-specific path even inside a group.
	// Set it when the target's values are distributed per element (unique
	// geometry-relative patterns that only coincide at the pole positions).
	PerElement bool
}

// signature returns a grouping key component covering the track set, so a
// group broadcast is only ever applied across identical value definitions.
// Geometry-dependent track sets (percentages, em, any calc) additionally fold
// the element's geometry into the key: two elements share a group only when
// the tracks would resolve to the same pixels for both.
func (t *ScrollTarget) signature() string {
	var b strings.Builder
	geometry := false
	for _, tr := range t.Tracks {
		b.WriteString(tr.Property)
		b.WriteByte('\x1f')
		b.WriteString(tr.From)
		b.WriteByte('\x1f')
		b.WriteString(tr.To)
		b.WriteByte('\x1e')
		if !geometry && (dependsOnGeometry(tr.From) || dependsOnGeometry(tr.To)) {
			geometry = true
		}
	}
	if geometry {
		writeDim(&b, t.Element.Width)
		writeDim(&b, t.Element.Height)
		writeDim(&b, t.Element.FontSize)
		if t.Element.Parent != nil {
			writeDim(&b, t.Element.Parent.Width)
			writeDim(&b, t.Element.Parent.Height)
		}
	}
	return b.String()
}

// dependsOnGeometry reports whether a value string resolves against the
// element's own geometry. Calc expressions count wholesale; scanning their
// bodies for %/em terms is not worth the parse.
func dependsOnGeometry(raw string) bool {
	v := ParseValue(raw)
	switch v.Kind {
	case ValueCalc:
		return true
	case ValueSimple:
		return v.Unit == "%" || v.Unit == "em"
	}
	return false
}

func writeDim(b *strings.Builder, v float64) {
	b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	b.WriteByte('\x1f')
}

// groupKey buckets targets that can share one resolution.
type groupKey struct {
	progress  int // rounded to groupPrecision
	signature string
}

// ScrollCoordinator turns one global scroll progress into per-element
// property values, resolving each unique (rounded progress, track set) group
// once instead of once per element. For non-staggered animations this
// collapses the per-frame cost from O(n) to O(1); typical stagger counts
// produce a small constant number of groups.
type ScrollCoordinator struct {
	targets []*ScrollTarget

	// ResolutionCount accumulates how many track-set resolutions have been
	// performed, for tests and benchmarks comparing against the naive path.
	ResolutionCount int

	// group buckets, reused across frames
	groups map[groupKey][]*ScrollTarget
}

// NewScrollCoordinator creates an empty coordinator.
func NewScrollCoordinator() *ScrollCoordinator {
	return &ScrollCoordinator{
		groups: make(map[groupKey][]*ScrollTarget),
	}
}

// AddTarget registers an element with the coordinator. Panics on a nil
// element; everything else about the target is legal.
func (c *ScrollCoordinator) AddTarget(t *ScrollTarget) {
	if t.Element == nil {
		panic("motive: scroll target needs an element")
	}
	c.targets = append(c.targets, t)
}

// RemoveTarget unregisters every target bound to the element.
func (c *ScrollCoordinator) RemoveTarget(el *Element) {
	kept := c.targets[:0]
	for _, t := range c.targets {
		if t.Element != el {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(c.targets); i++ {
		c.targets[i] = nil
	}
	c.targets = kept
}

// TargetCount returns the number of registered targets.
func (c *ScrollCoordinator) TargetCount() int {
	return len(c.targets)
}

// IndividualProgress shapes the global progress through a target's stagger
// window: 0 before the window opens, 1 after it closes, linear inside.
func IndividualProgress(global, offset, window float64) float64 {
	if window <= 0 {
		window = 1
	}
	p := (global - offset) / window
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Apply computes every target's property values for the given global
// progress and hands them to the applier. Targets sharing a rounded progress
// and an identical track set are resolved once and broadcast; singleton
// groups and PerElement targets go through the element-specific path.
// Both paths produce identical values — grouping only changes how many
// resolutions happen.
func (c *ScrollCoordinator) Apply(globalProgress float64, cache *ConversionCache, viewportW, viewportH float64, applier StyleApplier) {
	clear(c.groups)

	for _, t := range c.targets {
		if t.Element.IsDisposed() {
			continue
		}
		if t.PerElement {
			c.applySolo(t, globalProgress, cache, viewportW, viewportH, applier)
			continue
		}
		p := IndividualProgress(globalProgress, t.StaggerOffset, t.StaggerWindow)
		key := groupKey{
			progress:  int(math.Round(p * groupPrecision)),
			signature: t.signature(),
		}
		c.groups[key] = append(c.groups[key], t)
	}

	for key, members := range c.groups {
		if len(members) == 1 {
			// Element-specific path: a lone member may carry geometry-
			// dependent units no other element shares.
			c.applySolo(members[0], globalProgress, cache, viewportW, viewportH, applier)
			continue
		}
		// Shared path: resolve once with the group's progress and broadcast.
		progress := float64(key.progress) / groupPrecision
		values := c.resolveTracks(members[0], progress, cache, viewportW, viewportH)
		for _, t := range members {
			applier.Apply(t.Element, values)
		}
	}
}

// applySolo resolves one target's tracks at its own shaped progress.
func (c *ScrollCoordinator) applySolo(t *ScrollTarget, globalProgress float64, cache *ConversionCache, viewportW, viewportH float64, applier StyleApplier) {
	p := IndividualProgress(globalProgress, t.StaggerOffset, t.StaggerWindow)
	p = math.Round(p*groupPrecision) / groupPrecision
	applier.Apply(t.Element, c.resolveTracks(t, p, cache, viewportW, viewportH))
}

// resolveTracks interpolates every track of a target at the given progress.
// Endpoint conversions go through the conversion cache; the percent/pixel
// mixed case resolves in component form (it depends on progress, which would
// poison a (value, element, property) cache key).
func (c *ScrollCoordinator) resolveTracks(t *ScrollTarget, progress float64, cache *ConversionCache, viewportW, viewportH float64) map[string]float64 {
	c.ResolutionCount++
	ctx := t.Element.Context(viewportW, viewportH, 0)
	values := make(map[string]float64, len(t.Tracks))
	for _, tr := range t.Tracks {
		if m, ok := InterpolateMixed(tr.From, tr.To, progress); ok {
			values[tr.Property] = m.ToPixels(ctx, tr.Property)
			continue
		}
		if cache == nil {
			values[tr.Property] = InterpolateUnits(tr.From, tr.To, progress, ctx, tr.Property)
			continue
		}
		fromPx := cache.Convert(tr.From, t.Element, tr.Property, ctx)
		toPx := cache.Convert(tr.To, t.Element, tr.Property, ctx)
		values[tr.Property] = fromPx + (toPx-fromPx)*progress
	}
	return values
}

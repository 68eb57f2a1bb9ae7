package motive

import "fmt"

// elementIDCounter is a plain counter (no atomic — motive is single-threaded).
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is the engine's view of one animated DOM-like element: enough
// geometry to resolve relative units, plus identity for cache keying.
// Elements carry no visual state — rendering belongs to the host.
type Element struct {
	ID   uint32
	Name string

	// Geometry in pixels. Zero is a legal size (conversion falls back per
	// unit category), but hosts should keep these current via SetSize.
	Width, Height float64

	// FontSize is the element's own font size for em conversion.
	// Zero means "unknown" and falls back to the 16px default.
	FontSize float64

	Parent *Element

	disposed bool
}

// NewElement creates an element with the given name and size.
func NewElement(name string, width, height float64) *Element {
	return &Element{
		ID:     nextElementID(),
		Name:   name,
		Width:  width,
		Height: height,
	}
}

// SetSize updates the element's geometry. The host calls this when layout
// changes; a ConversionCache resize clear usually accompanies it.
func (e *Element) SetSize(width, height float64) {
	e.Width = width
	e.Height = height
}

// SetParent attaches a parent element for percentage resolution.
// Panics on self-parenting or a parent cycle, mirroring the host tree's own
// invariants.
func (e *Element) SetParent(parent *Element) {
	for p := parent; p != nil; p = p.Parent {
		if p == e {
			panic(fmt.Sprintf("motive: element %q cannot be its own ancestor", e.Name))
		}
	}
	e.Parent = parent
}

// Context builds a ConversionContext for this element against the given
// viewport. A nil receiver yields a viewport-only context, which unit
// conversion handles via its documented fallbacks.
func (e *Element) Context(viewportW, viewportH, rootFontSize float64) ConversionContext {
	ctx := ConversionContext{
		ViewportWidth:  viewportW,
		ViewportHeight: viewportH,
		RootFontSize:   rootFontSize,
	}
	if e == nil {
		return ctx
	}
	ctx.ElementWidth = e.Width
	ctx.ElementHeight = e.Height
	ctx.FontSize = e.FontSize
	if e.Parent != nil {
		ctx.ParentWidth = e.Parent.Width
		ctx.ParentHeight = e.Parent.Height
	}
	return ctx
}

// Dispose marks the element as dead. Animators and coordinators skip
// disposed elements on their next pass; there is no forced interruption.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.ID = 0
	e.Parent = nil
}

// IsDisposed reports whether the element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// ElementResolver is the host-side contract that turns a slot's declarative
// selection criteria into concrete elements. Motive never walks the host's
// tree itself.
type ElementResolver interface {
	Resolve(criteria string) []*Element
}

// StyleApplier is the host-side contract for pushing resolved values onto a
// live element. Implementations must be idempotent and last-write-wins.
type StyleApplier interface {
	Apply(el *Element, values map[string]float64)
}

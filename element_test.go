package motive

import "testing"

func TestNewElementAssignsUniqueIDs(t *testing.T) {
	a := NewElement("a", 10, 10)
	b := NewElement("b", 10, 10)
	if a.ID == b.ID {
		t.Errorf("elements share id %d", a.ID)
	}
	if a.ID == 0 || b.ID == 0 {
		t.Error("live elements must not carry the zero id")
	}
}

func TestElementContext(t *testing.T) {
	parent := NewElement("parent", 400, 300)
	el := NewElement("child", 200, 100)
	el.FontSize = 20
	el.SetParent(parent)

	ctx := el.Context(1280, 720, 18)
	want := ConversionContext{
		ViewportWidth:  1280,
		ViewportHeight: 720,
		ParentWidth:    400,
		ParentHeight:   300,
		ElementWidth:   200,
		ElementHeight:  100,
		FontSize:       20,
		RootFontSize:   18,
	}
	if ctx != want {
		t.Errorf("Context() = %+v, want %+v", ctx, want)
	}
}

func TestElementContextWithoutParent(t *testing.T) {
	el := NewElement("orphan", 200, 100)
	ctx := el.Context(1280, 720, 16)
	if ctx.ParentWidth != 0 || ctx.ParentHeight != 0 {
		t.Errorf("orphan parent dims = %v/%v, want zeros", ctx.ParentWidth, ctx.ParentHeight)
	}
}

func TestElementContextNilReceiver(t *testing.T) {
	var el *Element
	ctx := el.Context(1280, 720, 16)
	if ctx.ViewportWidth != 1280 || ctx.ViewportHeight != 720 {
		t.Errorf("nil element context = %+v, want viewport-only", ctx)
	}
	if ctx.ElementWidth != 0 {
		t.Error("nil element should contribute no geometry")
	}
}

func TestSetSize(t *testing.T) {
	el := NewElement("box", 100, 100)
	el.SetSize(640, 480)
	if el.Width != 640 || el.Height != 480 {
		t.Errorf("size = %v x %v, want 640 x 480", el.Width, el.Height)
	}
}

func TestSetParentCyclePanics(t *testing.T) {
	a := NewElement("a", 10, 10)
	b := NewElement("b", 10, 10)
	b.SetParent(a)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on parent cycle")
		}
	}()
	a.SetParent(b)
}

func TestSetParentSelfPanics(t *testing.T) {
	a := NewElement("a", 10, 10)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on self-parenting")
		}
	}()
	a.SetParent(a)
}

func TestDispose(t *testing.T) {
	parent := NewElement("parent", 10, 10)
	el := NewElement("doomed", 10, 10)
	el.SetParent(parent)

	el.Dispose()
	if !el.IsDisposed() {
		t.Error("IsDisposed = false after Dispose")
	}
	if el.ID != 0 {
		t.Error("disposed element keeps its id")
	}
	if el.Parent != nil {
		t.Error("disposed element keeps its parent link")
	}

	// Idempotent.
	el.Dispose()
	if !el.IsDisposed() {
		t.Error("second Dispose un-disposed the element")
	}
}

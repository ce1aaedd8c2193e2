package layout

import "testing"

func TestRectangleExpands(t *testing.T) {
	tests := []struct {
		name     string
		rect     Rectangle
		proposed Constraints
		want     Size
	}{
		{"finite", Rectangle{}, Propose(120, 40), Size{120, 40}},
		{"infinite width", Rectangle{}, Propose(Infinity, 40), Size{DefaultExpandLength, 40}},
		{"both infinite", Rectangle{}, Unbounded(), Size{10, 10}},
		{"custom default", Rectangle{InfinityDefault: 24}, Propose(Infinity, Infinity), Size{24, 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.rect
			p := mustMeasure(t, &r, tt.proposed)
			if p.Size != tt.want {
				t.Errorf("Size = %v, want %v", p.Size, tt.want)
			}
		})
	}
}

func TestImageResizing(t *testing.T) {
	natural := Size{200, 100}
	tests := []struct {
		mode     ResizingMode
		proposed Constraints
		want     Size
	}{
		{ResizeNone, Propose(50, 50), Size{200, 100}},
		{ResizeStretch, Propose(50, 70), Size{50, 70}},
		{ResizeStretch, Propose(50, Infinity), Size{50, 100}},
		{ResizeFit, Propose(100, 100), Size{100, 50}},
		{ResizeFit, Propose(400, 100), Size{200, 100}},
		{ResizeFit, Propose(Infinity, 50), Size{100, 50}},
		{ResizeFill, Propose(100, 100), Size{200, 100}},
		{ResizeFill, Propose(400, 100), Size{400, 200}},
		{ResizeFit, Unbounded(), Size{200, 100}},
	}

	for _, tt := range tests {
		im := &Image{Intrinsic: natural, Resizing: tt.mode, Source: "hero.png"}
		p := mustMeasure(t, im, tt.proposed)
		if p.Size != tt.want {
			t.Errorf("%s at %v: Size = %v, want %v", tt.mode, tt.proposed, p.Size, tt.want)
		}
		if p.Source != "hero.png" {
			t.Errorf("Source = %q, want hero.png", p.Source)
		}
	}
}

func TestImageFlexRange(t *testing.T) {
	fixed := &Image{Intrinsic: Size{200, 100}}
	if r, _ := fixed.FlexRange(Vertical, 0); r != Fixed(100) {
		t.Errorf("FlexRange() = %v, want %v", r, Fixed(100))
	}
	fit := &Image{Intrinsic: Size{200, 100}, Resizing: ResizeFit}
	if r, _ := fit.FlexRange(Vertical, 0); r != Flexible {
		t.Errorf("FlexRange() = %v, want %v", r, Flexible)
	}
}

func TestSpacer(t *testing.T) {
	s := &Spacer{Axis: Vertical, MinLength: 8}

	tests := []struct {
		proposed Constraints
		want     Size
	}{
		{Propose(100, 300), Size{0, 300}},
		{Propose(100, 4), Size{0, 8}},
		{Propose(100, Infinity), Size{0, 8}},
	}
	for _, tt := range tests {
		p := mustMeasure(t, s, tt.proposed)
		if p.Size != tt.want {
			t.Errorf("Measure(%v) = %v, want %v", tt.proposed, p.Size, tt.want)
		}
	}

	// A spacer pushes siblings to the ends of a stack.
	a, b := newProbe("a", 10, 20), newProbe("b", 10, 20)
	p := mustMeasure(t, VStack(Center, 0, a, &Spacer{Axis: Vertical}, b), Propose(50, 200))
	if got := childAt(t, p, 2).Offset.Y; got != 180 {
		t.Errorf("b Y = %d, want 180", got)
	}
}

func TestEmpty(t *testing.T) {
	p := mustMeasure(t, Empty{}, Propose(100, 100))
	if p.Size != (Size{}) {
		t.Errorf("Size = %v, want 0x0", p.Size)
	}
}

func TestParseResizingMode(t *testing.T) {
	for _, name := range []string{"none", "stretch", "fit", "fill"} {
		m, ok := ParseResizingMode(name)
		if !ok || m.String() != name {
			t.Errorf("ParseResizingMode(%q) = %v, %v", name, m, ok)
		}
	}
	if _, ok := ParseResizingMode("tile"); ok {
		t.Error("ParseResizingMode(tile) ok = true, want false")
	}
}

package layout

import "testing"

func TestBackgroundCollapsesToContent(t *testing.T) {
	content := newProbe("content", 80, 40)
	// A host view that would be 200x200 if allowed.
	deco := Conform(&Native{ID: "decoration", Natural: Size{200, 200}})

	p := mustMeasure(t, Background(content, deco, Center), Propose(500, 500))
	if want := (Size{80, 40}); p.Size != want {
		t.Fatalf("Size = %v, want %v", p.Size, want)
	}
	d := childAt(t, p, 1)
	if want := (Size{80, 40}); d.Placement.Size != want {
		t.Errorf("decoration Size = %v, want %v", d.Placement.Size, want)
	}
	if d.Offset != (Point{}) {
		t.Errorf("decoration Offset = %v, want origin", d.Offset)
	}
}

func TestDecorationProposedContentSize(t *testing.T) {
	content := newProbe("content", 80, 40)
	deco := &probe{name: "decoration", natural: Size{10, 10}, grow: true}

	p := mustMeasure(t, Overlay(content, deco, Center), Propose(500, 300))
	if got, want := content.lastMeasure(t), Propose(500, 300); got != want {
		t.Errorf("content constraints = %v, want %v", got, want)
	}
	if got, want := deco.lastMeasure(t), Propose(80, 40); got != want {
		t.Errorf("decoration constraints = %v, want %v", got, want)
	}
	if want := (Size{80, 40}); p.Size != want {
		t.Errorf("Size = %v, want %v", p.Size, want)
	}
}

func TestDecorationAlignment(t *testing.T) {
	tests := []struct {
		align Alignment
		want  Point
	}{
		{TopLeading, Point{0, 0}},
		{Top, Point{30, 0}},
		{TopTrailing, Point{60, 0}},
		{Leading, Point{0, 15}},
		{Center, Point{30, 15}},
		{Trailing, Point{60, 15}},
		{BottomLeading, Point{0, 30}},
		{Bottom, Point{30, 30}},
		{BottomTrailing, Point{60, 30}},
	}

	for _, tt := range tests {
		for _, overlay := range []bool{false, true} {
			d := &Decorated{
				Content:    newProbe("content", 80, 40),
				Decoration: newProbe("badge", 20, 10),
				Alignment:  tt.align,
				Overlay:    overlay,
			}
			p := mustMeasure(t, d, Propose(500, 500))
			if got := childAt(t, p, 1).Offset; got != tt.want {
				t.Errorf("%s %s: Offset = %v, want %v", d.Describe(), tt.align, got, tt.want)
			}
		}
	}
}

func TestDecorationLayers(t *testing.T) {
	tests := []struct {
		name    string
		node    *Decorated
		content Layer
		deco    Layer
	}{
		{"background", Background(newProbe("c", 10, 10), newProbe("d", 10, 10), Center), LayerContent, LayerBehind},
		{"overlay", Overlay(newProbe("c", 10, 10), newProbe("d", 10, 10), Center), LayerContent, LayerFront},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustMeasure(t, tt.node, Propose(100, 100))
			if got := childAt(t, p, 0).Layer; got != tt.content {
				t.Errorf("content Layer = %v, want %v", got, tt.content)
			}
			if got := childAt(t, p, 1).Layer; got != tt.deco {
				t.Errorf("decoration Layer = %v, want %v", got, tt.deco)
			}

			// Paint order: background first, overlay last.
			boxes := Flatten(p)
			var order []string
			for _, b := range boxes[1:] {
				order = append(order, b.Placement.ID)
			}
			want := []string{"d", "c"}
			if tt.node.Overlay {
				want = []string{"c", "d"}
			}
			if len(order) != 2 || order[0] != want[0] || order[1] != want[1] {
				t.Errorf("paint order = %v, want %v", order, want)
			}
		})
	}
}

func TestDecorationEmptyContent(t *testing.T) {
	deco := newProbe("decoration", 50, 50)
	d := Background(nil, deco, Center)

	p := mustMeasure(t, d, Propose(500, 500))
	if p.Size != (Size{}) {
		t.Errorf("Size = %v, want 0x0", p.Size)
	}
	if len(p.Children) != 0 {
		t.Errorf("Children = %d, want 0", len(p.Children))
	}
	if len(deco.measures) != 0 {
		t.Errorf("decoration measured %d times, want 0", len(deco.measures))
	}

	// A stack still spaces around the empty composite.
	stack := VStack(Center, 10, newProbe("a", 10, 10), d, newProbe("b", 10, 10))
	sp := mustMeasure(t, stack, Propose(100, Infinity))
	if want := (Size{10, 40}); sp.Size != want {
		t.Errorf("stack Size = %v, want %v", sp.Size, want)
	}

	r, err := d.FlexRange(Horizontal, Infinity)
	if err != nil || r != Fixed(0) {
		t.Errorf("FlexRange() = %v, %v, want 0..0", r, err)
	}
}

func TestDecorationFlexFollowsContent(t *testing.T) {
	d := Background(newProbe("content", 80, 40), &Rectangle{}, Center)
	r, err := d.FlexRange(Vertical, 100)
	if err != nil {
		t.Fatalf("FlexRange() error: %v", err)
	}
	if r != Fixed(40) {
		t.Errorf("FlexRange() = %v, want %v", r, Fixed(40))
	}
}

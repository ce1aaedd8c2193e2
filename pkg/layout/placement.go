package layout

import (
	"cmp"
	"slices"
)

// Layer is the stacking order of a child relative to its siblings. Only
// backgrounds and overlays use anything but LayerContent.
type Layer int8

const (
	LayerBehind  Layer = -1
	LayerContent Layer = 0
	LayerFront   Layer = 1
)

func (l Layer) String() string {
	switch l {
	case LayerBehind:
		return "behind"
	case LayerFront:
		return "front"
	}
	return "content"
}

// MarshalText implements encoding.TextMarshaler.
func (l Layer) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layer) UnmarshalText(b []byte) error {
	switch string(b) {
	case "behind":
		*l = LayerBehind
	case "front":
		*l = LayerFront
	default:
		*l = LayerContent
	}
	return nil
}

// Placement is the result of measuring a node: its final size and the
// position of every child relative to its own origin.
type Placement struct {
	ID       string  `json:"id,omitempty" bson:"id,omitempty"`
	Kind     string  `json:"kind" bson:"kind"`
	Size     Size    `json:"size" bson:"size"`
	Children []Child `json:"children,omitempty" bson:"children,omitempty"`

	// Paint attributes consumed by renderers.
	Fill         string   `json:"fill,omitempty" bson:"fill,omitempty"`
	CornerRadius int      `json:"corner_radius,omitempty" bson:"corner_radius,omitempty"`
	Lines        []string `json:"lines,omitempty" bson:"lines,omitempty"`
	Source       string   `json:"source,omitempty" bson:"source,omitempty"`

	Scroll    *ScrollInfo    `json:"scroll,omitempty" bson:"scroll,omitempty"`
	Semantics *SemanticsInfo `json:"semantics,omitempty" bson:"semantics,omitempty"`

	// Error is set by a Boundary that replaced a failed subtree.
	Error string `json:"error,omitempty" bson:"error,omitempty"`
}

// Child is a placed child.
type Child struct {
	Offset    Point      `json:"offset" bson:"offset"`
	Layer     Layer      `json:"layer,omitempty" bson:"layer,omitempty"`
	Placement *Placement `json:"placement" bson:"placement"`
}

// ScrollInfo describes the scrollable content of a scroll container.
type ScrollInfo struct {
	Axis        Axis `json:"axis" bson:"axis"`
	ContentSize Size `json:"content_size" bson:"content_size"`
}

// SemanticsInfo carries accessibility attributes.
type SemanticsInfo struct {
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Header bool   `json:"header,omitempty" bson:"header,omitempty"`
	Hidden bool   `json:"hidden,omitempty" bson:"hidden,omitempty"`
}

func (p *Placement) add(offset Point, layer Layer, child *Placement) {
	p.Children = append(p.Children, Child{Offset: offset, Layer: layer, Placement: child})
}

// Count returns the number of placements in the tree rooted at p.
func (p *Placement) Count() int {
	if p == nil {
		return 0
	}
	n := 1
	for _, c := range p.Children {
		n += c.Placement.Count()
	}
	return n
}

// Errors collects the errors recorded by boundaries in the tree.
func (p *Placement) Errors() []string {
	var out []string
	p.Walk(func(_ Point, pl *Placement, _ int) {
		if pl.Error != "" {
			out = append(out, pl.Error)
		}
	})
	return out
}

// Walk visits the tree in paint order, passing the absolute origin and the
// depth of each placement. Children are visited behind-first, then
// content, then front, keeping their relative order within a layer.
func (p *Placement) Walk(fn func(origin Point, pl *Placement, depth int)) {
	p.walk(Point{}, 0, fn)
}

func (p *Placement) walk(origin Point, depth int, fn func(Point, *Placement, int)) {
	if p == nil {
		return
	}
	fn(origin, p, depth)
	for _, c := range paintOrder(p.Children) {
		c.Placement.walk(origin.Add(c.Offset), depth+1, fn)
	}
}

func paintOrder(children []Child) []Child {
	if !slices.ContainsFunc(children, func(c Child) bool { return c.Layer != LayerContent }) {
		return children
	}
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b Child) int { return cmp.Compare(a.Layer, b.Layer) })
	return sorted
}

// Rect is an absolute rectangle.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Intersect returns the overlap of r and o, which is empty (zero width or
// height) when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: max(x1-x0, 0), Height: max(y1-y0, 0)}
}

// Box is one placement resolved to absolute coordinates.
type Box struct {
	Rect      Rect
	Depth     int
	Z         int   // paint order, back to front
	Clip      *Rect // visible region inside enclosing scroll containers, nil if unclipped
	Placement *Placement
}

// Flatten resolves the tree to absolute boxes in paint order. Everything
// below a scroll container is clipped to the container's bounds.
func Flatten(p *Placement) []Box {
	var boxes []Box
	var visit func(pl *Placement, origin Point, depth int, clip *Rect)
	visit = func(pl *Placement, origin Point, depth int, clip *Rect) {
		if pl == nil {
			return
		}
		r := Rect{X: origin.X, Y: origin.Y, Width: pl.Size.Width, Height: pl.Size.Height}
		boxes = append(boxes, Box{Rect: r, Depth: depth, Z: len(boxes), Clip: clip, Placement: pl})
		if pl.Scroll != nil {
			c := r
			if clip != nil {
				c = c.Intersect(*clip)
			}
			clip = &c
		}
		for _, c := range paintOrder(pl.Children) {
			visit(c.Placement, origin.Add(c.Offset), depth+1, clip)
		}
	}
	visit(p, Point{}, 0, nil)
	return boxes
}

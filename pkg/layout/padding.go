package layout

// Insets are the four padding edges.
type Insets struct {
	Top      int `json:"top,omitempty" yaml:"top,omitempty"`
	Leading  int `json:"leading,omitempty" yaml:"leading,omitempty"`
	Bottom   int `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Trailing int `json:"trailing,omitempty" yaml:"trailing,omitempty"`
}

// Uniform returns equal insets on every edge.
func Uniform(v int) Insets { return Insets{Top: v, Leading: v, Bottom: v, Trailing: v} }

func (in Insets) along(axis Axis) int {
	if axis == Horizontal {
		return in.Leading + in.Trailing
	}
	return in.Top + in.Bottom
}

// Padding insets its child.
type Padding struct {
	Meta
	Child  Node
	Insets Insets
}

func (p *Padding) Describe() string { return p.describe("padding") }

func (p *Padding) child() Node {
	if p.Child == nil {
		return Empty{}
	}
	return p.Child
}

func (p *Padding) inner(proposed Size) Size {
	return Size{
		Width:  subDims(proposed.Width, p.Insets.along(Horizontal)),
		Height: subDims(proposed.Height, p.Insets.along(Vertical)),
	}
}

func (p *Padding) outer(child Size) Size {
	return Size{
		Width:  child.Width + p.Insets.along(Horizontal),
		Height: child.Height + p.Insets.along(Vertical),
	}
}

func (p *Padding) Measure(c Constraints) (*Placement, error) {
	child, err := p.child().Measure(ProposeSize(p.inner(c.Max())))
	if err != nil {
		return nil, childErr(p, err)
	}
	pl := p.place("padding", p.outer(child.Size))
	pl.add(Point{X: p.Insets.Leading, Y: p.Insets.Top}, LayerContent, child)
	return pl, nil
}

func (p *Padding) FallbackMeasure(proposed Size) (Size, error) {
	s, err := p.child().FallbackMeasure(p.inner(proposed))
	if err != nil {
		return Size{}, childErr(p, err)
	}
	return p.outer(s), nil
}

func (p *Padding) FlexRange(axis Axis, cross int) (FlexRange, error) {
	r, err := p.child().FlexRange(axis, subDims(cross, p.Insets.along(axis.Cross())))
	if err != nil {
		return FlexRange{}, childErr(p, err)
	}
	in := p.Insets.along(axis)
	return FlexRange{Min: addDims(r.Min, in), Max: addDims(r.Max, in)}, nil
}

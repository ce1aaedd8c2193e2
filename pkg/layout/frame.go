package layout

// Frame fixes or clamps the size of its child and aligns the child inside
// the resulting box.
//
// A frame with Width or Height set is fixed: the child is forced to exactly
// those dimensions and the frame reports them regardless of what the child
// measures. Otherwise the frame is flexible and clamps the proposal between
// the Min and Max bounds. A Max bound of Infinity makes the frame take the
// whole (finite) proposal.
type Frame struct {
	Meta
	Child     Node
	Alignment Alignment

	Width, Height *int

	MinWidth, MaxWidth   *int
	MinHeight, MaxHeight *int
}

// Dim returns a pointer to v, for optional frame bounds.
func Dim(v int) *int { return &v }

// FixedFrame returns a fixed frame. Either dimension may be nil.
func FixedFrame(child Node, width, height *int, align Alignment) *Frame {
	return &Frame{Child: child, Width: width, Height: height, Alignment: align}
}

// IsFixed reports whether the frame fixes at least one dimension.
func (f *Frame) IsFixed() bool { return f.Width != nil || f.Height != nil }

func (f *Frame) Describe() string { return f.describe("frame") }

func (f *Frame) child() Node {
	if f.Child == nil {
		return Empty{}
	}
	return f.Child
}

func (f *Frame) Measure(c Constraints) (*Placement, error) {
	var child *Placement
	size, err := f.size(c, func(cc Constraints) (Size, error) {
		p, err := f.child().Measure(cc)
		if err != nil {
			return Size{}, err
		}
		child = p
		return p.Size, nil
	})
	if err != nil {
		return nil, childErr(f, err)
	}
	pl := f.place("frame", size)
	pl.add(f.Alignment.Offset(size, child.Size), LayerContent, child)
	return pl, nil
}

func (f *Frame) FallbackMeasure(proposed Size) (Size, error) {
	size, err := f.size(ProposeSize(proposed), func(cc Constraints) (Size, error) {
		return f.child().FallbackMeasure(cc.Max())
	})
	if err != nil {
		return Size{}, childErr(f, err)
	}
	return size, nil
}

func (f *Frame) FlexRange(axis Axis, cross int) (FlexRange, error) {
	if f.IsFixed() {
		if v := f.fixed(axis); v != nil {
			return Fixed(*v), nil
		}
		if v := f.fixed(axis.Cross()); v != nil {
			cross = *v
		}
		r, err := f.child().FlexRange(axis, cross)
		if err != nil {
			return FlexRange{}, childErr(f, err)
		}
		return r, nil
	}

	lo, hi := f.bounds(axis)
	if lo != nil && hi != nil {
		return FlexRange{Min: *lo, Max: max(*hi, *lo)}, nil
	}
	r, err := f.child().FlexRange(axis, cross)
	if err != nil {
		return FlexRange{}, childErr(f, err)
	}
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max = *hi
	}
	r.Max = max(r.Max, r.Min)
	return r, nil
}

// size runs the frame sizing policy with the given child measurement.
func (f *Frame) size(c Constraints, measure func(Constraints) (Size, error)) (Size, error) {
	var size, child Size
	var err error

	if f.IsFixed() {
		cc := c
		if f.Width != nil {
			cc.MinWidth, cc.MaxWidth = *f.Width, *f.Width
		}
		if f.Height != nil {
			cc.MinHeight, cc.MaxHeight = *f.Height, *f.Height
		}
		if child, err = measure(cc); err != nil {
			return Size{}, err
		}
		size = child
		if f.Width != nil {
			size.Width = *f.Width
		}
		if f.Height != nil {
			size.Height = *f.Height
		}
	} else {
		proposed := Size{
			Width:  clampProposal(f.MinWidth, f.MaxWidth, c.MaxWidth),
			Height: clampProposal(f.MinHeight, f.MaxHeight, c.MaxHeight),
		}
		if child, err = measure(ProposeSize(proposed)); err != nil {
			return Size{}, err
		}
		size = Size{
			Width:  reconcile(f.MinWidth, f.MaxWidth, child.Width, proposed.Width),
			Height: reconcile(f.MinHeight, f.MaxHeight, child.Height, proposed.Height),
		}
	}

	// An infinite answer collapses to the content.
	size.Width = orElse(size.Width, child.Width)
	size.Height = orElse(size.Height, child.Height)
	return size, nil
}

func (f *Frame) fixed(axis Axis) *int {
	if axis == Horizontal {
		return f.Width
	}
	return f.Height
}

func (f *Frame) bounds(axis Axis) (lo, hi *int) {
	if axis == Horizontal {
		return f.MinWidth, f.MaxWidth
	}
	return f.MinHeight, f.MaxHeight
}

// clampProposal narrows one dimension of the parent's proposal to the
// frame's bounds. An infinite proposal is replaced by the minimum.
func clampProposal(lo, hi *int, proposed int) int {
	if lo != nil && (*lo > proposed || proposed == Infinity) {
		proposed = *lo
	}
	if hi != nil && *hi < proposed {
		proposed = *hi
	}
	return proposed
}

// reconcile clamps the child's measured length against the bounds. With
// only one bound set the child's length stands in for the missing one.
func reconcile(lo, hi *int, child, proposed int) int {
	r := child
	if lo != nil {
		r = max(*lo, min(r, proposed))
	}
	if hi != nil {
		r = min(*hi, max(r, orElse(proposed, 0)))
	}
	return r
}

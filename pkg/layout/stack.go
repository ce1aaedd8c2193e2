package layout

import (
	"cmp"
	"slices"
)

// Stack lays its children out one after another along Axis, separated by
// Spacing, and aligns them on the cross axis.
//
// With a finite proposal along the axis the available length is handed
// out least flexible child first: each child is offered an equal share of
// what remains and whatever it takes is subtracted before the next child
// is asked. With an infinite proposal every child reports its natural
// length.
type Stack struct {
	Meta
	Axis      Axis
	Alignment Alignment
	Spacing   int
	Children  []Node
}

// VStack returns a vertical stack.
func VStack(align Alignment, spacing int, children ...Node) *Stack {
	return &Stack{Axis: Vertical, Alignment: align, Spacing: spacing, Children: children}
}

// HStack returns a horizontal stack.
func HStack(align Alignment, spacing int, children ...Node) *Stack {
	return &Stack{Axis: Horizontal, Alignment: align, Spacing: spacing, Children: children}
}

func (s *Stack) kind() string {
	if s.Axis == Horizontal {
		return "hstack"
	}
	return "vstack"
}

func (s *Stack) Describe() string { return s.describe(s.kind()) }

func (s *Stack) totalSpacing() int {
	if len(s.Children) < 2 {
		return 0
	}
	return s.Spacing * (len(s.Children) - 1)
}

func (s *Stack) Measure(c Constraints) (*Placement, error) {
	placed := make([]*Placement, len(s.Children))
	sizes, err := s.distribute(c.Max(), func(i int, proposed Size) (Size, error) {
		p, err := s.Children[i].Measure(ProposeSize(proposed))
		if err != nil {
			return Size{}, err
		}
		placed[i] = p
		return p.Size, nil
	})
	if err != nil {
		return nil, childErr(s, err)
	}

	size := s.union(sizes)
	pl := s.place(s.kind(), size)
	cross := s.Axis.Cross()
	edge := s.Alignment.along(cross)
	pos := 0
	for i, child := range placed {
		var off Point
		along := pos
		across := edge.offset(size.Along(cross), sizes[i].Along(cross))
		if s.Axis == Horizontal {
			off = Point{X: along, Y: across}
		} else {
			off = Point{X: across, Y: along}
		}
		pl.add(off, LayerContent, child)
		pos += sizes[i].Along(s.Axis) + s.Spacing
	}
	return pl, nil
}

func (s *Stack) FallbackMeasure(proposed Size) (Size, error) {
	sizes, err := s.distribute(proposed, func(i int, p Size) (Size, error) {
		return s.Children[i].FallbackMeasure(p)
	})
	if err != nil {
		return Size{}, childErr(s, err)
	}
	return s.union(sizes), nil
}

func (s *Stack) FlexRange(axis Axis, cross int) (FlexRange, error) {
	if len(s.Children) == 0 {
		return Fixed(0), nil
	}
	var r FlexRange
	if axis == s.Axis {
		r = Fixed(s.totalSpacing())
	}
	for _, child := range s.Children {
		cr, err := child.FlexRange(axis, cross)
		if err != nil {
			return FlexRange{}, childErr(s, err)
		}
		if axis == s.Axis {
			r.Min = addDims(r.Min, cr.Min)
			r.Max = addDims(r.Max, cr.Max)
		} else {
			r.Min = max(r.Min, cr.Min)
			r.Max = max(r.Max, cr.Max)
		}
	}
	return r, nil
}

// distribute sizes every child with measure and returns the sizes in
// child order.
func (s *Stack) distribute(proposed Size, measure func(i int, proposed Size) (Size, error)) ([]Size, error) {
	sizes := make([]Size, len(s.Children))
	along := proposed.Along(s.Axis)

	if along == Infinity {
		for i := range s.Children {
			sz, err := measure(i, proposed)
			if err != nil {
				return nil, err
			}
			sizes[i] = sz
		}
		return sizes, nil
	}

	order, err := s.byFlexibility(proposed.Along(s.Axis.Cross()))
	if err != nil {
		return nil, err
	}
	remaining := subDims(along, s.totalSpacing())
	for n, i := range order {
		share := remaining / (len(order) - n)
		sz, err := measure(i, proposed.With(s.Axis, share))
		if err != nil {
			return nil, err
		}
		sizes[i] = sz
		remaining = subDims(remaining, sz.Along(s.Axis))
	}
	return sizes, nil
}

// byFlexibility returns child indexes, least flexible first.
func (s *Stack) byFlexibility(cross int) ([]int, error) {
	flex := make([]int, len(s.Children))
	order := make([]int, len(s.Children))
	for i, child := range s.Children {
		r, err := child.FlexRange(s.Axis, cross)
		if err != nil {
			return nil, err
		}
		flex[i] = r.Flexibility()
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(flex[a], flex[b]) })
	return order, nil
}

func (s *Stack) union(sizes []Size) Size {
	var size Size
	cross := s.Axis.Cross()
	along := s.totalSpacing()
	for _, sz := range sizes {
		along += sz.Along(s.Axis)
		size = size.With(cross, max(size.Along(cross), sz.Along(cross)))
	}
	return size.With(s.Axis, along)
}

// ZStack overlays its children, aligning each inside the largest.
type ZStack struct {
	Meta
	Alignment Alignment
	Children  []Node
}

func (z *ZStack) Describe() string { return z.describe("zstack") }

func (z *ZStack) Measure(c Constraints) (*Placement, error) {
	placed := make([]*Placement, len(z.Children))
	var size Size
	for i, child := range z.Children {
		p, err := child.Measure(ProposeSize(c.Max()))
		if err != nil {
			return nil, childErr(z, err)
		}
		placed[i] = p
		size.Width = max(size.Width, p.Size.Width)
		size.Height = max(size.Height, p.Size.Height)
	}
	pl := z.place("zstack", size)
	for _, p := range placed {
		pl.add(z.Alignment.Offset(size, p.Size), LayerContent, p)
	}
	return pl, nil
}

func (z *ZStack) FallbackMeasure(proposed Size) (Size, error) {
	var size Size
	for _, child := range z.Children {
		s, err := child.FallbackMeasure(proposed)
		if err != nil {
			return Size{}, childErr(z, err)
		}
		size.Width = max(size.Width, s.Width)
		size.Height = max(size.Height, s.Height)
	}
	return size, nil
}

func (z *ZStack) FlexRange(axis Axis, cross int) (FlexRange, error) {
	var r FlexRange
	for _, child := range z.Children {
		cr, err := child.FlexRange(axis, cross)
		if err != nil {
			return FlexRange{}, childErr(z, err)
		}
		r.Min = max(r.Min, cr.Min)
		r.Max = max(r.Max, cr.Max)
	}
	return r, nil
}

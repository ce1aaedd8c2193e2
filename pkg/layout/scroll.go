package layout

// ScrollContainer scrolls its children along Axis. The children form an
// implicit stack on that axis, centered and without spacing.
//
// The container fills a finite proposal. On an axis proposed Infinity it
// shrinks to its content instead. Content is proposed Infinity along the
// scroll axis, except when the container itself was proposed Infinity on
// that axis (it sits inside another scroller on the same axis): then the
// content's natural length is obtained through FallbackMeasure and the
// content is measured with that finite length.
//
// On the cross axis the container fills the available space and centers
// the content in it without imposing a minimum size on the content.
type ScrollContainer struct {
	Meta
	Axis     Axis
	Children []Node
}

// NewScrollContainer returns a scroll container.
func NewScrollContainer(axis Axis, children ...Node) *ScrollContainer {
	return &ScrollContainer{Axis: axis, Children: children}
}

func (s *ScrollContainer) Describe() string { return s.describe("scroll") }

func (s *ScrollContainer) content() *Stack {
	st := &Stack{Axis: s.Axis, Alignment: Center, Children: s.Children}
	if s.ID != "" {
		st.ID = s.ID + ".content"
	}
	return st
}

func (s *ScrollContainer) Measure(c Constraints) (*Placement, error) {
	content := s.content()
	proposed := c.Max()
	axis, cross := s.Axis, s.Axis.Cross()

	childProposal := proposed.With(axis, Infinity)
	if proposed.Along(axis) == Infinity {
		natural, err := content.FallbackMeasure(proposed)
		if err != nil {
			return nil, childErr(s, err)
		}
		childProposal = proposed.With(axis, orElse(natural.Along(axis), 0))
	}

	child, err := content.Measure(ProposeSize(childProposal))
	if err != nil {
		return nil, childErr(s, err)
	}

	// Inner box: fill the cross axis, follow the content on the scroll axis.
	inner := child.Size.With(cross, orElse(proposed.Along(cross), child.Size.Along(cross)))
	offset := 0
	if proposed.Along(cross) != Infinity {
		offset = max(proposed.Along(cross)/2-child.Size.Along(cross)/2, 0)
	}

	size := Size{
		Width:  orElse(proposed.Width, inner.Width),
		Height: orElse(proposed.Height, inner.Height),
	}

	pl := s.place("scroll", size)
	pl.Scroll = &ScrollInfo{Axis: axis, ContentSize: inner}
	pl.add(Point{}.With(cross, offset), LayerContent, child)
	return pl, nil
}

// FallbackMeasure fills a finite proposal. Otherwise the content is sized
// as if scrolling along the axis and substitutes every infinite dimension.
func (s *ScrollContainer) FallbackMeasure(proposed Size) (Size, error) {
	if proposed.IsFinite() {
		return proposed, nil
	}
	natural, err := s.content().FallbackMeasure(proposed.With(s.Axis, Infinity))
	if err != nil {
		return Size{}, childErr(s, err)
	}
	return Size{
		Width:  orElse(proposed.Width, natural.Width),
		Height: orElse(proposed.Height, natural.Height),
	}, nil
}

// FlexRange is always fully flexible. The one case where it is not (an
// infinite proposal) leaves the parent infinite room anyway.
func (s *ScrollContainer) FlexRange(Axis, int) (FlexRange, error) {
	return Flexible, nil
}

package layout

// Boundary confines failures to its subtree. When the child fails to
// measure, or fails a fallback or flex query for the same proposal, the
// boundary reports a 0x0 placement carrying the error instead of failing
// the whole pass. Flex and fallback queries on a failing child answer as
// an empty node would; Measure records why.
type Boundary struct {
	Meta
	Child Node
}

// Isolate wraps n in a Boundary.
func Isolate(n Node) *Boundary { return &Boundary{Child: n} }

func (b *Boundary) Describe() string { return b.describe("boundary") }

func (b *Boundary) child() Node {
	if b.Child == nil {
		return Empty{}
	}
	return b.Child
}

func (b *Boundary) Measure(c Constraints) (*Placement, error) {
	child := b.child()
	if err := answerable(child, c.Max()); err != nil {
		return b.failed(child, err), nil
	}
	p, err := child.Measure(c)
	if err != nil {
		return b.failed(child, err), nil
	}
	pl := b.place("boundary", p.Size)
	pl.add(Point{}, LayerContent, p)
	return pl, nil
}

func (b *Boundary) failed(child Node, err error) *Placement {
	pl := b.place("boundary", Size{})
	pl.Error = Annotate(err, child).Error()
	return pl
}

// answerable runs the queries a parent may already have answered from
// this boundary's zero values, so their failures are not lost.
func answerable(n Node, proposed Size) error {
	if _, err := n.FallbackMeasure(proposed); err != nil {
		return err
	}
	for _, axis := range [...]Axis{Horizontal, Vertical} {
		if _, err := n.FlexRange(axis, proposed.Along(axis.Cross())); err != nil {
			return err
		}
	}
	return nil
}

func (b *Boundary) FallbackMeasure(proposed Size) (Size, error) {
	s, err := b.child().FallbackMeasure(proposed)
	if err != nil {
		return Size{}, nil
	}
	return s, nil
}

func (b *Boundary) FlexRange(axis Axis, cross int) (FlexRange, error) {
	r, err := b.child().FlexRange(axis, cross)
	if err != nil {
		return Fixed(0), nil
	}
	return r, nil
}

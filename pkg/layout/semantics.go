package layout

// Semantics attaches accessibility attributes to its child without
// changing its layout.
type Semantics struct {
	Meta
	Child  Node
	Label  string
	Header bool
	Hidden bool
}

func (s *Semantics) Describe() string { return s.describe("semantics") }

func (s *Semantics) child() Node {
	if s.Child == nil {
		return Empty{}
	}
	return s.Child
}

func (s *Semantics) Measure(c Constraints) (*Placement, error) {
	child, err := s.child().Measure(c)
	if err != nil {
		return nil, childErr(s, err)
	}
	pl := s.place("semantics", child.Size)
	pl.Semantics = &SemanticsInfo{Label: s.Label, Header: s.Header, Hidden: s.Hidden}
	pl.add(Point{}, LayerContent, child)
	return pl, nil
}

func (s *Semantics) FallbackMeasure(proposed Size) (Size, error) {
	return s.child().FallbackMeasure(proposed)
}

func (s *Semantics) FlexRange(axis Axis, cross int) (FlexRange, error) {
	return s.child().FlexRange(axis, cross)
}

package layout

import (
	"fmt"
	"testing"
)

// probe is a leaf with a natural size that records every query it gets.
type probe struct {
	name    string
	natural Size
	// grow makes the probe take any finite proposal instead of its
	// natural size.
	grow bool
	// forbid fails Measure when the proposal along this axis is Infinity.
	forbid *Axis

	measures  []Constraints
	fallbacks []Size
}

func newProbe(name string, w, h int) *probe {
	return &probe{name: name, natural: Size{Width: w, Height: h}}
}

func (p *probe) Describe() string { return "probe#" + p.name }

func (p *probe) size(proposed Size) Size {
	if !p.grow {
		return p.natural
	}
	return Size{Width: orElse(proposed.Width, p.natural.Width), Height: orElse(proposed.Height, p.natural.Height)}
}

func (p *probe) Measure(c Constraints) (*Placement, error) {
	p.measures = append(p.measures, c)
	if p.forbid != nil && c.MaxAlong(*p.forbid) == Infinity {
		return nil, fmt.Errorf("%s proposed infinity along %s", p.Describe(), *p.forbid)
	}
	return &Placement{ID: p.name, Kind: "probe", Size: p.size(c.Max())}, nil
}

func (p *probe) FallbackMeasure(proposed Size) (Size, error) {
	p.fallbacks = append(p.fallbacks, proposed)
	return p.size(proposed), nil
}

func (p *probe) FlexRange(axis Axis, _ int) (FlexRange, error) {
	if p.grow {
		return FlexRange{Min: 0, Max: Infinity}, nil
	}
	return Fixed(p.natural.Along(axis)), nil
}

func (p *probe) lastMeasure(t *testing.T) Constraints {
	t.Helper()
	if len(p.measures) == 0 {
		t.Fatalf("%s was never measured", p.Describe())
	}
	return p.measures[len(p.measures)-1]
}

func mustMeasure(t *testing.T, n Node, c Constraints) *Placement {
	t.Helper()
	p, err := n.Measure(c)
	if err != nil {
		t.Fatalf("%s.Measure(%s) error: %v", n.Describe(), c, err)
	}
	return p
}

func childAt(t *testing.T, p *Placement, i int) Child {
	t.Helper()
	if i >= len(p.Children) {
		t.Fatalf("%s has %d children, want index %d", p.Kind, len(p.Children), i)
	}
	return p.Children[i]
}

func axisPtr(a Axis) *Axis { return &a }

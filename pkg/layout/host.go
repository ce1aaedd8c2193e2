package layout

import (
	"errors"
	"fmt"
)

// HostMeasurable is the narrow contract of a host toolkit's measurables:
// single-pass measurement plus four intrinsic queries that each carry one
// scalar in and one scalar out. Hosts only ever pass and return
// non-negative values.
//
// Protocol nodes travel through this contract by packing: a fallback
// measurement is carried by MaxIntrinsicWidth (packed proposal in, packed
// size out) and flex ranges by MinIntrinsicWidth and MinIntrinsicHeight
// (packed cross value in, packed range out). MaxIntrinsicHeight is not
// used for packed traffic.
type HostMeasurable interface {
	Name() string
	Measure(c Constraints) (*Placement, error)
	MinIntrinsicWidth(height int32) (int32, error)
	MinIntrinsicHeight(width int32) (int32, error)
	MaxIntrinsicWidth(height int32) (int32, error)
	MaxIntrinsicHeight(width int32) (int32, error)
}

// errNotPacked is returned by exported nodes for queries the packed
// protocol does not use.
var errNotPacked = errors.New("only MaxIntrinsicWidth, MinIntrinsicWidth and MinIntrinsicHeight carry packed queries")

// Export presents a protocol node to a host through HostMeasurable.
func Export(n Node) HostMeasurable { return exported{n} }

type exported struct{ node Node }

func (e exported) Name() string { return e.node.Describe() }

func (e exported) Measure(c Constraints) (*Placement, error) { return e.node.Measure(c) }

func (e exported) MaxIntrinsicWidth(height int32) (int32, error) {
	proposed, err := DecodeSize(Packed(height))
	if err != nil {
		return 0, Annotate(err, e.node)
	}
	size, err := e.node.FallbackMeasure(proposed)
	if err != nil {
		return 0, err
	}
	p, err := EncodeSize(size)
	if err != nil {
		return 0, Annotate(err, e.node)
	}
	return int32(p), nil
}

func (e exported) MinIntrinsicWidth(height int32) (int32, error) {
	return e.flex(Horizontal, height)
}

func (e exported) MinIntrinsicHeight(width int32) (int32, error) {
	return e.flex(Vertical, width)
}

func (e exported) MaxIntrinsicHeight(int32) (int32, error) {
	return 0, fmt.Errorf("%s: %w", e.node.Describe(), errNotPacked)
}

func (e exported) flex(axis Axis, arg int32) (int32, error) {
	cross, _, err := Decode(Packed(arg))
	if err != nil {
		return 0, Annotate(err, e.node)
	}
	r, err := e.node.FlexRange(axis, cross)
	if err != nil {
		return 0, err
	}
	p, err := EncodeRange(r)
	if err != nil {
		return 0, Annotate(err, e.node)
	}
	return int32(p), nil
}

// Import reads a host measurable that is expected to speak the packed
// protocol. Any failure, including an answer without the packed marker, is
// reported as a ForeignMeasurableError naming the measurable.
func Import(h HostMeasurable) Node { return imported{h} }

type imported struct{ host HostMeasurable }

func (i imported) Describe() string { return i.host.Name() }

func (i imported) Measure(c Constraints) (*Placement, error) { return i.host.Measure(c) }

func (i imported) FallbackMeasure(proposed Size) (Size, error) {
	p, err := EncodeSize(proposed)
	if err != nil {
		return Size{}, Annotate(err, i)
	}
	raw, err := i.host.MaxIntrinsicWidth(int32(p))
	if err == nil {
		var s Size
		if s, err = DecodeSize(Packed(raw)); err == nil {
			return s, nil
		}
	}
	return Size{}, &ForeignMeasurableError{Node: i.host.Name(), Query: "fallback measure", Err: Annotate(err, i)}
}

func (i imported) FlexRange(axis Axis, cross int) (FlexRange, error) {
	p, err := Encode(cross, 0)
	if err != nil {
		return FlexRange{}, Annotate(err, i)
	}
	query := i.host.MinIntrinsicWidth
	if axis == Vertical {
		query = i.host.MinIntrinsicHeight
	}
	raw, err := query(int32(p))
	if err == nil {
		var r FlexRange
		if r, err = DecodeRange(Packed(raw)); err == nil {
			return r, nil
		}
	}
	return FlexRange{}, &ForeignMeasurableError{Node: i.host.Name(), Query: axis.String() + " flex range", Err: Annotate(err, i)}
}

// Transport routes every query to n through the packed host contract, the
// way a node embedded in a host toolkit is reached.
func Transport(n Node) Node { return Import(Export(n)) }

// conformLimit caps proposals forwarded to raw intrinsic queries.
const conformLimit = 2 << 13

// Conform adapts a measurable that does not speak the packed protocol. It
// answers fallback queries from the host's raw intrinsics (clamping the
// forwarded proposal and replacing an infinite answer with the proposal)
// and reports no flexibility.
func Conform(h HostMeasurable) Node { return conformed{h} }

type conformed struct{ host HostMeasurable }

func (c conformed) Describe() string { return c.host.Name() }

func (c conformed) Measure(cs Constraints) (*Placement, error) { return c.host.Measure(cs) }

func (c conformed) FallbackMeasure(proposed Size) (Size, error) {
	w, err := c.host.MaxIntrinsicWidth(int32(min(proposed.Height, conformLimit)))
	if err != nil {
		return Size{}, &ForeignMeasurableError{Node: c.host.Name(), Query: "max intrinsic width", Err: err}
	}
	h, err := c.host.MaxIntrinsicHeight(int32(min(proposed.Width, conformLimit)))
	if err != nil {
		return Size{}, &ForeignMeasurableError{Node: c.host.Name(), Query: "max intrinsic height", Err: err}
	}
	return Size{
		Width:  orElse(int(w), proposed.Width),
		Height: orElse(int(h), proposed.Height),
	}, nil
}

func (c conformed) FlexRange(Axis, int) (FlexRange, error) { return Fixed(0), nil }

// Native is a plain host measurable with a fixed natural size. It rejects
// packed (negative) intrinsic arguments the way a host toolkit fails on
// values it never expects.
type Native struct {
	ID      string
	Natural Size
}

func (n *Native) Name() string {
	if n.ID == "" {
		return "native"
	}
	return "native#" + n.ID
}

func (n *Native) Measure(c Constraints) (*Placement, error) {
	return &Placement{ID: n.ID, Kind: "native", Size: c.Coerce(n.Natural)}, nil
}

func (n *Native) check(arg int32) error {
	if arg < 0 {
		return fmt.Errorf("%s: negative intrinsic argument %d", n.Name(), arg)
	}
	return nil
}

func (n *Native) MinIntrinsicWidth(height int32) (int32, error) {
	return int32(n.Natural.Width), n.check(height)
}

func (n *Native) MinIntrinsicHeight(width int32) (int32, error) {
	return int32(n.Natural.Height), n.check(width)
}

func (n *Native) MaxIntrinsicWidth(height int32) (int32, error) {
	return int32(n.Natural.Width), n.check(height)
}

func (n *Native) MaxIntrinsicHeight(width int32) (int32, error) {
	return int32(n.Natural.Height), n.check(width)
}

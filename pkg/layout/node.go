package layout

import "fmt"

// Node is a layout node. Nodes are immutable during a pass and every
// method must be deterministic: the same input yields the same answer no
// matter how many times, or in which order, a parent asks.
type Node interface {
	// Describe identifies the node in errors and diagnostics.
	Describe() string

	// Measure sizes the node for a proposal and places its children. The
	// returned size is always finite; it may exceed the proposal when the
	// content cannot shrink further.
	Measure(c Constraints) (*Placement, error)

	// FlexRange reports the lengths the node can take along axis when the
	// other axis is cross (which may be Infinity).
	FlexRange(axis Axis, cross int) (FlexRange, error)

	// FallbackMeasure reports the node's size for a proposal without going
	// through any enclosing scroll behavior. Scroll containers answer it
	// without proposing Infinity along their own axis.
	FallbackMeasure(proposed Size) (Size, error)
}

// Meta carries the identity shared by every node kind.
type Meta struct {
	ID string `json:"id,omitempty"`
}

func (m Meta) describe(kind string) string {
	if m.ID == "" {
		return kind
	}
	return kind + "#" + m.ID
}

func (m Meta) place(kind string, size Size) *Placement {
	return &Placement{ID: m.ID, Kind: kind, Size: size}
}

// childErr prefixes err with the parent's description, building a path
// from the root to the failing node as the error travels up.
func childErr(parent Node, err error) error {
	return fmt.Errorf("%s: %w", parent.Describe(), err)
}

// measureSize measures n and returns only its size.
func measureSize(n Node, proposed Size) (Size, error) {
	p, err := n.Measure(ProposeSize(proposed))
	if err != nil {
		return Size{}, err
	}
	return p.Size, nil
}

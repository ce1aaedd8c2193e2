// Package layout implements a two-pass declarative layout engine.
//
// A parent proposes a size to each child (either dimension may be
// [Infinity], meaning "report your natural size") and the child answers
// with an exact, finite size and the placement of its own children.
// Parents that need to know more before committing to a proposal ask
// their children for a [FlexRange] along one axis or for a
// FallbackMeasure that bypasses scroll behavior.
//
// # Node kinds
//
//   - [Frame]: fixed or flexible (min/max clamped) box with 9-way alignment
//   - [Decorated]: background or overlay sized to its content
//   - [ScrollContainer]: fills the proposal, shrinks to content on Infinity
//   - [Stack], [ZStack]: SwiftUI-style distribution
//   - [Padding], [Semantics], [Boundary]: single-child wrappers
//   - [Text], [Image], [Rectangle], [Spacer], [Empty]: leaves
//
// # Host bridge
//
// Hosts whose measurables only exchange one scalar per call reach protocol
// nodes through [Export] and [Import], which carry sizes and ranges packed
// by [Encode] and [EncodeRange]. [Conform] adapts measurables that do not
// speak the packed protocol.
//
// Measurement is pure: nodes are never mutated during a pass and may be
// measured any number of times.
package layout

import (
	rerrors "github.com/nagyist/rover-android/pkg/errors"
)

// Layout runs a layout pass for root with the host's constraints.
func Layout(root Node, c Constraints) (*Placement, error) {
	if root == nil {
		return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "layout: nil root node")
	}
	if err := c.Validate(); err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInvalidConstraints, err, "layout %s", root.Describe())
	}
	p, err := root.Measure(c)
	if err != nil {
		return nil, err
	}
	if !p.Size.IsFinite() {
		return nil, rerrors.New(rerrors.ErrCodeInternal, "layout: %s reported infinite size %s", root.Describe(), p.Size)
	}
	return p, nil
}

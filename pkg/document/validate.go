package document

import (
	"errors"
	"strings"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

// Validate checks the document against the schema: known node types,
// children only on containers, well-formed IDs (unique within the
// document), colors, paths and lengths.
func (d *Document) Validate() error {
	if d.Root == nil {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "document has no root node")
	}
	if d.Width != nil {
		if err := rerrors.ValidateDimension("width", d.Width.Int()); err != nil {
			return err
		}
	}
	if d.Height != nil {
		if err := rerrors.ValidateDimension("height", d.Height.Int()); err != nil {
			return err
		}
	}
	if m := d.Metrics; m != nil && (m.CharWidth <= 0 || m.LineHeight <= 0) {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "text_metrics must be positive (got %d/%d)", m.CharWidth, m.LineHeight)
	}

	seen := make(map[string]string)
	return d.Root.Walk("root", func(path string, n *Node) error {
		if err := validateNode(n); err != nil {
			var e *rerrors.Error
			if errors.As(err, &e) {
				e.Message = path + ": " + e.Message
			}
			return err
		}
		if n.ID == "" {
			return nil
		}
		if prev, ok := seen[n.ID]; ok {
			return rerrors.New(rerrors.ErrCodeInvalidDocument, "%s: duplicate id %q (first used at %s)", path, n.ID, prev)
		}
		seen[n.ID] = path
		return nil
	})
}

func validateNode(n *Node) error {
	if !containerTypes[n.Type] && !leafTypes[n.Type] {
		if n.Type == "" {
			return rerrors.New(rerrors.ErrCodeInvalidDocument, "node has no type")
		}
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "unknown node type %q", n.Type)
	}
	if n.ID != "" {
		if err := rerrors.ValidateNodeID(n.ID); err != nil {
			return err
		}
	}
	if len(n.Children) > 0 && !n.IsContainer() {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "%s node cannot have children", n.Type)
	}
	for i, c := range n.Children {
		if c == nil {
			return rerrors.New(rerrors.ErrCodeInvalidDocument, "child %d is null", i)
		}
	}

	for _, v := range []struct {
		name  string
		value int
	}{
		{"spacing", n.Spacing},
		{"max_lines", n.MaxLines},
		{"corner_radius", n.CornerRadius},
		{"min_length", n.MinLength},
	} {
		if err := rerrors.ValidateDimension(v.name, v.value); err != nil {
			return err
		}
	}
	for _, c := range []string{n.Color, n.Fill} {
		if err := rerrors.ValidateColor(c); err != nil {
			return err
		}
	}

	switch n.Type {
	case TypeText:
		if _, ok := layout.ParseTextTransform(n.Transform); !ok {
			return rerrors.New(rerrors.ErrCodeInvalidDocument, "unknown text transform %q", n.Transform)
		}
	case TypeImage:
		if _, ok := layout.ParseResizingMode(resizingName(n.Resizing)); !ok {
			return rerrors.New(rerrors.ErrCodeInvalidDocument, "unknown resizing mode %q", n.Resizing)
		}
		if n.Source != "" && !strings.Contains(n.Source, "://") {
			if err := rerrors.ValidatePath(n.Source); err != nil {
				return err
			}
		}
		if err := validateSize("intrinsic", n.Intrinsic); err != nil {
			return err
		}
	case TypeNative:
		if err := validateSize("natural", n.Natural); err != nil {
			return err
		}
	}

	if m := n.Modifiers; m != nil {
		return validateModifiers(m)
	}
	return nil
}

func validateSize(name string, s *layout.Size) error {
	if s == nil {
		return nil
	}
	if err := rerrors.ValidateDimension(name+" width", s.Width); err != nil {
		return err
	}
	return rerrors.ValidateDimension(name+" height", s.Height)
}

func validateModifiers(m *Modifiers) error {
	if p := m.Padding; p != nil {
		if p.Top < 0 || p.Leading < 0 || p.Bottom < 0 || p.Trailing < 0 {
			return rerrors.New(rerrors.ErrCodeInvalidDocument, "padding cannot be negative")
		}
	}
	if f := m.Frame; f != nil {
		if err := validateFrame(f); err != nil {
			return err
		}
	}
	if m.Background != nil && m.Background.Node == nil {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "background modifier has no node")
	}
	if m.Overlay != nil && m.Overlay.Node == nil {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "overlay modifier has no node")
	}
	return nil
}

func validateFrame(f *Frame) error {
	if f.IsFixed() && f.isFlexible() {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "frame mixes fixed and flexible bounds")
	}
	for _, d := range []struct {
		name string
		v    *Dimension
	}{
		{"frame width", f.Width}, {"frame height", f.Height},
		{"frame min_width", f.MinWidth}, {"frame max_width", f.MaxWidth},
		{"frame min_height", f.MinHeight}, {"frame max_height", f.MaxHeight},
	} {
		if d.v == nil {
			continue
		}
		if err := rerrors.ValidateDimension(d.name, d.v.Int()); err != nil {
			return err
		}
	}
	if f.Width != nil && *f.Width == Inf || f.Height != nil && *f.Height == Inf {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "fixed frame dimensions must be finite")
	}
	if f.MinWidth != nil && f.MaxWidth != nil && *f.MinWidth > *f.MaxWidth {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "frame min_width %s exceeds max_width %s", f.MinWidth, f.MaxWidth)
	}
	if f.MinHeight != nil && f.MaxHeight != nil && *f.MinHeight > *f.MaxHeight {
		return rerrors.New(rerrors.ErrCodeInvalidDocument, "frame min_height %s exceeds max_height %s", f.MinHeight, f.MaxHeight)
	}
	return nil
}

// resizingName maps the document default ("") to the layout name.
func resizingName(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

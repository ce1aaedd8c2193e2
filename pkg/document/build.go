package document

import (
	"github.com/google/uuid"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

// idNamespace scopes generated node IDs.
var idNamespace = uuid.MustParse("3b0f5b8e-6c1a-4d52-9f0e-8a7c2e41d6b3")

// GeneratedID returns the ID an anonymous node is given: its type plus a
// short name-based UUID of the document name and the node's path. The same
// document therefore always produces the same IDs.
func GeneratedID(docName, path, nodeType string) string {
	u := uuid.NewSHA1(idNamespace, []byte(docName+"\x00"+path))
	return nodeType + "-" + u.String()[:8]
}

// AssignIDs stores generated IDs on every node that has none.
func (d *Document) AssignIDs() {
	_ = d.Root.Walk("root", func(path string, n *Node) error {
		if n.ID == "" {
			n.ID = GeneratedID(d.Name, path, n.Type)
		}
		return nil
	})
}

// BuildOptions control how a document becomes a layout tree.
type BuildOptions struct {
	// Metrics measures text nodes. Document metrics take precedence; zero
	// values fall back to layout.DefaultTextMetrics.
	Metrics layout.TextMetrics

	// InfinityDefault is the length rectangles take on an axis proposed
	// Infinity. Zero means layout.DefaultExpandLength.
	InfinityDefault int

	// PackedTransport routes every flex and fallback query between nodes
	// through the packed host contract, as when each node is embedded in a
	// host toolkit.
	PackedTransport bool
}

// Build converts a document to a layout tree. The document is not
// modified; nodes without an ID get a generated one in the tree.
func Build(d *Document, opts BuildOptions) (layout.Node, error) {
	if d == nil || d.Root == nil {
		return nil, rerrors.New(rerrors.ErrCodeInvalidDocument, "document has no root node")
	}
	b := &builder{doc: d, opts: opts, metrics: opts.Metrics}
	if d.Metrics != nil {
		b.metrics = *d.Metrics
	}
	return b.node("root", d.Root, layout.Vertical)
}

type builder struct {
	doc     *Document
	opts    BuildOptions
	metrics layout.TextMetrics
}

// node builds n. stackAxis is the axis of the enclosing stack, which
// spacers expand along unless they name their own.
func (b *builder) node(path string, n *Node, stackAxis layout.Axis) (layout.Node, error) {
	if n == nil {
		return nil, rerrors.New(rerrors.ErrCodeInvalidDocument, "%s: missing node", path)
	}
	id := n.ID
	if id == "" {
		id = GeneratedID(b.doc.Name, path, n.Type)
	}
	meta := layout.Meta{ID: id}

	var out layout.Node
	switch n.Type {
	case TypeText:
		transform, ok := layout.ParseTextTransform(n.Transform)
		if !ok {
			return nil, rerrors.New(rerrors.ErrCodeInvalidDocument, "%s: unknown text transform %q", path, n.Transform)
		}
		out = &layout.Text{Meta: meta, Text: n.Text, Color: n.Color, Transform: transform, MaxLines: n.MaxLines, Metrics: b.metrics}

	case TypeImage:
		mode, ok := layout.ParseResizingMode(resizingName(n.Resizing))
		if !ok {
			return nil, rerrors.New(rerrors.ErrCodeInvalidDocument, "%s: unknown resizing mode %q", path, n.Resizing)
		}
		im := &layout.Image{Meta: meta, Source: n.Source, Resizing: mode}
		if n.Intrinsic != nil {
			im.Intrinsic = *n.Intrinsic
		}
		out = im

	case TypeRectangle:
		out = &layout.Rectangle{Meta: meta, Fill: n.Fill, CornerRadius: n.CornerRadius, InfinityDefault: b.opts.InfinityDefault}

	case TypeSpacer:
		axis := stackAxis
		if n.Axis != nil {
			axis = *n.Axis
		}
		out = &layout.Spacer{Meta: meta, Axis: axis, MinLength: n.MinLength}

	case TypeEmpty:
		out = layout.Empty{}

	case TypeVStack, TypeHStack:
		axis := layout.Vertical
		if n.Type == TypeHStack {
			axis = layout.Horizontal
		}
		children, err := b.children(path, n, axis)
		if err != nil {
			return nil, err
		}
		out = &layout.Stack{Meta: meta, Axis: axis, Alignment: n.Alignment, Spacing: n.Spacing, Children: children}

	case TypeZStack:
		children, err := b.children(path, n, stackAxis)
		if err != nil {
			return nil, err
		}
		out = &layout.ZStack{Meta: meta, Alignment: n.Alignment, Children: children}

	case TypeScroll:
		axis := layout.Vertical
		if n.Axis != nil {
			axis = *n.Axis
		}
		children, err := b.children(path, n, axis)
		if err != nil {
			return nil, err
		}
		out = &layout.ScrollContainer{Meta: meta, Axis: axis, Children: children}

	case TypeNative:
		native := &layout.Native{ID: id}
		if n.Natural != nil {
			native.Natural = *n.Natural
		}
		out = layout.Conform(native)

	default:
		return nil, rerrors.New(rerrors.ErrCodeInvalidDocument, "%s: unknown node type %q", path, n.Type)
	}

	return b.modify(path, n, out)
}

func (b *builder) children(path string, n *Node, axis layout.Axis) ([]layout.Node, error) {
	out := make([]layout.Node, 0, len(n.Children))
	for i, c := range n.Children {
		child, err := b.node(childPath(path, i), c, axis)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// modify wraps a built node in its modifiers, innermost first.
func (b *builder) modify(path string, n *Node, out layout.Node) (layout.Node, error) {
	m := n.Modifiers
	if m != nil {
		if m.Padding != nil {
			out = &layout.Padding{Child: out, Insets: *m.Padding}
		}
		if f := m.Frame; f != nil {
			out = &layout.Frame{
				Child:     out,
				Alignment: f.Alignment,
				Width:     dimPtr(f.Width),
				Height:    dimPtr(f.Height),
				MinWidth:  dimPtr(f.MinWidth),
				MaxWidth:  dimPtr(f.MaxWidth),
				MinHeight: dimPtr(f.MinHeight),
				MaxHeight: dimPtr(f.MaxHeight),
			}
		}
		if d := m.Background; d != nil {
			deco, err := b.node(path+".background", d.Node, layout.Vertical)
			if err != nil {
				return nil, err
			}
			out = layout.Background(out, deco, d.Alignment)
		}
		if d := m.Overlay; d != nil {
			deco, err := b.node(path+".overlay", d.Node, layout.Vertical)
			if err != nil {
				return nil, err
			}
			out = layout.Overlay(out, deco, d.Alignment)
		}
		if a := m.Accessibility; a != nil {
			out = &layout.Semantics{Child: out, Label: a.Label, Header: a.Header, Hidden: a.Hidden}
		}
	}
	if b.opts.PackedTransport {
		out = layout.Transport(out)
	}
	if m != nil && m.Isolate {
		out = layout.Isolate(out)
	}
	return out, nil
}

func dimPtr(d *Dimension) *int {
	if d == nil {
		return nil
	}
	v := d.Int()
	return &v
}

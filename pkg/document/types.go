package document

import (
	"strconv"

	"github.com/nagyist/rover-android/pkg/layout"
)

// Node types.
const (
	TypeText      = "text"
	TypeImage     = "image"
	TypeRectangle = "rectangle"
	TypeSpacer    = "spacer"
	TypeEmpty     = "empty"
	TypeVStack    = "vstack"
	TypeHStack    = "hstack"
	TypeZStack    = "zstack"
	TypeScroll    = "scroll"
	TypeNative    = "native"
)

// containerTypes accept children.
var containerTypes = map[string]bool{
	TypeVStack: true,
	TypeHStack: true,
	TypeZStack: true,
	TypeScroll: true,
}

var leafTypes = map[string]bool{
	TypeText:      true,
	TypeImage:     true,
	TypeRectangle: true,
	TypeSpacer:    true,
	TypeEmpty:     true,
	TypeNative:    true,
}

// Document is one experience screen.
type Document struct {
	Version int    `json:"version,omitempty" yaml:"version,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`

	// Width and Height are the screen the document is designed for. Either
	// may be "inf" (for example a screen that scrolls as a whole).
	Width  *Dimension `json:"width,omitempty" yaml:"width,omitempty"`
	Height *Dimension `json:"height,omitempty" yaml:"height,omitempty"`

	// Metrics overrides the text metrics used to measure text nodes.
	Metrics *layout.TextMetrics `json:"text_metrics,omitempty" yaml:"text_metrics,omitempty"`

	Root *Node `json:"root" yaml:"root"`
}

// Constraints returns the root proposal for the document, taking the
// dimensions the document leaves out from screen.
func (d *Document) Constraints(screen layout.Size) layout.Constraints {
	w, h := screen.Width, screen.Height
	if d.Width != nil {
		w = d.Width.Int()
	}
	if d.Height != nil {
		h = d.Height.Int()
	}
	return layout.Propose(w, h)
}

// Node is a document node. Which fields apply depends on Type.
type Node struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`

	// Stacks and scroll containers.
	Children  []*Node          `json:"children,omitempty" yaml:"children,omitempty"`
	Alignment layout.Alignment `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Spacing   int              `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	Axis      *layout.Axis     `json:"axis,omitempty" yaml:"axis,omitempty"`

	// Text.
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`
	Color     string `json:"color,omitempty" yaml:"color,omitempty"`
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty"`
	MaxLines  int    `json:"max_lines,omitempty" yaml:"max_lines,omitempty"`

	// Image.
	Source    string       `json:"source,omitempty" yaml:"source,omitempty"`
	Intrinsic *layout.Size `json:"intrinsic,omitempty" yaml:"intrinsic,omitempty"`
	Resizing  string       `json:"resizing,omitempty" yaml:"resizing,omitempty"`

	// Rectangle.
	Fill         string `json:"fill,omitempty" yaml:"fill,omitempty"`
	CornerRadius int    `json:"corner_radius,omitempty" yaml:"corner_radius,omitempty"`

	// Spacer.
	MinLength int `json:"min_length,omitempty" yaml:"min_length,omitempty"`

	// Native host view.
	Natural *layout.Size `json:"natural,omitempty" yaml:"natural,omitempty"`

	Modifiers *Modifiers `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// IsContainer reports whether the node type accepts children.
func (n *Node) IsContainer() bool { return containerTypes[n.Type] }

// Modifiers decorate a node. They are applied in field order.
type Modifiers struct {
	Padding       *layout.Insets `json:"padding,omitempty" yaml:"padding,omitempty"`
	Frame         *Frame         `json:"frame,omitempty" yaml:"frame,omitempty"`
	Background    *Decoration    `json:"background,omitempty" yaml:"background,omitempty"`
	Overlay       *Decoration    `json:"overlay,omitempty" yaml:"overlay,omitempty"`
	Accessibility *Accessibility `json:"accessibility,omitempty" yaml:"accessibility,omitempty"`
	Isolate       bool           `json:"isolate,omitempty" yaml:"isolate,omitempty"`
}

// Frame is the frame modifier. Width and Height make a fixed frame; the
// Min and Max bounds make a flexible one. The two kinds cannot be mixed.
type Frame struct {
	Width     *Dimension       `json:"width,omitempty" yaml:"width,omitempty"`
	Height    *Dimension       `json:"height,omitempty" yaml:"height,omitempty"`
	MinWidth  *Dimension       `json:"min_width,omitempty" yaml:"min_width,omitempty"`
	MaxWidth  *Dimension       `json:"max_width,omitempty" yaml:"max_width,omitempty"`
	MinHeight *Dimension       `json:"min_height,omitempty" yaml:"min_height,omitempty"`
	MaxHeight *Dimension       `json:"max_height,omitempty" yaml:"max_height,omitempty"`
	Alignment layout.Alignment `json:"alignment,omitempty" yaml:"alignment,omitempty"`
}

// IsFixed reports whether the frame fixes a dimension.
func (f *Frame) IsFixed() bool { return f.Width != nil || f.Height != nil }

func (f *Frame) isFlexible() bool {
	return f.MinWidth != nil || f.MaxWidth != nil || f.MinHeight != nil || f.MaxHeight != nil
}

// Decoration is a background or overlay modifier.
type Decoration struct {
	Alignment layout.Alignment `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Node      *Node            `json:"node" yaml:"node"`
}

// Accessibility carries the semantics of a node.
type Accessibility struct {
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	Header bool   `json:"header,omitempty" yaml:"header,omitempty"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Walk visits n and every node below it, decorations included, depth
// first. The path names the position of each node from the root.
func (n *Node) Walk(path string, fn func(path string, n *Node) error) error {
	if n == nil {
		return nil
	}
	if err := fn(path, n); err != nil {
		return err
	}
	for i, c := range n.Children {
		if err := c.Walk(childPath(path, i), fn); err != nil {
			return err
		}
	}
	if m := n.Modifiers; m != nil {
		if m.Background != nil {
			if err := m.Background.Node.Walk(path+".background", fn); err != nil {
				return err
			}
		}
		if m.Overlay != nil {
			if err := m.Overlay.Node.Walk(path+".overlay", fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func childPath(parent string, i int) string {
	return parent + ".children[" + strconv.Itoa(i) + "]"
}

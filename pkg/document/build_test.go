package document

import (
	"fmt"
	"reflect"
	"testing"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

func mustParse(t *testing.T, data string) *Document {
	t.Helper()
	doc, err := Parse([]byte(data), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc
}

func mustBuild(t *testing.T, doc *Document, opts BuildOptions) layout.Node {
	t.Helper()
	n, err := Build(doc, opts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return n
}

func TestBuildAppliesModifiersInnermostFirst(t *testing.T) {
	doc := mustParse(t, `{"root": {
		"type": "text", "id": "label", "text": "Buy",
		"modifiers": {
			"padding": {"top": 4, "bottom": 4},
			"frame": {"min_width": 80},
			"background": {"node": {"type": "rectangle", "fill": "#000"}},
			"overlay": {"alignment": "topTrailing", "node": {"type": "image", "intrinsic": {"width": 8, "height": 8}}},
			"accessibility": {"label": "Buy now", "header": true}
		}
	}}`)

	n := mustBuild(t, doc, BuildOptions{})

	sem, ok := n.(*layout.Semantics)
	if !ok {
		t.Fatalf("outermost = %T, want *layout.Semantics", n)
	}
	if sem.Label != "Buy now" || !sem.Header {
		t.Errorf("Semantics = %+v", sem)
	}
	over, ok := sem.Child.(*layout.Decorated)
	if !ok || !over.Overlay || over.Alignment != layout.TopTrailing {
		t.Fatalf("second = %#v, want overlay aligned topTrailing", sem.Child)
	}
	bg, ok := over.Content.(*layout.Decorated)
	if !ok || bg.Overlay {
		t.Fatalf("third = %#v, want background", over.Content)
	}
	frame, ok := bg.Content.(*layout.Frame)
	if !ok || frame.MinWidth == nil || *frame.MinWidth != 80 {
		t.Fatalf("fourth = %#v, want frame with min width 80", bg.Content)
	}
	pad, ok := frame.Child.(*layout.Padding)
	if !ok || pad.Insets != (layout.Insets{Top: 4, Bottom: 4}) {
		t.Fatalf("fifth = %#v, want padding", frame.Child)
	}
	if text, ok := pad.Child.(*layout.Text); !ok || text.ID != "label" {
		t.Fatalf("innermost = %#v, want text#label", pad.Child)
	}

	p, err := layout.Layout(n, layout.Propose(200, 100))
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if want := (layout.Size{Width: 80, Height: 24}); p.Size != want {
		t.Errorf("Size = %v, want %v", p.Size, want)
	}
}

func TestBuildSpacerFollowsStackAxis(t *testing.T) {
	doc := mustParse(t, `{"root": {"type": "vstack", "children": [
		{"type": "spacer", "id": "v"},
		{"type": "hstack", "children": [{"type": "spacer", "id": "h"}]},
		{"type": "scroll", "axis": "horizontal", "children": [{"type": "spacer", "id": "s"}]},
		{"type": "hstack", "children": [{"type": "spacer", "id": "own", "axis": "vertical"}]}
	]}}`)

	root := mustBuild(t, doc, BuildOptions{}).(*layout.Stack)
	axes := map[string]layout.Axis{}
	var collect func(n layout.Node)
	collect = func(n layout.Node) {
		switch n := n.(type) {
		case *layout.Spacer:
			axes[n.ID] = n.Axis
		case *layout.Stack:
			for _, c := range n.Children {
				collect(c)
			}
		case *layout.ScrollContainer:
			for _, c := range n.Children {
				collect(c)
			}
		}
	}
	collect(root)

	want := map[string]layout.Axis{
		"v":   layout.Vertical,
		"h":   layout.Horizontal,
		"s":   layout.Horizontal,
		"own": layout.Vertical,
	}
	if !reflect.DeepEqual(axes, want) {
		t.Errorf("spacer axes = %v, want %v", axes, want)
	}
}

func TestBuildGeneratesStableIDs(t *testing.T) {
	doc := mustParse(t, homeJSON)

	first, err := layout.Layout(mustBuild(t, doc, BuildOptions{}), doc.Constraints(layout.Size{}))
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	second, _ := layout.Layout(mustBuild(t, doc, BuildOptions{}), doc.Constraints(layout.Size{}))
	if !reflect.DeepEqual(first, second) {
		t.Error("two builds of the same document differ")
	}

	if doc.Root.ID != "" {
		t.Error("Build() modified the document")
	}
	if got, want := first.ID, GeneratedID("home", "root", TypeVStack); got != want {
		t.Errorf("root ID = %q, want %q", got, want)
	}
	if got := first.Children[0].Placement.ID; got != "title" {
		t.Errorf("explicit ID = %q, want title", got)
	}

	other := GeneratedID("away", "root", TypeVStack)
	if other == first.ID {
		t.Error("generated IDs do not depend on the document name")
	}

	doc.AssignIDs()
	seen := map[string]bool{}
	_ = doc.Root.Walk("root", func(path string, n *Node) error {
		if n.ID == "" || seen[n.ID] {
			t.Errorf("%s: ID %q missing or duplicated", path, n.ID)
		}
		seen[n.ID] = true
		return nil
	})
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() after AssignIDs error: %v", err)
	}
}

func TestBuildPackedTransportMatchesDirect(t *testing.T) {
	doc := mustParse(t, homeJSON)
	c := layout.Propose(360, 640)

	direct, err := layout.Layout(mustBuild(t, doc, BuildOptions{}), c)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	packed, err := layout.Layout(mustBuild(t, doc, BuildOptions{PackedTransport: true}), c)
	if err != nil {
		t.Fatalf("Layout(packed) error: %v", err)
	}
	if !reflect.DeepEqual(direct, packed) {
		t.Error("packed transport changed the layout")
	}
}

func TestBuildIsolateContainsCodecFailure(t *testing.T) {
	const tall = `{"root": {"type": "vstack", "children": [
		{"type": "text", "text": "header"},
		{"type": "empty", "modifiers": {"frame": {"height": 40000}%s}}
	]}}`
	c := layout.Propose(360, 640)
	opts := BuildOptions{PackedTransport: true}

	_, err := layout.Layout(mustBuild(t, mustParse(t, fmt.Sprintf(tall, "")), opts), c)
	if !rerrors.Is(err, rerrors.ErrCodeForeignMeasurable) {
		t.Fatalf("Layout() error = %v, want %v", err, rerrors.ErrCodeForeignMeasurable)
	}

	p, err := layout.Layout(mustBuild(t, mustParse(t, fmt.Sprintf(tall, `, "isolate": true`)), opts), c)
	if err != nil {
		t.Fatalf("Layout(isolated) error: %v", err)
	}
	if p.Count() < 3 {
		t.Errorf("Count() = %d, want the isolated subtree placed", p.Count())
	}
}

func TestBuildNativeAndOptions(t *testing.T) {
	doc := mustParse(t, `{
		"text_metrics": {"char_width": 10, "line_height": 20},
		"root": {"type": "hstack", "children": [
			{"type": "native", "id": "map", "natural": {"width": 120, "height": 80}},
			{"type": "text", "text": "abc"},
			{"type": "rectangle"}
		]}
	}`)

	p, err := layout.Layout(mustBuild(t, doc, BuildOptions{InfinityDefault: 24}), layout.Unbounded())
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	sizes := []layout.Size{{Width: 120, Height: 80}, {Width: 30, Height: 20}, {Width: 24, Height: 24}}
	for i, want := range sizes {
		if got := p.Children[i].Placement.Size; got != want {
			t.Errorf("child %d Size = %v, want %v", i, got, want)
		}
	}
}

func TestBuildRejectsNil(t *testing.T) {
	if _, err := Build(nil, BuildOptions{}); !rerrors.Is(err, rerrors.ErrCodeInvalidDocument) {
		t.Errorf("Build(nil) error = %v", err)
	}
	doc := &Document{Root: &Node{Type: TypeEmpty, Modifiers: &Modifiers{Background: &Decoration{}}}}
	if _, err := Build(doc, BuildOptions{}); !rerrors.Is(err, rerrors.ErrCodeInvalidDocument) {
		t.Errorf("Build(missing decoration) error = %v", err)
	}
}

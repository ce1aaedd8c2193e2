package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

// samplePlacement is a 40x50 vstack holding a red banner with a rounded
// background and a vertical scroller whose green content is twice as tall
// as the scroller.
func samplePlacement() *layout.Placement {
	banner := &layout.Placement{ID: "banner", Kind: "rectangle", Size: layout.Size{Width: 40, Height: 10}, Fill: "#ff0000"}
	backdrop := &layout.Placement{Kind: "rectangle", Size: layout.Size{Width: 40, Height: 10}, Fill: "#000", CornerRadius: 2}
	decorated := &layout.Placement{Kind: "background", Size: layout.Size{Width: 40, Height: 10}}
	decorated.Children = []layout.Child{
		{Layer: layout.LayerBehind, Placement: backdrop},
		{Placement: banner},
	}

	content := &layout.Placement{ID: "feed", Kind: "rectangle", Size: layout.Size{Width: 40, Height: 60}, Fill: "#00ff00"}
	scroll := &layout.Placement{
		Kind:     "scroll",
		Size:     layout.Size{Width: 40, Height: 30},
		Scroll:   &layout.ScrollInfo{Axis: layout.Vertical, ContentSize: layout.Size{Width: 40, Height: 60}},
		Children: []layout.Child{{Placement: content}},
	}

	return &layout.Placement{
		ID:   "list",
		Kind: "vstack",
		Size: layout.Size{Width: 40, Height: 50},
		Children: []layout.Child{
			{Placement: decorated},
			{Offset: layout.Point{Y: 10}, Placement: scroll},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"PNG", FormatPNG, false},
		{" svg ", FormatSVG, false},
		{"dot", FormatDOT, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseFormat("pdf"); !rerrors.Is(err, rerrors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(pdf) code = %v, want %v", rerrors.GetCode(err), rerrors.ErrCodeInvalidFormat)
	}
}

func TestFormatMetadata(t *testing.T) {
	tests := []struct {
		f      Format
		ext    string
		ctype  string
		binary bool
	}{
		{FormatJSON, ".json", "application/json", false},
		{FormatPNG, ".png", "image/png", true},
		{FormatSVG, ".svg", "image/svg+xml", false},
		{FormatDOT, ".dot", "text/vnd.graphviz", false},
	}
	for _, tt := range tests {
		if got := tt.f.Ext(); got != tt.ext {
			t.Errorf("%s.Ext() = %q, want %q", tt.f, got, tt.ext)
		}
		if got := tt.f.ContentType(); got != tt.ctype {
			t.Errorf("%s.ContentType() = %q, want %q", tt.f, got, tt.ctype)
		}
		if got := tt.f.Binary(); got != tt.binary {
			t.Errorf("%s.Binary() = %v, want %v", tt.f, got, tt.binary)
		}
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if o.Scale != DefaultScale || o.Background != DefaultBackground {
		t.Errorf("SetDefaults() = %+v", o)
	}
	o = Options{Scale: 3, Background: "#000"}
	o.SetDefaults()
	if o.Scale != 3 || o.Background != "#000" {
		t.Errorf("SetDefaults() overwrote options: %+v", o)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	p := samplePlacement()

	if _, err := Render(ctx, nil, FormatJSON, Options{}); !rerrors.Is(err, rerrors.ErrCodeInvalidInput) {
		t.Errorf("Render(nil) error = %v, want %v", err, rerrors.ErrCodeInvalidInput)
	}
	if _, err := Render(ctx, p, Format("gif"), Options{}); !rerrors.Is(err, rerrors.ErrCodeUnsupported) {
		t.Errorf("Render(gif) error = %v, want %v", err, rerrors.ErrCodeUnsupported)
	}

	data, err := Render(ctx, p, FormatPNG, Options{})
	if err != nil {
		t.Fatalf("Render(png) error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("Render(png) output lacks the PNG signature")
	}

	data, err = Render(ctx, p, FormatDOT, Options{})
	if err != nil {
		t.Fatalf("Render(dot) error: %v", err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("Render(dot) = %q, want a digraph", data[:min(len(data), 20)])
	}
}

func TestSummary(t *testing.T) {
	p := samplePlacement()
	if got, want := Summary(p), "vstack 40x50, 6 boxes"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	p.Children[0].Placement.Error = "boom"
	if got, want := Summary(p), "vstack 40x50, 6 boxes, 1 isolated"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

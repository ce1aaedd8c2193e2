package document

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

const homeJSON = `{
  "name": "home",
  "width": 360,
  "height": "inf",
  "root": {
    "type": "vstack",
    "alignment": "leading",
    "spacing": 8,
    "children": [
      {"type": "text", "id": "title", "text": "Featured", "transform": "uppercase"},
      {"type": "spacer", "min_length": 4},
      {
        "type": "image",
        "source": "images/hero.png",
        "intrinsic": {"width": 200, "height": 100},
        "resizing": "fit",
        "modifiers": {"frame": {"max_width": "inf", "alignment": "top"}}
      },
      {
        "type": "rectangle",
        "fill": "#ff0000",
        "modifiers": {"frame": {"height": 40}, "accessibility": {"label": "Banner"}}
      }
    ]
  }
}`

const homeYAML = `
name: home
width: 360
height: inf
root:
  type: vstack
  alignment: leading
  spacing: 8
  children:
    - type: text
      id: title
      text: Featured
      transform: uppercase
    - type: spacer
      min_length: 4
    - type: image
      source: images/hero.png
      intrinsic: {width: 200, height: 100}
      resizing: fit
      modifiers:
        frame: {max_width: inf, alignment: top}
    - type: rectangle
      fill: "#ff0000"
      modifiers:
        frame: {height: 40}
        accessibility: {label: Banner}
`

func TestParseFormatsAgree(t *testing.T) {
	fromJSON, err := Parse([]byte(homeJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse(json) error: %v", err)
	}
	fromYAML, err := Parse([]byte(homeYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Parse(yaml) error: %v", err)
	}
	if !reflect.DeepEqual(fromJSON, fromYAML) {
		t.Errorf("json and yaml documents differ:\njson: %+v\nyaml: %+v", fromJSON.Root, fromYAML.Root)
	}

	if *fromJSON.Height != Inf {
		t.Errorf("Height = %v, want inf", fromJSON.Height)
	}
	if got := fromJSON.Root.Alignment; got != layout.Leading {
		t.Errorf("Alignment = %v, want leading", got)
	}
	frame := fromJSON.Root.Children[2].Modifiers.Frame
	if frame.MaxWidth == nil || *frame.MaxWidth != Inf || frame.Alignment != layout.Top {
		t.Errorf("frame = %+v, want max_width inf aligned top", frame)
	}
}

func TestConstraints(t *testing.T) {
	doc, err := Parse([]byte(homeJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	got := doc.Constraints(layout.Size{Width: 1000, Height: 800})
	if want := layout.Propose(360, layout.Infinity); got != want {
		t.Errorf("Constraints() = %v, want %v", got, want)
	}

	bare := &Document{Root: &Node{Type: TypeEmpty}}
	if got, want := bare.Constraints(layout.Size{Width: 320, Height: 480}), layout.Propose(320, 480); got != want {
		t.Errorf("Constraints() = %v, want %v", got, want)
	}
}

func TestReadRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"unknown json field", `{"root": {"type": "text", "colour": "#fff"}}`, FormatJSON},
		{"unknown yaml field", "root:\n  type: text\n  colour: '#fff'\n", FormatYAML},
		{"bad dimension", `{"width": "wide", "root": {"type": "empty"}}`, FormatJSON},
		{"bad alignment", `{"root": {"type": "vstack", "alignment": "middle"}}`, FormatJSON},
		{"bad axis", "root:\n  type: scroll\n  axis: diagonal\n", FormatYAML},
		{"empty yaml", "", FormatYAML},
		{"truncated json", `{"root": {`, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !rerrors.Is(err, rerrors.ErrCodeInvalidFormat) {
				t.Errorf("code = %v, want %v (%v)", rerrors.GetCode(err), rerrors.ErrCodeInvalidFormat, err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "home.yml")
	if err := os.WriteFile(path, []byte(homeYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if doc.Name != "home" || len(doc.Root.Children) != 4 {
		t.Errorf("ReadFile() = %q with %d children, want home with 4", doc.Name, len(doc.Root.Children))
	}

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	if !rerrors.Is(err, rerrors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) code = %v, want %v", rerrors.GetCode(err), rerrors.ErrCodeFileNotFound)
	}

	_, err = ReadFile(filepath.Join(dir, "home.toml"))
	if !rerrors.Is(err, rerrors.ErrCodeInvalidFormat) {
		t.Errorf("ReadFile(.toml) code = %v, want %v", rerrors.GetCode(err), rerrors.ErrCodeInvalidFormat)
	}
}

func TestWriteFileConvertsFormats(t *testing.T) {
	doc, err := Parse([]byte(homeJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "home.yaml")
	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "height: inf") {
		t.Errorf("yaml output lacks infinite height:\n%s", data)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Error("document changed after yaml conversion")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"screen.json", FormatJSON, false},
		{"screen.JSON", FormatJSON, false},
		{"dir/screen.yaml", FormatYAML, false},
		{"screen.yml", FormatYAML, false},
		{"screen.xml", "", true},
		{"screen", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v, want %q (err %v)", tt.path, got, err, tt.want, tt.wantErr)
		}
	}
}

package render

import (
	"bytes"
	"encoding/json"
	"io"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

type jsonOutput struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Errors []string          `json:"errors,omitempty"`
	Boxes  []jsonBox         `json:"boxes"`
	Root   *layout.Placement `json:"root"`
}

type jsonBox struct {
	ID    string       `json:"id,omitempty"`
	Kind  string       `json:"kind"`
	X     int          `json:"x"`
	Y     int          `json:"y"`
	W     int          `json:"width"`
	H     int          `json:"height"`
	Depth int          `json:"depth"`
	Clip  *layout.Rect `json:"clip,omitempty"`
}

// RenderJSON encodes the placement tree together with its absolute boxes
// in paint order.
func RenderJSON(p *layout.Placement) ([]byte, error) {
	out := jsonOutput{
		Width:  p.Size.Width,
		Height: p.Size.Height,
		Errors: p.Errors(),
		Root:   p,
	}
	for _, b := range layout.Flatten(p) {
		out.Boxes = append(out.Boxes, jsonBox{
			ID:    b.Placement.ID,
			Kind:  b.Placement.Kind,
			X:     b.Rect.X,
			Y:     b.Rect.Y,
			W:     b.Rect.Width,
			H:     b.Rect.Height,
			Depth: b.Depth,
			Clip:  b.Clip,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInternal, err, "encode placement")
	}
	return buf.Bytes(), nil
}

// ReadJSON reads back the placement tree written by [RenderJSON]. The box
// list is derived data and is ignored.
func ReadJSON(r io.Reader) (*layout.Placement, error) {
	var in jsonOutput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInvalidFormat, err, "decode placement")
	}
	if in.Root == nil {
		return nil, rerrors.New(rerrors.ErrCodeInvalidFormat, "placement has no root")
	}
	return in.Root, nil
}

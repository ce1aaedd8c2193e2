package layout

import (
	"fmt"
	"strings"
)

// Alignment positions a child inside a box: four corners, four edges or
// the center.
type Alignment uint8

const (
	Center Alignment = iota
	TopLeading
	Top
	TopTrailing
	Leading
	Trailing
	BottomLeading
	Bottom
	BottomTrailing
)

var alignmentNames = [...]string{
	Center:         "center",
	TopLeading:     "topLeading",
	Top:            "top",
	TopTrailing:    "topTrailing",
	Leading:        "leading",
	Trailing:       "trailing",
	BottomLeading:  "bottomLeading",
	Bottom:         "bottom",
	BottomTrailing: "bottomTrailing",
}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", a)
}

// ParseAlignment parses a camel-case or snake-case alignment name.
// The empty string yields Center.
func ParseAlignment(s string) (Alignment, error) {
	if s == "" {
		return Center, nil
	}
	norm := strings.ToLower(strings.ReplaceAll(s, "_", ""))
	for i, name := range alignmentNames {
		if strings.ToLower(name) == norm {
			return Alignment(i), nil
		}
	}
	return Center, fmt.Errorf("unknown alignment %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(b []byte) error {
	v, err := ParseAlignment(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

type edge uint8

const (
	edgeStart edge = iota
	edgeMiddle
	edgeEnd
)

// along returns the alignment's component on one axis.
func (a Alignment) along(axis Axis) edge {
	var h, v edge
	switch a {
	case TopLeading:
		h, v = edgeStart, edgeStart
	case Top:
		h, v = edgeMiddle, edgeStart
	case TopTrailing:
		h, v = edgeEnd, edgeStart
	case Leading:
		h, v = edgeStart, edgeMiddle
	case Trailing:
		h, v = edgeEnd, edgeMiddle
	case BottomLeading:
		h, v = edgeStart, edgeEnd
	case Bottom:
		h, v = edgeMiddle, edgeEnd
	case BottomTrailing:
		h, v = edgeEnd, edgeEnd
	default:
		h, v = edgeMiddle, edgeMiddle
	}
	if axis == Horizontal {
		return h
	}
	return v
}

func (e edge) offset(box, child int) int {
	switch e {
	case edgeStart:
		return 0
	case edgeEnd:
		return box - child
	}
	return box/2 - child/2
}

// Offset returns where a child of the given size goes inside box. The
// offset is relative to box, never to a box grown around an oversized
// child, so it is negative when the child overflows.
func (a Alignment) Offset(box, child Size) Point {
	return Point{
		X: a.along(Horizontal).offset(box.Width, child.Width),
		Y: a.along(Vertical).offset(box.Height, child.Height),
	}
}

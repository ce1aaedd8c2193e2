package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// cells measures terminal cell widths. Ambiguous-width runes count as
// one cell regardless of the locale.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// TextTransform changes the case of a text before it is measured.
type TextTransform uint8

const (
	TransformNone TextTransform = iota
	TransformUppercase
	TransformLowercase
)

// ParseTextTransform parses "uppercase", "lowercase" or "" (none).
func ParseTextTransform(s string) (TextTransform, bool) {
	switch s {
	case "":
		return TransformNone, true
	case "uppercase":
		return TransformUppercase, true
	case "lowercase":
		return TransformLowercase, true
	}
	return TransformNone, false
}

func (t TextTransform) apply(s string) string {
	switch t {
	case TransformUppercase:
		return strings.ToUpper(s)
	case TransformLowercase:
		return strings.ToLower(s)
	}
	return s
}

// TextMetrics converts terminal-style cells to layout units. Wide runes
// (East Asian) occupy two cells.
type TextMetrics struct {
	CharWidth  int `json:"char_width" toml:"char_width" yaml:"char_width"`
	LineHeight int `json:"line_height" toml:"line_height" yaml:"line_height"`
}

// DefaultTextMetrics is used when a Text carries zero metrics.
var DefaultTextMetrics = TextMetrics{CharWidth: 8, LineHeight: 16}

// Text is word-wrapped text.
type Text struct {
	Meta
	Text      string
	Color     string
	Transform TextTransform
	MaxLines  int // zero means unlimited
	Metrics   TextMetrics
}

func (t *Text) Describe() string { return t.describe("text") }

func (t *Text) metrics() TextMetrics {
	m := t.Metrics
	if m.CharWidth <= 0 {
		m.CharWidth = DefaultTextMetrics.CharWidth
	}
	if m.LineHeight <= 0 {
		m.LineHeight = DefaultTextMetrics.LineHeight
	}
	return m
}

// columns converts a proposed width to a cell count; -1 means unlimited.
func (t *Text) columns(width int) int {
	if width == Infinity {
		return -1
	}
	return max(width/t.metrics().CharWidth, 1)
}

// layoutLines wraps the text to the proposal and applies the line limits.
func (t *Text) layoutLines(proposed Size) []string {
	text := t.Transform.apply(t.Text)
	if text == "" {
		return nil
	}
	cols := t.columns(proposed.Width)
	lines := wrapText(text, cols)

	limit := t.MaxLines
	if proposed.Height != Infinity {
		byHeight := max(proposed.Height/t.metrics().LineHeight, 1)
		if limit == 0 || byHeight < limit {
			limit = byHeight
		}
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
		last := lines[limit-1] + "…"
		if cols > 0 {
			last = cells.Truncate(last, cols, "…")
		}
		lines[limit-1] = last
	}
	return lines
}

func (t *Text) size(lines []string) Size {
	m := t.metrics()
	widest := 0
	for _, l := range lines {
		widest = max(widest, cells.StringWidth(l))
	}
	return Size{Width: widest * m.CharWidth, Height: len(lines) * m.LineHeight}
}

func (t *Text) Measure(c Constraints) (*Placement, error) {
	lines := t.layoutLines(c.Max())
	pl := t.place("text", t.size(lines))
	pl.Lines = lines
	pl.Fill = t.Color
	return pl, nil
}

func (t *Text) FallbackMeasure(proposed Size) (Size, error) {
	return t.size(t.layoutLines(proposed)), nil
}

// FlexRange spans from the longest word to the unwrapped width
// horizontally. Vertically the height is fixed by the cross width and the
// line limit.
func (t *Text) FlexRange(axis Axis, cross int) (FlexRange, error) {
	m := t.metrics()
	if axis == Vertical {
		return Fixed(len(t.layoutLines(Size{cross, Infinity})) * m.LineHeight), nil
	}
	natural, longest := 0, 0
	for _, line := range wrapText(t.Transform.apply(t.Text), -1) {
		natural = max(natural, cells.StringWidth(line))
		for _, w := range strings.Fields(line) {
			longest = max(longest, cells.StringWidth(w))
		}
	}
	return FlexRange{Min: longest * m.CharWidth, Max: natural * m.CharWidth}, nil
}

// wrapText breaks text into lines of at most cols cells, preferring word
// boundaries and splitting words that do not fit on a line of their own.
// cols < 0 only breaks at explicit newlines; whitespace still collapses.
func wrapText(text string, cols int) []string {
	if text == "" {
		return nil
	}
	paragraphs := strings.Split(text, "\n")
	if cols < 0 {
		for i, para := range paragraphs {
			paragraphs[i] = strings.Join(strings.Fields(para), " ")
		}
		return paragraphs
	}
	var lines []string
	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for _, w := range words {
			for cells.StringWidth(w) > cols {
				if cur != "" {
					lines = append(lines, cur)
					cur = ""
				}
				head, tail := splitCells(w, cols)
				lines = append(lines, head)
				w = tail
			}
			switch {
			case w == "":
			case cur == "":
				cur = w
			case cells.StringWidth(cur)+1+cells.StringWidth(w) <= cols:
				cur += " " + w
			default:
				lines = append(lines, cur)
				cur = w
			}
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

// splitCells splits s after at most cols cells, always taking at least one
// rune.
func splitCells(s string, cols int) (head, tail string) {
	width := 0
	for i, r := range s {
		rw := cells.RuneWidth(r)
		if width+rw > cols && i > 0 {
			return s[:i], s[i:]
		}
		width += rw
	}
	return s, ""
}

package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nagyist/rover-android/pkg/layout"
)

// Dimension is a document length. It decodes from a number or from the
// string "inf", which stands for layout.Infinity.
type Dimension int

// Inf is the unbounded dimension.
const Inf = Dimension(layout.Infinity)

// Dim returns a pointer to a Dimension, for optional fields.
func Dim(v int) *Dimension {
	d := Dimension(v)
	return &d
}

// Int returns the dimension in layout units.
func (d Dimension) Int() int { return int(d) }

func (d Dimension) String() string {
	if d == Inf {
		return "inf"
	}
	return strconv.Itoa(int(d))
}

func (d *Dimension) parse(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", ".inf", "+inf", "infinity":
		*d = Inf
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid dimension %q: want a whole number or \"inf\"", s)
	}
	*d = Dimension(n)
	return nil
}

// ParseDimension parses a whole number or "inf".
func ParseDimension(s string) (Dimension, error) {
	var d Dimension
	err := d.parse(s)
	return d, err
}

// UnmarshalText implements encoding.TextUnmarshaler, which TOML and flag
// decoding use.
func (d *Dimension) UnmarshalText(b []byte) error { return d.parse(string(b)) }

// MarshalJSON writes Inf as "inf" and other values as numbers.
func (d Dimension) MarshalJSON() ([]byte, error) {
	if d == Inf {
		return []byte(`"inf"`), nil
	}
	return []byte(strconv.Itoa(int(d))), nil
}

// UnmarshalJSON accepts a number or a string.
func (d *Dimension) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return d.parse(s)
	}
	return d.parse(string(b))
}

// MarshalYAML writes Inf as inf and other values as integers.
func (d Dimension) MarshalYAML() (any, error) {
	if d == Inf {
		return "inf", nil
	}
	return int(d), nil
}

// UnmarshalYAML accepts a scalar number, inf or .inf.
func (d *Dimension) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: dimension must be a scalar", value.Line)
	}
	return d.parse(value.Value)
}

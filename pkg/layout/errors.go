package layout

import (
	"errors"
	"fmt"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
)

// InvalidEncodingError reports a transport value read as a packed pair
// without its marker bit, a raw value carrying the marker, or a packed value
// whose halves fall outside the patterns Encode produces.
type InvalidEncodingError struct {
	Value  Packed
	Reason string
	Node   string // description of the node the value was read for, if known
}

func (e *InvalidEncodingError) Error() string {
	msg := fmt.Sprintf("invalid encoding 0x%08x: %s", uint32(e.Value), e.Reason)
	if e.Node != "" {
		msg += " (node " + e.Node + ")"
	}
	return msg
}

func (e *InvalidEncodingError) Code() rerrors.Code { return rerrors.ErrCodeInvalidEncoding }

// ValueOutOfRangeError reports a dimension that cannot be represented in
// the transport encoding.
type ValueOutOfRangeError struct {
	Field string
	Value int
	Node  string
}

func (e *ValueOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s %d out of encodable range [0, %d]", e.Field, e.Value, MaxEncodable)
	if e.Node != "" {
		msg += " (node " + e.Node + ")"
	}
	return msg
}

func (e *ValueOutOfRangeError) Code() rerrors.Code { return rerrors.ErrCodeValueOutOfRange }

// ForeignMeasurableError reports a flex-range or fallback query that
// reached a measurable which does not speak the measurement protocol, or
// whose answer could not be decoded.
type ForeignMeasurableError struct {
	Node  string
	Query string
	Err   error
}

func (e *ForeignMeasurableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("foreign measurable %s cannot answer %s: %v", e.Node, e.Query, e.Err)
	}
	return fmt.Sprintf("foreign measurable %s cannot answer %s", e.Node, e.Query)
}

func (e *ForeignMeasurableError) Unwrap() error { return e.Err }

func (e *ForeignMeasurableError) Code() rerrors.Code { return rerrors.ErrCodeForeignMeasurable }

// Annotate attaches node identity to codec errors that do not have one yet.
// Other errors are returned unchanged.
func Annotate(err error, n Node) error {
	if err == nil || n == nil {
		return err
	}
	var enc *InvalidEncodingError
	if errors.As(err, &enc) && enc.Node == "" {
		enc.Node = n.Describe()
	}
	var rng *ValueOutOfRangeError
	if errors.As(err, &rng) && rng.Node == "" {
		rng.Node = n.Describe()
	}
	return err
}

package layout

import (
	"errors"
	"testing"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
)

var sentinelValues = []int{0, 1, 2, 255, 256, 1080, 2048, 16384, MaxEncodable - 1, MaxEncodable, GreatestFinite, Infinity}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for w := 0; w <= MaxEncodable; w++ {
		for _, h := range sentinelValues {
			assertRoundTrip(t, w, h)
			assertRoundTrip(t, h, w)
		}
	}
	for _, w := range sentinelValues {
		for _, h := range sentinelValues {
			assertRoundTrip(t, w, h)
		}
	}
}

func assertRoundTrip(t *testing.T, w, h int) {
	t.Helper()
	p, err := Encode(w, h)
	if err != nil {
		t.Fatalf("Encode(%d, %d) error: %v", w, h, err)
	}
	if !IsPacked(int32(p)) {
		t.Fatalf("Encode(%d, %d) = %#x, marker bit not set", w, h, uint32(p))
	}
	gw, gh, err := Decode(p)
	if err != nil {
		t.Fatalf("Decode(Encode(%d, %d)) error: %v", w, h, err)
	}
	if gw != w || gh != h {
		t.Fatalf("Decode(Encode(%d, %d)) = (%d, %d)", w, h, gw, gh)
	}
}

func TestEncodeLayout(t *testing.T) {
	tests := []struct {
		w, h int
		want uint32
	}{
		{0, 0, 0x80000000},
		{1, 2, 0x80010002},
		{100, 50, 0x80640032},
		{Infinity, Infinity, 0xffffffff},
		{GreatestFinite, GreatestFinite, 0xfffefffe},
		{MaxEncodable, Infinity, 0xfffdffff},
	}

	for _, tt := range tests {
		p, err := Encode(tt.w, tt.h)
		if err != nil {
			t.Fatalf("Encode(%d, %d) error: %v", tt.w, tt.h, err)
		}
		if uint32(p) != tt.want {
			t.Errorf("Encode(%d, %d) = %#x, want %#x", tt.w, tt.h, uint32(p), tt.want)
		}
	}
}

func TestEncodeRejectsOutOfDomain(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		field string
	}{
		{"negative width", -1, 0, "width"},
		{"negative height", 0, -5, "height"},
		{"greatest finite pattern as width", 32766, 0, "width"},
		{"infinity pattern as width", 32767, 0, "width"},
		{"greatest finite pattern as height", 0, 32766, "height"},
		{"infinity pattern as height", 0, 32767, "height"},
		{"beyond 15 bits", 40000, 0, "width"},
		{"beyond 16 bits", 0, 70000, "height"},
		{"just below sentinel", 0, GreatestFinite - 1, "height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.w, tt.h)
			var rng *ValueOutOfRangeError
			if !errors.As(err, &rng) {
				t.Fatalf("Encode(%d, %d) error = %v, want ValueOutOfRangeError", tt.w, tt.h, err)
			}
			if rng.Field != tt.field {
				t.Errorf("Field = %q, want %q", rng.Field, tt.field)
			}
			if !rerrors.Is(err, rerrors.ErrCodeValueOutOfRange) {
				t.Errorf("code = %v, want %v", rerrors.GetCode(err), rerrors.ErrCodeValueOutOfRange)
			}
		})
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		v    uint32
	}{
		{"raw zero", 0},
		{"raw measurement", 320},
		{"raw max int", 0x7fffffff},
		{"low half above domain", 0x80007ffe},
		{"low half just below sentinels", 0x8000fffd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(Packed(int32(tt.v)))
			var enc *InvalidEncodingError
			if !errors.As(err, &enc) {
				t.Fatalf("Decode(%#x) error = %v, want InvalidEncodingError", tt.v, err)
			}
			if rerrors.GetCode(err) != rerrors.ErrCodeInvalidEncoding {
				t.Errorf("code = %v, want %v", rerrors.GetCode(err), rerrors.ErrCodeInvalidEncoding)
			}
		})
	}
}

func TestRangeRoundTrip(t *testing.T) {
	ranges := []FlexRange{
		Fixed(0),
		Fixed(48),
		{Min: 0, Max: Infinity},
		{Min: 10, Max: GreatestFinite},
		{Min: MaxEncodable, Max: Infinity},
		{Min: Infinity, Max: Infinity},
	}
	for _, r := range ranges {
		p, err := EncodeRange(r)
		if err != nil {
			t.Fatalf("EncodeRange(%v) error: %v", r, err)
		}
		got, err := DecodeRange(p)
		if err != nil {
			t.Fatalf("DecodeRange(EncodeRange(%v)) error: %v", r, err)
		}
		if got != r {
			t.Errorf("DecodeRange(EncodeRange(%v)) = %v", r, got)
		}
	}
}

func TestRangeRejectsInverted(t *testing.T) {
	if _, err := EncodeRange(FlexRange{Min: 10, Max: 5}); err == nil {
		t.Error("EncodeRange(10..5) error = nil, want error")
	}
	p, _ := Encode(10, 5)
	if _, err := DecodeRange(p); err == nil {
		t.Error("DecodeRange(10..5) error = nil, want error")
	}
}

func TestInvalidEncodingErrorMessage(t *testing.T) {
	err := &InvalidEncodingError{Value: 320, Reason: "marker bit not set", Node: "text#title"}
	want := "invalid encoding 0x00000140: marker bit not set (node text#title)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

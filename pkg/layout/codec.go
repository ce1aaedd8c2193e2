package layout

// Packed carries a pair of dimensions (or a flex range) through a transport
// that only moves a single signed 32-bit scalar at a time. Width (or the
// range minimum) occupies bits 16..30, height (or the range maximum) bits
// 0..15, and the sign bit marks the value as packed. A host never produces
// a negative measurement, so a set sign bit cannot be confused with a raw
// size.
type Packed int32

const (
	markerBit = 1 << 31

	hiInfinity       = 0x7fff
	hiGreatestFinite = 0x7ffe
	loInfinity       = 0xffff
	loGreatestFinite = 0xfffe

	// MaxEncodable is the largest ordinary dimension the codec accepts. The
	// two magnitudes above it share bit patterns with the sentinels.
	MaxEncodable = hiGreatestFinite - 1
)

// IsPacked reports whether v carries the packed marker.
func IsPacked(v int32) bool { return v < 0 }

// Encode packs a width and height. Both must be in [0, MaxEncodable] or be
// one of the Infinity and GreatestFinite sentinels.
func Encode(width, height int) (Packed, error) {
	hi, err := encodeHalf("width", width, hiInfinity, hiGreatestFinite)
	if err != nil {
		return 0, err
	}
	lo, err := encodeHalf("height", height, loInfinity, loGreatestFinite)
	if err != nil {
		return 0, err
	}
	return pack(hi, lo), nil
}

// EncodeSize is Encode for a Size.
func EncodeSize(s Size) (Packed, error) { return Encode(s.Width, s.Height) }

// Decode unpacks a value produced by Encode.
func Decode(p Packed) (width, height int, err error) {
	hi, lo, err := unpack(p)
	if err != nil {
		return 0, 0, err
	}
	return decodeHalf(hi, hiInfinity, hiGreatestFinite), decodeHalf(lo, loInfinity, loGreatestFinite), nil
}

// DecodeSize is Decode returning a Size.
func DecodeSize(p Packed) (Size, error) {
	w, h, err := Decode(p)
	return Size{Width: w, Height: h}, err
}

// EncodeRange packs a flex range. The bounds follow the domain of Encode
// and must satisfy min <= max.
func EncodeRange(r FlexRange) (Packed, error) {
	if r.Min > r.Max {
		return 0, &ValueOutOfRangeError{Field: "range minimum", Value: r.Min}
	}
	return Encode(r.Min, r.Max)
}

// DecodeRange unpacks a value produced by EncodeRange.
func DecodeRange(p Packed) (FlexRange, error) {
	lo, hi, err := Decode(p)
	if err != nil {
		return FlexRange{}, err
	}
	if lo > hi {
		return FlexRange{}, &InvalidEncodingError{Value: p, Reason: "range minimum exceeds maximum"}
	}
	return FlexRange{Min: lo, Max: hi}, nil
}

func pack(hi, lo uint32) Packed {
	return Packed(int32(markerBit | hi<<16 | lo))
}

func unpack(p Packed) (hi, lo uint32, err error) {
	if !IsPacked(int32(p)) {
		return 0, 0, &InvalidEncodingError{Value: p, Reason: "marker bit not set"}
	}
	u := uint32(p)
	hi = (u >> 16) & hiInfinity
	lo = u & loInfinity
	if lo > MaxEncodable && lo < loGreatestFinite {
		return 0, 0, &InvalidEncodingError{Value: p, Reason: "low half outside encodable domain"}
	}
	return hi, lo, nil
}

func encodeHalf(field string, v int, inf, greatest uint32) (uint32, error) {
	switch {
	case v == Infinity:
		return inf, nil
	case v == GreatestFinite:
		return greatest, nil
	case v < 0 || v > MaxEncodable:
		return 0, &ValueOutOfRangeError{Field: field, Value: v}
	}
	return uint32(v), nil
}

func decodeHalf(v, inf, greatest uint32) int {
	switch v {
	case inf:
		return Infinity
	case greatest:
		return GreatestFinite
	}
	return int(v)
}

package ebml

import (
	"math"

	"github.com/gomkv/gomkv/reader"
)

// The primitive decoders below all take an already-known body length (the
// element's Size from its header) and read exactly that many bytes,
// matching the teacher's ReadUInt/ReadInt/ReadFloat/ReadString (ebml.go)
// generalized to the five EBML primitive value types plus the spec's
// NonZero/Positive/NonEmpty refinement wrappers (spec §4.C).

// Unsigned reads an n-byte (n = 0..8) big-endian unsigned integer body.
// A zero-length body decodes to 0, per EBML convention.
func Unsigned(r *reader.Reader, n int) (uint64, error) {
	if n == 0 {
		return 0, nil
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, c := range b {
		v = (v << 8) | uint64(c)
	}
	return v, nil
}

// Signed reads an n-byte big-endian two's-complement signed integer body.
func Signed(r *reader.Reader, n int) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	b, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	v := int64(int8(b[0]))
	for _, c := range b[1:] {
		v = (v << 8) | int64(c)
	}
	return v, nil
}

// Float reads a 0-, 4-, or 8-byte IEEE-754 float body: a zero-length body
// decodes to 0.0 (spec §4.B); any other length is malformed input.
func Float(r *reader.Reader, n int) (float64, error) {
	switch n {
	case 0:
		return 0, nil
	case 4:
		v, err := r.ReadU32BE()
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(v)), nil
	case 8:
		v, err := r.ReadU64BE()
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(v), nil
	default:
		return 0, ErrReadOverflow
	}
}

// String reads an n-byte ASCII/UTF-8 body, trimming trailing NUL padding
// (Matroska zero-pads fixed-width string elements).
func String(r *reader.Reader, n int) (string, error) {
	s, err := r.ReadString(n)
	if err != nil {
		return "", err
	}
	end := len(s)
	for end > 0 && s[end-1] == 0 {
		end--
	}
	return s[:end], nil
}

// Bytes reads an n-byte opaque binary body.
func Bytes(r *reader.Reader, n int) ([]byte, error) {
	return r.ReadBytes(n)
}

// Bool reads an unsigned integer body as a boolean: 0 is false, anything else true
// (Matroska has no canonical boolean type; this mirrors how FlagDefault /
// FlagEnabled-style uinteger elements are conventionally treated as bools).
func Bool(r *reader.Reader, n int) (bool, error) {
	v, err := Unsigned(r, n)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// NonZeroUnsigned reads an unsigned integer body and rejects a zero value,
// for elements like TrackUID/CueTrack whose schema marks them non-zero.
func NonZeroUnsigned(r *reader.Reader, n int) (uint64, error) {
	v, err := Unsigned(r, n)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, ErrExpectedNonZero
	}
	return v, nil
}

// PositiveFloat reads a float body and rejects a non-positive value, for
// elements like TrackTimestampScale/SamplingFrequency.
func PositiveFloat(r *reader.Reader, n int) (float64, error) {
	v, err := Float(r, n)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, ErrExpectedNonZero
	}
	return v, nil
}

// NonEmptyString reads a string body and rejects an empty result, for
// elements like DocType.
func NonEmptyString(r *reader.Reader, n int) (string, error) {
	v, err := String(r, n)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", ErrExpectedNonZero
	}
	return v, nil
}

// Enum maps a decoded unsigned value to one of variants, returning
// ErrInvalidVariant if it doesn't appear, for schema Enum elements (spec
// §4.C, e.g. TrackType, ContentCompAlgo).
func Enum[T comparable](r *reader.Reader, n int, variants map[uint64]T) (T, error) {
	v, err := Unsigned(r, n)
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := variants[v]
	if !ok {
		var zero T
		return zero, ErrInvalidVariant
	}
	return t, nil
}

// BitFlags reads an unsigned body and returns it as a raw bitmask, for
// schema elements whose bits are independently meaningful rather than a
// single enumerated value. known is the mask of bits the schema defines;
// any set bit outside it is rejected (spec §4.B, "fail on unknown bits").
func BitFlags(r *reader.Reader, n int, known uint64) (uint64, error) {
	v, err := Unsigned(r, n)
	if err != nil {
		return 0, err
	}
	if v&^known != 0 {
		return 0, ErrInvalidVariant
	}
	return v, nil
}

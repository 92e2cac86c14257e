package ebml

import "github.com/pkg/errors"

// Sentinel errors for the EBML engine (spec §7's element/vint error kinds).
// All are registered as malformed: encountering any of them while probing a
// stream for format detection must score that attempt 0, not abort the
// probe (spec §7, "MalformedInput").
var (
	ErrInvalidVint      = errors.New("ebml: vint leading byte is zero")
	ErrInvalidID        = errors.New("ebml: element id is reserved (zero or all-ones)")
	ErrInvalidVariant   = errors.New("ebml: enum value has no matching variant")
	ErrExpectedNonZero  = errors.New("ebml: value must not be zero")
	ErrDuplicateElement = errors.New("ebml: non-repeatable child element appeared twice")
	ErrMissingElement   = errors.New("ebml: required child element is absent")
	ErrReadOverflow     = errors.New("ebml: element body overran its declared size")
	ErrUnknownSizeDepth = errors.New("ebml: unknown-size element nested past the top level")
	ErrMaxDepth         = errors.New("ebml: element nesting exceeded the bounded stack depth")
)

var malformedSet = []error{
	ErrInvalidVint, ErrInvalidID, ErrInvalidVariant, ErrExpectedNonZero,
	ErrDuplicateElement, ErrMissingElement, ErrReadOverflow,
	ErrUnknownSizeDepth, ErrMaxDepth,
}

// IsMalformed reports whether err is (or wraps) one of this package's
// sentinel parse errors, per spec §7's "score 0 on malformed input" rule.
func IsMalformed(err error) bool {
	for _, e := range malformedSet {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

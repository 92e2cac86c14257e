package reader

import "github.com/pkg/errors"

// Sentinel errors for the Reader's failure modes (spec §7: Backpressure,
// State violation, Stream end categories). Callers should match these with
// errors.Is; wrap sites attach positional context with errors.Wrapf.
var (
	// ErrPeekBufferExhausted is returned when a read while peeking would
	// require discarding buffered data that set_peeking(false) must still
	// be able to rewind through.
	ErrPeekBufferExhausted = errors.New("reader: peek buffer exhausted")

	// ErrUnexpectedEOF names the short-read condition. Reader itself does
	// not return it: a read that asked for a definite number of bytes and
	// ran out of stream first fails with io.ErrUnexpectedEOF.
	ErrUnexpectedEOF = errors.New("reader: unexpected EOF")
)

// InvalidSeekError reports that a seek ended somewhere other than the
// requested offset: a forward consume that ran out of stream first, a
// backward seek on a non-seekable stream to before the retained buffer, or
// a delegated stream seek that landed elsewhere.
type InvalidSeekError struct {
	Requested uint64
	Landed    uint64
}

func (e *InvalidSeekError) Error() string {
	return errors.Errorf("reader: invalid seek: requested %d, landed at %d", e.Requested, e.Landed).Error()
}

// MalformedInput marks sentinel/typed errors that spec §7 says must score
// probing attempts as 0 rather than propagate. InvalidSeekError deliberately
// does NOT implement it: landing past a requested seek is a state
// violation, not a parse failure, and should propagate during probing too.
type MalformedInput interface {
	malformedInput()
}

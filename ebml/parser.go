package ebml

import (
	"io"

	"github.com/pkg/errors"

	"github.com/gomkv/gomkv/reader"
)

// MaxDepth bounds nested master-element recursion (spec §4.D, "fixed-depth
// stack of active master frames, depth <= 16"). The original async engine
// needed an explicit stack so a parse could suspend and resume without
// unwinding Rust's call stack; Go's goroutines don't have that constraint,
// so ReadChildren recurses through ordinary Go calls and enforces the same
// bound with a plain depth counter instead of a hand-rolled stack.
const MaxDepth = 16

// Handler is invoked for each recognised child element. It must consume
// exactly the child's body (ReadChildren tolerates leftover bytes up to
// child.Size, but never more).
type Handler func(r *reader.Reader, child ElemHdr) error

// ReadHeader decodes one element header (VINT-Id followed by VINT-Size) at
// the reader's current position.
func ReadHeader(r *reader.Reader) (ElemHdr, error) {
	id, idLen, err := DecodeVint(r, VintID)
	if err != nil {
		return ElemHdr{}, err
	}
	size, sizeLen, err := DecodeVint(r, VintSize)
	if err != nil {
		return ElemHdr{}, err
	}
	return ElemHdr{
		ID:       id,
		Size:     size,
		BodyPos:  r.Position(),
		HeaderSz: idLen + sizeLen,
	}, nil
}

// ReadChildren iterates the children of a master element whose body runs
// from the reader's current position to frameEnd (only meaningful when
// hasEnd is true). recognised reports whether a decoded child ID belongs to
// the containing master's ID set (spec §4.C point 3); children outside it
// are skipped rather than handed to handler. depth is the caller's current
// nesting depth, used to enforce MaxDepth for children that are themselves
// masters — handler is responsible for incrementing it on its own
// recursive ReadChildren call.
func ReadChildren(r *reader.Reader, frameEnd uint64, hasEnd bool, depth int, recognised func(id uint64) bool, handler Handler) error {
	if depth > MaxDepth {
		return ErrMaxDepth
	}

	for {
		if hasEnd {
			remaining := frameEnd - r.Position()
			if remaining < 2 {
				break
			}
		}

		start := r.Position()
		child, err := ReadHeader(r)
		if err != nil {
			if hasEnd {
				return err
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Unknown-end master: EOF exactly at the start of the next
				// child header is a clean end, not a parse failure.
				if r.Position() == start {
					break
				}
			}
			return err
		}

		var childEnd uint64
		childHasEnd := hasEnd
		if !child.Unknown() {
			childEnd = child.BodyPos + child.Size
			if hasEnd && childEnd > frameEnd {
				return ErrReadOverflow
			}
			childHasEnd = true
		} else if hasEnd {
			childEnd = frameEnd
		} else {
			childHasEnd = false
		}

		if recognised(child.ID) {
			if err := handler(r, child); err != nil {
				return err
			}
		} else if err := skipChild(r, child, childEnd, childHasEnd); err != nil {
			return err
		}

		if err := tolerateLeftover(r, child, childEnd, childHasEnd); err != nil {
			return err
		}
	}
	return nil
}

// skipChild discards a child's body without interpreting it. Spec §4.D:
// skipping an unsized child of an unknown-end frame is forbidden outright,
// since there is nothing to bound the skip by.
func skipChild(r *reader.Reader, child ElemHdr, end uint64, hasEnd bool) error {
	if child.Unknown() && !hasEnd {
		return ErrUnknownSizeDepth
	}
	if child.Unknown() {
		return r.Seek(end)
	}
	return r.Seek(child.BodyPos + child.Size)
}

// tolerateLeftover silently skips bytes a handler left unread inside a
// known-end child (encoder padding), but treats having read past the
// child's declared end as a hard overflow (spec §4.D, "Post-read").
func tolerateLeftover(r *reader.Reader, child ElemHdr, end uint64, hasEnd bool) error {
	if !hasEnd || child.Unknown() {
		return nil
	}
	pos := r.Position()
	childEnd := child.BodyPos + child.Size
	if pos > childEnd {
		return ErrReadOverflow
	}
	if pos < childEnd {
		return r.Seek(childEnd)
	}
	return nil
}

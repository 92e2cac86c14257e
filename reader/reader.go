package reader

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Reader is a buffered, seek-aware, peek-capable byte reader over a Stream.
//
// All typed reads go through readBytes, which retains bytes in an internal
// buffer whenever peek mode is active so that disabling peek mode can
// rewind the logical position without re-reading the stream. Outside peek
// mode the buffer is compacted to the current position after every read,
// so steady-state memory use stays bounded regardless of how much has been
// consumed.
type Reader struct {
	s        Stream
	seekable bool
	lenHint  uint64
	haveLen  bool

	seekThreshold uint64
	peekCapacity  int

	buf     []byte
	bufBase uint64 // absolute stream offset of buf[0]
	readIdx int    // buf[readIdx] is the next unread byte; pos == bufBase+readIdx

	peeking bool
	peekIdx int // index within buf where SetPeeking(true) was called

	hitEOF bool
}

// Option configures a Reader at construction time.
type Option func(*Reader)

// WithSeekThreshold overrides the default forward-seek-vs-delegate
// threshold (spec §4.A's "seek_threshold").
func WithSeekThreshold(n uint64) Option {
	return func(r *Reader) { r.seekThreshold = n }
}

// WithPeekBufferCapacity bounds how much data Reader will retain while
// peek mode is active before returning ErrPeekBufferExhausted.
func WithPeekBufferCapacity(n int) Option {
	return func(r *Reader) { r.peekCapacity = n }
}

// New wraps s in a Reader. If s implements Seeker, seeks attempt a real
// stream seek when the delta exceeds the seek threshold; otherwise every
// seek is satisfied by forward-consuming.
func New(s Stream, opts ...Option) *Reader {
	r := &Reader{
		s:             s,
		seekThreshold: DefaultSeekThreshold,
		peekCapacity:  4 << 20,
	}
	if _, ok := s.(Seeker); ok {
		r.seekable = true
	}
	if lh, ok := s.(LenHint); ok {
		if n, ok2 := lh.StreamLen(); ok2 {
			r.lenHint, r.haveLen = uint64(n), true
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seekable reports whether the underlying stream supports random access.
func (r *Reader) Seekable() bool { return r.seekable }

// Position returns the current logical offset from the start of the stream.
func (r *Reader) Position() uint64 { return r.bufBase + uint64(r.readIdx) }

// Len returns the stream's total length, if known. Returns 0 if unknown.
func (r *Reader) Len() uint64 { return r.lenHint }

// EOF reports whether the reader has observed end-of-stream and has no
// buffered bytes left to deliver.
func (r *Reader) EOF() bool {
	return r.hitEOF && r.readIdx >= len(r.buf)
}

// SetPeeking enables or disables peek mode. Enabling it while already
// peeking, or disabling it while already not peeking, is a no-op (property
// 8: idempotent). Disabling rewinds the logical position back to where
// peeking was enabled; that rewind is infallible because the data is still
// held in buf.
func (r *Reader) SetPeeking(on bool) {
	if on == r.peeking {
		return
	}
	if on {
		r.peeking = true
		r.peekIdx = r.readIdx
		return
	}
	r.readIdx = r.peekIdx
	r.peeking = false
	r.compact()
}

// compact drops buffered bytes that are no longer reachable: everything
// before the earlier of the read cursor and the peek start. Outside peek
// mode those coincide, so the buffer shrinks to just the unread tail.
func (r *Reader) compact() {
	keepFrom := r.readIdx
	if r.peeking && r.peekIdx < keepFrom {
		keepFrom = r.peekIdx
	}
	if keepFrom == 0 {
		return
	}
	copy(r.buf, r.buf[keepFrom:])
	r.buf = r.buf[:len(r.buf)-keepFrom]
	r.bufBase += uint64(keepFrom)
	r.readIdx -= keepFrom
	if r.peeking {
		r.peekIdx -= keepFrom
	}
}

// fill ensures at least `need` unread bytes are buffered, reading from the
// stream in chunks no larger than largeReadChunk. It returns
// ErrPeekBufferExhausted if satisfying the request while peeking would
// require growing past peekCapacity, and io.ErrUnexpectedEOF if the stream
// runs out first.
func (r *Reader) fill(need int) error {
	for len(r.buf)-r.readIdx < need {
		if r.hitEOF {
			return io.ErrUnexpectedEOF
		}
		room := need - (len(r.buf) - r.readIdx)
		if r.peeking {
			avail := r.peekCapacity - len(r.buf)
			if avail <= 0 {
				return ErrPeekBufferExhausted
			}
			if room > avail {
				room = avail
			}
		}
		chunk := room
		if chunk > largeReadChunk {
			chunk = largeReadChunk
		}
		start := len(r.buf)
		r.buf = append(r.buf, make([]byte, chunk)...)
		n, err := io.ReadFull(r.s, r.buf[start:start+chunk])
		r.buf = r.buf[:start+n]
		if n > 0 && err == io.ErrUnexpectedEOF {
			r.hitEOF = true
			continue
		}
		if err != nil {
			r.buf = r.buf[:start+n]
			r.hitEOF = true
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				if len(r.buf)-r.readIdx >= need {
					break
				}
				return io.ErrUnexpectedEOF
			}
			return err
		}
		if !r.peeking {
			// Outside peek mode we don't need to retain anything already
			// consumed; keep the buffer from growing unbounded across a
			// long sequential read.
			r.compact()
		}
	}
	return nil
}

// readBytes returns the next n bytes and advances past them. The returned
// slice aliases the internal buffer; outside peek mode the buffer is
// compacted right after, while peek mode retains everything back to the
// peek start.
func (r *Reader) readBytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if err := r.fill(n); err != nil {
		return nil, err
	}
	out := r.buf[r.readIdx : r.readIdx+n]
	r.readIdx += n
	if !r.peeking {
		r.compact()
	}
	return out, nil
}

// ReadBytes reads and returns n raw bytes, copied out of the internal
// buffer so callers may retain them past the next read.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.readBytes(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadString reads n bytes and returns them as a string.
func (r *Reader) ReadString(n int) (string, error) {
	b, err := r.readBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadPartial reads whatever the stream yields into buf in one underlying
// call, per spec §4.A: while peeking with an empty buffer it first tries
// to fill the full spare peek capacity so later reads can be undone too.
func (r *Reader) ReadPartial(buf []byte) (int, error) {
	if r.readIdx < len(r.buf) {
		n := copy(buf, r.buf[r.readIdx:])
		r.readIdx += n
		if !r.peeking {
			r.compact()
		}
		return n, nil
	}
	if r.peeking {
		if spare := r.peekCapacity - len(r.buf); spare > 0 {
			if err := r.fill(spare); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, err
			}
		}
		n := copy(buf, r.buf[r.readIdx:])
		r.readIdx += n
		return n, nil
	}
	n, err := r.s.Read(buf)
	if n > 0 {
		r.bufBase += uint64(n)
	}
	if errors.Is(err, io.EOF) {
		r.hitEOF = true
	}
	return n, err
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadU16BE() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadU32BE() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU64BE() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadU64LE() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadI16BE() (int16, error) { v, err := r.ReadU16BE(); return int16(v), err }
func (r *Reader) ReadI32BE() (int32, error) { v, err := r.ReadU32BE(); return int32(v), err }
func (r *Reader) ReadI64BE() (int64, error) { v, err := r.ReadU64BE(); return int64(v), err }

func (r *Reader) ReadF32BE() (float32, error) {
	v, err := r.ReadU32BE()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadF64BE() (float64, error) {
	v, err := r.ReadU64BE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Skip advances the logical position by n bytes without returning them,
// using the same seek policy as Seek (consume-vs-delegate).
func (r *Reader) Skip(n uint64) error {
	return r.Seek(r.Position() + n)
}

// Seek moves to an absolute byte offset. If target is a forward move within
// seekThreshold of the current position, or the stream isn't seekable, the
// reader consumes and discards bytes until it reaches target. Otherwise it
// delegates to the underlying stream's Seek. On success Position() equals
// target. A stream that ends before target is reached, or a delegated seek
// that lands anywhere other than target, fails with *InvalidSeekError.
func (r *Reader) Seek(target uint64) error {
	cur := r.Position()
	if target == cur {
		return nil
	}

	if target < cur {
		return r.seekBackward(target)
	}

	delta := target - cur
	if !r.seekable || delta <= r.seekThreshold {
		return r.consumeTo(target)
	}
	return r.seekDelegate(target)
}

func (r *Reader) seekBackward(target uint64) error {
	if target >= r.bufBase {
		r.readIdx = int(target - r.bufBase)
		return nil
	}
	if !r.seekable {
		return &InvalidSeekError{Requested: target, Landed: r.Position()}
	}
	return r.seekDelegate(target)
}

func (r *Reader) consumeTo(target uint64) error {
	for r.Position() < target {
		want := target - r.Position()
		chunk := want
		if chunk > largeReadChunk {
			chunk = largeReadChunk
		}
		if err := r.fill(int(chunk)); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				landed := r.Position() + uint64(len(r.buf)-r.readIdx)
				r.readIdx = len(r.buf)
				if !r.peeking {
					r.compact()
				}
				if landed != target {
					return &InvalidSeekError{Requested: target, Landed: landed}
				}
				return nil
			}
			return err
		}
		r.readIdx += int(chunk)
		if !r.peeking {
			r.compact()
		}
	}
	return nil
}

func (r *Reader) seekDelegate(target uint64) error {
	seeker, ok := r.s.(Seeker)
	if !ok {
		return r.consumeTo(target)
	}
	landed, err := seeker.Seek(int64(target), io.SeekStart)
	if err != nil {
		return err
	}
	r.buf = r.buf[:0]
	r.readIdx = 0
	r.peekIdx = 0
	r.peeking = false
	r.bufBase = uint64(landed)
	r.hitEOF = false
	if uint64(landed) != target {
		return &InvalidSeekError{Requested: target, Landed: uint64(landed)}
	}
	return nil
}

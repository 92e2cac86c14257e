// Package reader implements the buffered byte-level reader the EBML engine
// and Matroska demuxer pull every byte through.
//
// It wraps an arbitrary Stream (see Stream below) and layers three things
// on top of it that the raw io.Reader/io.Seeker contract doesn't give you:
// typed big/little-endian reads, a seek policy that picks between
// forward-consume and a real stream seek, and a peek mode that makes a run
// of reads fully undoable as long as they fit in the retained buffer.
//
// Grounded on the teacher's EBMLReader (github.com/luispater/matroska-go,
// ebml.go) for the typed-read surface and position tracking, and on
// pixelbender-go-matroska's ebml.Decoder (bufio.Reader + Peek/Discard) for
// the two-stage buffering idiom the peek-mode contract below is built on.
package reader

import "io"

// Stream is the transport-level contract a Reader is built on. It is
// satisfied by *os.File, bytes.Reader, and any network/file abstraction
// the caller supplies; the demuxer never talks to it directly.
type Stream interface {
	io.Reader
}

// Seeker is implemented by streams that support random access. A Reader
// built over a Stream that does not implement Seeker still works; it just
// always takes the forward-consume seek path and reports Seekable() == false.
type Seeker interface {
	Seek(offset int64, whence int) (int64, error)
}

// LenHint is implemented by streams that know their total length cheaply
// (e.g. backed by a file or in-memory buffer). StreamLen returns 0, false
// when unavailable.
type LenHint interface {
	StreamLen() (int64, bool)
}

// DefaultSeekThreshold is the forward-seek distance, in bytes, below which
// the Reader prefers to consume-and-discard rather than delegate to the
// underlying stream's Seek — matching spec's default suggested threshold
// for streams that don't advertise their own.
const DefaultSeekThreshold = 512 * 1024

// largeReadChunk bounds the size of a single underlying Read call issued to
// satisfy a big typed/raw read, so peak transient allocation for any single
// logical read stays bounded regardless of the requested size.
const largeReadChunk = 1 << 20 // 1 MiB

package matroska

import "github.com/pkg/errors"

// Sentinel errors for the demuxer layer (spec §7's Setup/Capability/
// Unsupported/Arithmetic categories; the Malformed-input categories live in
// package ebml and are reused directly).
var (
	ErrOverflow      = errors.New("matroska: numeric conversion out of range")
	ErrUnknownFormat = errors.New("matroska: no demuxer scored this stream")
	ErrNoTracks      = errors.New("matroska: segment has no tracks")
	ErrTrackNotFound = errors.New("matroska: track index out of range")
	ErrCodecNotFound = errors.New("matroska: no codec parser for this track")
	ErrCannotSeek    = errors.New("matroska: seek requires a cue table")

	ErrUnknownEBMLVersion    = errors.New("matroska: unsupported EBML version")
	ErrIDTooLong             = errors.New("matroska: max_id_length exceeds 8")
	ErrSizeTooLong           = errors.New("matroska: max_size_length exceeds 8")
	ErrUnknownDocType        = errors.New("matroska: doc_type is not matroska or webm")
	ErrUnknownDocTypeVersion = errors.New("matroska: doc_type_version exceeds 4")

	// ErrUnsupportedLacing is raised for any block whose flags declare a
	// non-zero lacing mode (spec §9, Open Question "block lacing", option
	// (a): reject rather than silently emit a malformed packet).
	ErrUnsupportedLacing = errors.New("matroska: laced blocks are not supported")
)

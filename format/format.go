// Package format is the top-level facade spec §6 describes: it probes a
// stream against every registered container demuxer, opens the
// highest-scoring one, and wires the ambient packages (reader, ebml,
// matroska, codecparser) together behind a small Demuxer/Instance
// contract.
//
// Grounded on luispater/gemini-srt-translator-go's own matroska package,
// which wraps github.com/dwbuiten/matroska (a cgo libmatroska binding) as
// an opaque alternate implementation behind a pure-Go-facing API; this
// package's nativeFallback mirrors that shape without linking any cgo, per
// spec §1's "fallback demuxer over an external native library" being out
// of scope here.
package format

import (
	"github.com/rs/zerolog"

	"github.com/gomkv/gomkv/codecparser"
	"github.com/gomkv/gomkv/matroska"
	"github.com/gomkv/gomkv/reader"
)

// SeekFlags is re-exported from matroska so callers never import that
// package directly just to pass a flag value.
type SeekFlags = matroska.SeekFlags

const SeekAny = matroska.SeekAny

// Instance is an opened container, ready to emit packets.
type Instance interface {
	FormatData() *matroska.FormatData
	ReadPacket() (*matroska.Packet, error)
	Seek(trackIndex int, timecode int64, flags SeekFlags) error
}

// Demuxer is a registrable container format implementation.
type Demuxer interface {
	Name() string
	Probe(peek []byte) float64
	Open(r *reader.Reader, opts *OpenConfig) (Instance, error)
}

// OpenConfig carries the ambient options every Demuxer.Open accepts.
type OpenConfig struct {
	Logger zerolog.Logger
}

// Option configures OpenConfig.
type Option func(*OpenConfig)

// WithLogger threads a logger through to the opened demuxer, matching
// spec §9's note that logging registration is a process-wide concern
// outside the core's scope — this just passes the caller's logger down
// rather than reaching for a package global.
func WithLogger(l zerolog.Logger) Option {
	return func(c *OpenConfig) { c.Logger = l }
}

// registry lists every Demuxer format.Open probes, in the order
// dwbuiten/matroska-style native fallbacks are traditionally consulted
// last (spec §4.E Probe: "an external native demuxer is consulted if no
// native candidate scores").
var registry = []Demuxer{
	matroskaDemuxer{},
	nativeFallback{},
}

// Open probes every registered demuxer against a peek of the stream,
// opens the highest scorer, and returns ErrUnknownFormat if none scored
// above zero (spec §7, "Format::open returns UnknownFormat if no demuxer
// scores > 0").
func Open(s reader.Stream, opts ...Option) (Instance, error) {
	cfg := &OpenConfig{Logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	r := reader.New(s)

	r.SetPeeking(true)
	peek := readPeekBudget(r, peekBudget(r))
	r.SetPeeking(false)

	var best Demuxer
	bestScore := 0.0
	for _, d := range registry {
		if sc := d.Probe(peek); sc > bestScore {
			bestScore, best = sc, d
		}
	}
	if best == nil {
		return nil, matroska.ErrUnknownFormat
	}
	return best.Open(r, cfg)
}

// peekBudget bounds how much of the stream a probe is allowed to inspect;
// Probe's own four-element cap usually needs far less than this, but a
// stream fronted by a large Void/Crc32 padding run can run past a few
// hundred bytes.
func peekBudget(r *reader.Reader) int {
	const want = 4096
	if l := r.Len(); l > 0 && l < uint64(want) {
		return int(l)
	}
	return want
}

// readPeekBudget reads up to n bytes for probing, tolerating a stream
// shorter than n (unlike Reader.ReadBytes, which demands the full count).
func readPeekBudget(r *reader.Reader, n int) []byte {
	buf := make([]byte, n)
	total := 0
	for total < n {
		got, err := r.ReadPartial(buf[total:])
		total += got
		if err != nil {
			break
		}
		if got == 0 {
			break
		}
	}
	return buf[:total]
}

// newCodecParser adapts codecparser.New to matroska's factory signature.
func newCodecParser(id matroska.CodecID, params *matroska.CodecParams) matroska.CodecParser {
	return codecparser.New(id, params)
}

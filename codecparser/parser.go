package codecparser

import "github.com/gomkv/gomkv/matroska"

// placeholder is the uniform no-op used for codecs spec §4.F lists as
// "placeholder no-ops; exist so the codec-parse dispatch is uniform"
// (FLAC, Vorbis, MP3, and anything else not yet given a real parser).
type placeholder struct{}

func (placeholder) Parse(*matroska.Packet, *matroska.CodecParams) error { return nil }

// New constructs the post-processor for a track's codec, or nil if the
// codec needs none. Intended to be passed to
// matroska.WithCodecParserFactory by the format package, keeping
// matroska's core free of codec-specific imports.
func New(id matroska.CodecID, params *matroska.CodecParams) matroska.CodecParser {
	switch id {
	case matroska.CodecOpus:
		return NewOpus(params)
	case matroska.CodecAAC:
		return NewAAC(params)
	case matroska.CodecFLAC, matroska.CodecVorbis, matroska.CodecMP3:
		return placeholder{}
	default:
		return nil
	}
}

package codecparser

import (
	"github.com/gomkv/gomkv/matroska"
)

// aacSampleRates is the standard MPEG-4 Audio sampling-frequency table; the
// AudioSpecificConfig's 4-bit index selects into it, or escapes to a
// 24-bit literal at index 15 (spec §4.F).
var aacSampleRates = [...]uint32{
	96000, 88200, 64000, 48000, 44100, 32000, 24000, 22050,
	16000, 12000, 11025, 8000, 7350,
}

// aacChannelConfigs is the full 16-entry channelConfiguration table
// (ISO/IEC 14496-3 Table 1.19, including the Amendment 4 extensions at
// indices 11/12/14 for >6-channel layouts); index 0 means "channel count
// given elsewhere" (program config element), which this parser leaves at
// zero rather than guessing, as do the remaining reserved indices.
var aacChannelConfigs = [...]uint32{
	0, 1, 2, 3, 4, 5, 6, 8,
	0, 0, 0, 7, 8, 0, 8, 0,
}

// AAC parses the out-of-band AudioSpecificConfig once at track setup; its
// per-packet Parse is a no-op (spec §4.F, "out-of-band config is
// authoritative").
type AAC struct{}

// NewAAC decodes params.Config (the track's CodecPrivate) as an
// AudioSpecificConfig and fills in sample rate / channel count.
func NewAAC(params *matroska.CodecParams) *AAC {
	br := bitReader{buf: params.Config}

	aot, _ := br.read(5) // audio object type; an 0x1F escape widens to +32 via 6 more bits
	if aot == 0x1F {
		br.read(6)
	}

	idx, ok := br.read(4)
	if !ok {
		return &AAC{}
	}
	if idx == 0xF {
		if literal, ok := br.read(24); ok {
			params.SampleRate = uint32(literal)
		}
	} else if int(idx) < len(aacSampleRates) {
		params.SampleRate = aacSampleRates[idx]
	}

	if chIdx, ok := br.read(4); ok && int(chIdx) < len(aacChannelConfigs) {
		params.Channels = aacChannelConfigs[chIdx]
	}
	return &AAC{}
}

func (a *AAC) Parse(pkt *matroska.Packet, params *matroska.CodecParams) error {
	return nil
}

// bitReader is a minimal MSB-first bit cursor over a byte slice — the
// AudioSpecificConfig fields it needs to pull don't justify pulling in a
// third-party bitstream reader.
type bitReader struct {
	buf []byte
	pos int // bit position
}

func (b *bitReader) read(n int) (uint64, bool) {
	var v uint64
	for i := 0; i < n; i++ {
		byteIdx := b.pos / 8
		if byteIdx >= len(b.buf) {
			return 0, false
		}
		bitIdx := 7 - (b.pos % 8)
		bit := (b.buf[byteIdx] >> uint(bitIdx)) & 1
		v = (v << 1) | uint64(bit)
		b.pos++
	}
	return v, true
}

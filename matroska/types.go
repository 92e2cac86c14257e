package matroska

import (
	"math"

	"github.com/gomkv/gomkv/rational"
)

// MediaType classifies a track as video, audio, subtitle or unknown
// (Track.Ty).
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaVideo
	MediaAudio
	MediaSubtitle
)

// trackTypeToMedia maps the wire TrackType enum (tracks/mod.rs) onto
// MediaType; everything outside Video/Audio collapses to subtitle-or-data,
// which this demuxer still exposes as a track without emitting codec
// post-processing.
func trackTypeToMedia(v uint64) MediaType {
	switch v {
	case 0x01:
		return MediaVideo
	case 0x02:
		return MediaAudio
	case 0x11, 0x03, 0x10, 0x12, 0x20, 0x21:
		return MediaSubtitle
	default:
		return MediaUnknown
	}
}

// CodecID identifies the decoder a track's packets require, decoded from
// the Matroska CodecID string (e.g. "A_OPUS").
type CodecID int

const (
	CodecUnknown CodecID = iota
	CodecAAC
	CodecOpus
	CodecFLAC
	CodecVorbis
	CodecMP3
	CodecVideoOther
)

func codecIDFromString(s string) CodecID {
	switch s {
	case "A_OPUS":
		return CodecOpus
	case "A_AAC", "A_AAC/MPEG4/LC", "A_AAC/MPEG2/LC":
		return CodecAAC
	case "A_FLAC":
		return CodecFLAC
	case "A_VORBIS":
		return CodecVorbis
	case "A_MPEG/L3":
		return CodecMP3
	default:
		return CodecUnknown
	}
}

// CodecParse selects what, if anything, this module's codecparser package
// does to a track's packets after the container hands them over (spec
// §4.F).
type CodecParse int

const (
	CodecParseNone CodecParse = iota
	CodecParseHeader
)

// Discard controls which packets ReadPacket drops for a track (spec §4.E
// "Packet emission" step 3).
type Discard int

const (
	DiscardNone Discard = iota
	DiscardNonKey
	DiscardAll
)

// CodecParams is the superset of codec-relevant track attributes spec §3
// describes. Fields irrelevant to a track's media type are left zero.
type CodecParams struct {
	Ty CodecID

	SampleRate uint32
	Channels   uint32
	BitDepth   uint32

	Width, Height uint32

	Config []byte // codec_private, copied verbatim

	TimeBase       rational.Rational
	PacketTimeBase rational.Rational
	Delay          int64
	SeekPreroll    int64
}

// ChangeTimeBase rescales Delay and SeekPreroll into a new clock domain,
// leaving TimeBase set to newBase (spec §3, "change_time_base").
func (c *CodecParams) ChangeTimeBase(newBase rational.Rational) {
	if !c.TimeBase.IsZero() {
		c.Delay = newBase.Rescale(c.Delay, c.TimeBase)
		c.SeekPreroll = newBase.Rescale(c.SeekPreroll, c.TimeBase)
	}
	c.TimeBase = newBase
}

// CodecParser is the interface a lazily-constructed per-track post
// processor implements (spec §4.F, §9 "Codec parser lifetime").
type CodecParser interface {
	Parse(pkt *Packet, params *CodecParams) error
}

// Track is one entry of FormatData.Tracks (spec §3).
type Track struct {
	ID          uint64
	Ty          MediaType
	Name        string
	Language    string
	CodecIDStr  string
	CodecParams CodecParams
	Parse       CodecParse
	parser      CodecParser
	TimeBase    rational.Rational
	StartTime   int64
	Duration    uint64
	Discard     Discard

	// Enabled/Default/Forced/Lacing mirror TrackEntry's FlagEnabled,
	// FlagDefault, FlagForced, and FlagLacing (spec §6's wire layout).
	Enabled bool
	Default bool
	Forced  bool
	Lacing  bool
}

// PacketFlags is a bitset of per-packet properties. FlagKeyframe is set
// from bit 7 (0x80) of the block header's flags byte; the bit values here
// are not those of the block flags byte.
type PacketFlags uint8

const (
	FlagKeyframe PacketFlags = 1 << iota
)

// UnknownTimestamp is the sentinel Packet.Timestamp takes when no
// meaningful timestamp could be derived (spec §3, "Packet").
const UnknownTimestamp = int64(math.MinInt64)

// Packet is one demuxed, possibly codec-post-processed, compressed frame.
type Packet struct {
	Data       []byte
	TimeBase   rational.Rational
	Duration   uint64
	Timestamp  int64
	TrackIndex uint32
	Flags      PacketFlags
}

// block is the transient state the parser fills in when it encounters a
// SimpleBlock or Block inside a cluster (spec §3, "Block (transient)").
type block struct {
	trackID  uint64
	timecode int64
	flags    uint8
	size     uint64
}

// FormatData is the demuxer's public, read-mostly-after-open surface (spec
// §3).
type FormatData struct {
	Tracks    []Track
	StartTime int64
	Duration  float64
	TimeBase  rational.Rational
}

// TrackByID maps a container-assigned track number to its index in Tracks,
// or -1 if absent.
func (f *FormatData) TrackByID(id uint64) int {
	for i := range f.Tracks {
		if f.Tracks[i].ID == id {
			return i
		}
	}
	return -1
}

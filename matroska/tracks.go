package matroska

import (
	"math"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/rational"
	"github.com/gomkv/gomkv/reader"
)

// trackEntry is the finalized TrackEntry shape, grounded on the teacher's
// parseTrackEntry/parseVideoTrack/parseAudioTrack generalized to the field
// set tracks/mod.rs carries that feeds CodecParams (spec §4.E "Tracks ->
// CodecParams").
type trackEntry struct {
	number      uint64
	uid         uint64
	trackType   uint64
	name        string
	language    string
	codecID     string
	codecPriv   []byte
	codecDelay  uint64
	seekPreroll uint64

	enabled   bool
	isDefault bool
	forced    bool
	lacing    bool

	hasVideo  bool
	width     uint64
	height    uint64

	hasAudio       bool
	samplingFreq   float64
	outputSampFreq float64
	hasOutputFreq  bool
	channels       uint64
	bitDepth       uint64
}

var trackEntryChildren = map[uint64]bool{
	IDTrackNum: true, IDTrackUID: true, IDTrackType: true, IDTrackName: true,
	IDLanguage: true, IDCodecID: true, IDCodecPriv: true, IDCodecName: true,
	IDCodecDelay: true, IDSeekPreRoll: true, IDVideo: true, IDAudio: true,
	IDFlagEnabled: true, IDFlagDefault: true, IDFlagForced: true, IDFlagLacing: true,
	IDDefaultDuration: true,
}

// trackTypeVariants is the schema Enum variant set for TrackType (spec
// §4.B, "Enum (repr Unsigned ...): decode as underlying type, then look up
// variant; failure -> InvalidVariant"). Keys are the wire values Matroska
// defines; trackTypeToMedia collapses several of them onto MediaSubtitle.
var trackTypeVariants = map[uint64]uint64{
	0x01: 0x01, 0x02: 0x02, 0x03: 0x03,
	0x10: 0x10, 0x11: 0x11, 0x12: 0x12,
	0x20: 0x20, 0x21: 0x21,
}

var videoChildren = map[uint64]bool{
	IDPixelWidth: true, IDPixelHeight: true, IDDisplayWidth: true,
	IDDisplayHeight: true, IDFlagInterlaced: true,
}

var audioChildren = map[uint64]bool{
	IDSamplingFrequency: true, IDOutputSamplingFrequency: true,
	IDChannels: true, IDBitDepth: true,
}

// parseTracks reads the Tracks element into a sorted-by-number list of
// Track values, mapping CodecParams per trackEntry the way spec §4.E
// describes.
func parseTracks(r *reader.Reader, hdr ebml.ElemHdr) ([]Track, error) {
	var entries []trackEntry

	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 0, func(id uint64) bool { return id == IDTrackEntry },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			e, err := parseTrackEntry(r, child)
			if err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		})
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(entries))
	for _, e := range entries {
		tracks = append(tracks, buildTrack(e))
	}
	// Matroska permits tracks to appear out of number order; the teacher
	// sorts by TrackNum (parser.go, parseTracks) so downstream TrackByID
	// lookups and CLI listings are deterministic.
	for i := 1; i < len(tracks); i++ {
		for j := i; j > 0 && tracks[j].ID < tracks[j-1].ID; j-- {
			tracks[j], tracks[j-1] = tracks[j-1], tracks[j]
		}
	}
	return tracks, nil
}

func parseTrackEntry(r *reader.Reader, hdr ebml.ElemHdr) (trackEntry, error) {
	var e trackEntry
	var number, uid, trackType ebml.Single[uint64]
	var name, language, codecID ebml.Single[string]
	var codecPriv ebml.Single[[]byte]
	var codecDelay, seekPreroll ebml.Single[uint64]
	var enabled, isDefault, forced, lacing ebml.Single[bool]

	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 1, func(id uint64) bool { return trackEntryChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			switch child.ID {
			case IDTrackNum:
				v, err := ebml.NonZeroUnsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return number.Insert(v)
			case IDTrackUID:
				v, err := ebml.NonZeroUnsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return uid.Insert(v)
			case IDTrackType:
				v, err := ebml.Enum(r, int(child.Size), trackTypeVariants)
				if err != nil {
					return err
				}
				return trackType.Insert(v)
			case IDTrackName:
				v, err := ebml.String(r, int(child.Size))
				if err != nil {
					return err
				}
				return name.Insert(v)
			case IDLanguage:
				v, err := ebml.String(r, int(child.Size))
				if err != nil {
					return err
				}
				return language.Insert(v)
			case IDCodecID:
				v, err := ebml.NonEmptyString(r, int(child.Size))
				if err != nil {
					return err
				}
				return codecID.Insert(v)
			case IDCodecPriv:
				v, err := ebml.Bytes(r, int(child.Size))
				if err != nil {
					return err
				}
				return codecPriv.Insert(v)
			case IDCodecDelay:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return codecDelay.Insert(v)
			case IDSeekPreRoll:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return seekPreroll.Insert(v)
			case IDVideo:
				return parseVideo(r, child, &e)
			case IDAudio:
				return parseAudio(r, child, &e)
			case IDFlagEnabled:
				v, err := ebml.Bool(r, int(child.Size))
				if err != nil {
					return err
				}
				return enabled.Insert(v)
			case IDFlagDefault:
				v, err := ebml.Bool(r, int(child.Size))
				if err != nil {
					return err
				}
				return isDefault.Insert(v)
			case IDFlagForced:
				v, err := ebml.Bool(r, int(child.Size))
				if err != nil {
					return err
				}
				return forced.Insert(v)
			case IDFlagLacing:
				v, err := ebml.Bool(r, int(child.Size))
				if err != nil {
					return err
				}
				return lacing.Insert(v)
			case IDCodecName, IDDefaultDuration:
				_, err := ebml.Bytes(r, int(child.Size))
				return err
			}
			return nil
		})
	if err != nil {
		return trackEntry{}, err
	}

	e.number, err = number.Require()
	if err != nil {
		return trackEntry{}, err
	}
	e.uid, err = uid.Require()
	if err != nil {
		return trackEntry{}, err
	}
	e.trackType, err = trackType.Require()
	if err != nil {
		return trackEntry{}, err
	}
	e.name = name.OrDefault("")
	e.language = language.OrDefault("eng")
	e.codecID, err = codecID.Require()
	if err != nil {
		return trackEntry{}, err
	}
	e.codecPriv, _ = codecPriv.Get()
	e.codecDelay = codecDelay.OrDefault(0)
	e.seekPreroll = seekPreroll.OrDefault(0)
	// FlagEnabled/FlagDefault/FlagLacing default to true, FlagForced to
	// false, per Matroska's own element defaults.
	e.enabled = enabled.OrDefault(true)
	e.isDefault = isDefault.OrDefault(true)
	e.forced = forced.OrDefault(false)
	e.lacing = lacing.OrDefault(true)
	return e, nil
}

func parseVideo(r *reader.Reader, hdr ebml.ElemHdr, e *trackEntry) error {
	e.hasVideo = true
	var width, height ebml.Single[uint64]
	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 2, func(id uint64) bool { return videoChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			switch child.ID {
			case IDPixelWidth:
				v, err := ebml.NonZeroUnsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return width.Insert(v)
			case IDPixelHeight:
				v, err := ebml.NonZeroUnsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return height.Insert(v)
			case IDDisplayWidth, IDDisplayHeight, IDFlagInterlaced:
				_, err := ebml.Unsigned(r, int(child.Size))
				return err
			}
			return nil
		})
	if err != nil {
		return err
	}
	w, err := width.Require()
	if err != nil {
		return err
	}
	h, err := height.Require()
	if err != nil {
		return err
	}
	e.width, e.height = w, h
	return nil
}

func parseAudio(r *reader.Reader, hdr ebml.ElemHdr, e *trackEntry) error {
	e.hasAudio = true
	var sampling, outputFreq ebml.Single[float64]
	var channels, bitDepth ebml.Single[uint64]
	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 2, func(id uint64) bool { return audioChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			switch child.ID {
			case IDSamplingFrequency:
				v, err := ebml.PositiveFloat(r, int(child.Size))
				if err != nil {
					return err
				}
				return sampling.Insert(v)
			case IDOutputSamplingFrequency:
				v, err := ebml.PositiveFloat(r, int(child.Size))
				if err != nil {
					return err
				}
				return outputFreq.Insert(v)
			case IDChannels:
				v, err := ebml.NonZeroUnsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return channels.Insert(v)
			case IDBitDepth:
				v, err := ebml.NonZeroUnsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return bitDepth.Insert(v)
			}
			return nil
		})
	if err != nil {
		return err
	}
	e.samplingFreq = sampling.OrDefault(8000.0)
	if v, ok := outputFreq.Get(); ok {
		e.outputSampFreq, e.hasOutputFreq = v, true
	}
	for _, f := range []float64{e.samplingFreq, e.outputSampFreq} {
		if f != math.Trunc(f) || f > math.MaxUint32 {
			return ErrOverflow
		}
	}
	e.channels = channels.OrDefault(1)
	e.bitDepth = bitDepth.OrDefault(0)
	return nil
}

// buildTrack maps a trackEntry onto the public Track/CodecParams shape
// (spec §4.E "Tracks -> CodecParams"): sampling frequencies, which
// parseAudio has already rejected with ErrOverflow unless they are
// integral and fit in u32, narrow to u32; time_base starts in
// nanoseconds, and CodecParse
// defaults to Header except AAC, whose out-of-band AudioSpecificConfig is
// authoritative.
func buildTrack(e trackEntry) Track {
	params := CodecParams{
		Ty:          codecIDFromString(e.codecID),
		Config:      e.codecPriv,
		TimeBase:    rational.Nanos(),
		Delay:       int64(e.codecDelay),
		SeekPreroll: int64(e.seekPreroll),
	}
	if e.hasVideo {
		params.Width = uint32(e.width)
		params.Height = uint32(e.height)
	}
	if e.hasAudio {
		params.SampleRate = uint32(e.samplingFreq)
		if e.hasOutputFreq {
			// Spec §4.E: OutputSamplingFrequency is the output sampling
			// frequency override; the original implements it as
			// params.sample_rate = output_sr, replacing (not supplementing)
			// the container's SamplingFrequency so Open's later clock-domain
			// math (ChangeTimeBase with Inverse(SampleRate)) runs in the
			// decoder's actual output rate.
			params.SampleRate = uint32(e.outputSampFreq)
		}
		params.Channels = uint32(e.channels)
		params.BitDepth = uint32(e.bitDepth)
	}

	parse := CodecParseHeader
	if params.Ty == CodecAAC {
		parse = CodecParseNone
	}

	return Track{
		ID:          e.number,
		Ty:          trackTypeToMedia(e.trackType),
		Name:        e.name,
		Language:    e.language,
		CodecIDStr:  e.codecID,
		CodecParams: params,
		Parse:       parse,
		TimeBase:    rational.Nanos(),
		Enabled:     e.enabled,
		Default:     e.isDefault,
		Forced:      e.forced,
		Lacing:      e.lacing,
	}
}

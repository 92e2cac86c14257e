// Package matroska implements a demuxer for the Matroska and WebM media
// container formats on top of the ebml package's VINT decoding and bounded
// recursive-descent child iteration.
//
// Grounded on github.com/luispater/matroska-go (parser.go, ebml.go) for the
// overall parser shape (element ID table, parseSegmentChildren dispatch,
// sorted track table) and on the gemini-srt-translator-go sibling parser
// for SeekHead-driven jump parsing and absolute offset bookkeeping. Cue
// table fields and several track/segment-info fields absent from the
// teacher (which never implemented real cue-based seeking) are grounded on
// the original source's ebml element schemas instead.
package matroska

// Element IDs, kept in the teacher's IDXxx naming convention (ebml.go).
// Values are the canonical marker-included wire form, matching both the
// teacher's own ReadVIntID output and the hex table this module's spec
// documents as normative.
const (
	IDEBMLHeader             = 0x1A45DFA3
	IDEBMLVersion            = 0x4286
	IDEBMLReadVersion        = 0x42F7
	IDEBMLMaxIDLength        = 0x42F2
	IDEBMLMaxSizeLength      = 0x42F3
	IDEBMLDocType            = 0x4282
	IDEBMLDocTypeVersion     = 0x4287
	IDEBMLDocTypeReadVersion = 0x4285

	IDSegment = 0x18538067

	IDSeekHead = 0x114D9B74
	IDSeek     = 0x4DBB
	IDSeekID   = 0x53AB
	IDSeekPos  = 0x53AC

	IDSegmentInfo    = 0x1549A966
	IDSegmentUID     = 0x73A4
	IDTimestampScale = 0x2AD7B1
	IDDuration       = 0x4489
	IDTitle          = 0x7BA9
	IDMuxingApp      = 0x4D80
	IDWritingApp     = 0x5741

	IDTracks            = 0x1654AE6B
	IDTrackEntry        = 0xAE
	IDTrackNum          = 0xD7
	IDTrackUID          = 0x73C5
	IDTrackType         = 0x83
	IDFlagEnabled       = 0xB9
	IDFlagDefault       = 0x88
	IDFlagForced        = 0x55AA
	IDFlagLacing        = 0x9C
	IDTrackName         = 0x536E
	IDLanguage          = 0x22B59C
	IDCodecID           = 0x86
	IDCodecPriv         = 0x63A2
	IDCodecName         = 0x258688
	IDCodecDelay        = 0x56AA
	IDSeekPreRoll       = 0x56BB
	IDDefaultDuration   = 0x23E383
	IDVideo             = 0xE0
	IDAudio             = 0xE1

	IDFlagInterlaced = 0x9A
	IDPixelWidth     = 0xB0
	IDPixelHeight    = 0xBA
	IDDisplayWidth   = 0x54B0
	IDDisplayHeight  = 0x54BA

	IDSamplingFrequency       = 0xB5
	IDOutputSamplingFrequency = 0x78B5
	IDChannels                = 0x9F
	IDBitDepth                = 0x6264

	IDCluster     = 0x1F43B675
	IDTimestamp   = 0xE7
	IDSimpleBlock = 0xA3
	IDBlockGroup  = 0xA0
	IDBlock       = 0xA1
	IDBlockDur    = 0x9B

	IDCues                = 0x1C53BB6B
	IDCuePoint            = 0xBB
	IDCueTime             = 0xB3
	IDCueTrackPositions   = 0xB7
	IDCueTrack            = 0xF7
	IDCueClusterPosition  = 0xF1
	IDCueRelativePosition = 0xF0
	IDCueDuration         = 0xB2
	IDCueBlockNumber      = 0x5378

	IDVoid  = 0xEC
	IDCRC32 = 0xBF

	IDChapters    = 0x1043A770
	IDTags        = 0x1254C367
	IDAttachments = 0x1941A469
)

package matroska

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

func float32Bytes(v float32) []byte {
	var out [4]byte
	bits := math.Float32bits(v)
	out[0] = byte(bits >> 24)
	out[1] = byte(bits >> 16)
	out[2] = byte(bits >> 8)
	out[3] = byte(bits)
	return out[:]
}

func idBytes(id uint64) []byte {
	switch {
	case id <= 0xFF:
		return []byte{byte(id)}
	case id <= 0xFFFF:
		return []byte{byte(id >> 8), byte(id)}
	case id <= 0xFFFFFF:
		return []byte{byte(id >> 16), byte(id >> 8), byte(id)}
	default:
		return []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	}
}

func elemBytes(id uint64, body []byte) []byte {
	out := idBytes(id)
	out = append(out, ebml.EncodeVint(uint64(len(body)), 1)...)
	return append(out, body...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestParseTrackEntryBuildsAACParseNone(t *testing.T) {
	var raw []byte
	raw = append(raw, elemBytes(IDTrackNum, []byte{7})...)
	raw = append(raw, elemBytes(IDTrackUID, []byte{123})...)
	raw = append(raw, elemBytes(IDTrackType, []byte{2})...) // audio
	raw = append(raw, elemBytes(IDCodecID, []byte("A_AAC"))...)

	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDTrackEntry, Size: uint64(len(raw)), BodyPos: 0}

	e, err := parseTrackEntry(r, hdr)
	require.NoError(t, err)
	require.Equal(t, uint64(7), e.number)
	require.Equal(t, uint64(123), e.uid)
	require.Equal(t, "eng", e.language) // defaulted, none supplied

	track := buildTrack(e)
	require.Equal(t, MediaAudio, track.Ty)
	require.Equal(t, CodecAAC, track.CodecParams.Ty)
	require.Equal(t, CodecParseNone, track.Parse)
}

func TestOutputSamplingFrequencyOverridesSampleRate(t *testing.T) {
	audio := elemBytes(IDAudio, concat(
		elemBytes(IDSamplingFrequency, float32Bytes(24000)),
		elemBytes(IDOutputSamplingFrequency, float32Bytes(48000)),
	))
	var raw []byte
	raw = append(raw, elemBytes(IDTrackNum, []byte{1})...)
	raw = append(raw, elemBytes(IDTrackUID, []byte{1})...)
	raw = append(raw, elemBytes(IDTrackType, []byte{2})...)
	raw = append(raw, elemBytes(IDCodecID, []byte("A_OPUS"))...)
	raw = append(raw, audio...)

	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDTrackEntry, Size: uint64(len(raw)), BodyPos: 0}

	e, err := parseTrackEntry(r, hdr)
	require.NoError(t, err)

	track := buildTrack(e)
	require.Equal(t, uint32(48000), track.CodecParams.SampleRate)
}

func TestParseTrackEntryReadsFlags(t *testing.T) {
	var raw []byte
	raw = append(raw, elemBytes(IDTrackNum, []byte{1})...)
	raw = append(raw, elemBytes(IDTrackUID, []byte{1})...)
	raw = append(raw, elemBytes(IDTrackType, []byte{1})...)
	raw = append(raw, elemBytes(IDCodecID, []byte("V_TEST"))...)
	raw = append(raw, elemBytes(IDFlagEnabled, []byte{0})...)
	raw = append(raw, elemBytes(IDFlagForced, []byte{1})...)

	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDTrackEntry, Size: uint64(len(raw)), BodyPos: 0}

	e, err := parseTrackEntry(r, hdr)
	require.NoError(t, err)

	track := buildTrack(e)
	require.False(t, track.Enabled)
	require.True(t, track.Default) // defaulted, not supplied
	require.True(t, track.Forced)
	require.True(t, track.Lacing) // defaulted, not supplied
}

func TestParseTrackEntryRejectsUnknownTrackType(t *testing.T) {
	var raw []byte
	raw = append(raw, elemBytes(IDTrackNum, []byte{1})...)
	raw = append(raw, elemBytes(IDTrackUID, []byte{1})...)
	raw = append(raw, elemBytes(IDTrackType, []byte{0x7F})...)
	raw = append(raw, elemBytes(IDCodecID, []byte("V_TEST"))...)

	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDTrackEntry, Size: uint64(len(raw)), BodyPos: 0}

	_, err := parseTrackEntry(r, hdr)
	require.ErrorIs(t, err, ebml.ErrInvalidVariant)
}

func TestParseTrackEntryRequiresTrackNum(t *testing.T) {
	var raw []byte
	raw = append(raw, elemBytes(IDTrackUID, []byte{123})...)
	raw = append(raw, elemBytes(IDTrackType, []byte{1})...)
	raw = append(raw, elemBytes(IDCodecID, []byte("V_TEST"))...)

	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDTrackEntry, Size: uint64(len(raw)), BodyPos: 0}

	_, err := parseTrackEntry(r, hdr)
	require.ErrorIs(t, err, ebml.ErrMissingElement)
}

func TestParseTracksSortsByTrackNum(t *testing.T) {
	entryA := elemBytes(IDTrackEntry, concat(
		elemBytes(IDTrackNum, []byte{2}),
		elemBytes(IDTrackUID, []byte{1}),
		elemBytes(IDTrackType, []byte{1}),
		elemBytes(IDCodecID, []byte("V_TEST")),
	))
	entryB := elemBytes(IDTrackEntry, concat(
		elemBytes(IDTrackNum, []byte{1}),
		elemBytes(IDTrackUID, []byte{2}),
		elemBytes(IDTrackType, []byte{2}),
		elemBytes(IDCodecID, []byte("A_OPUS")),
	))

	raw := concat(entryA, entryB)
	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDTracks, Size: uint64(len(raw)), BodyPos: 0}

	tracks, err := parseTracks(r, hdr)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	require.Equal(t, uint64(1), tracks[0].ID)
	require.Equal(t, uint64(2), tracks[1].ID)
}

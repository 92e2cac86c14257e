package format_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/format"
	"github.com/gomkv/gomkv/matroska"
)

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

func minimalMatroskaStream() []byte {
	ebmlHeader := elemBytes(matroska.IDEBMLHeader, nil)

	trackEntry := elemBytes(matroska.IDTrackEntry, concat(
		elemBytes(matroska.IDTrackNum, []byte{1}),
		elemBytes(matroska.IDTrackUID, []byte{0x03, 0xE8}),
		elemBytes(matroska.IDTrackType, []byte{2}),
		elemBytes(matroska.IDCodecID, []byte("A_OPUS")),
	))
	tracks := elemBytes(matroska.IDTracks, trackEntry)
	segment := elemBytes(matroska.IDSegment, tracks)

	return concat(ebmlHeader, segment)
}

func TestOpenPicksMatroskaDemuxer(t *testing.T) {
	raw := minimalMatroskaStream()
	inst, err := format.Open(bytes.NewReader(raw))
	require.NoError(t, err)

	fd := inst.FormatData()
	require.Len(t, fd.Tracks, 1)
	require.Equal(t, matroska.CodecOpus, fd.Tracks[0].CodecParams.Ty)
}

func TestOpenRejectsUnrecognisedStream(t *testing.T) {
	_, err := format.Open(bytes.NewReader([]byte("not a container at all, just text")))
	require.ErrorIs(t, err, matroska.ErrUnknownFormat)
}

func TestOpenRejectsUnknownDocType(t *testing.T) {
	// Spec scenario S2: a structurally valid EBML header with an
	// unsupported doc_type must still probe at 1.0 (it's well-formed
	// EBML) but fail Open with UnknownDocType, not UnknownFormat.
	ebmlHeader := elemBytes(matroska.IDEBMLHeader, elemBytes(matroska.IDEBMLDocType, []byte("mkv")))
	raw := concat(ebmlHeader, minimalMatroskaStream())

	_, err := format.Open(bytes.NewReader(raw))
	require.ErrorIs(t, err, matroska.ErrUnknownDocType)
}

func TestOpenHandlesShortStreamDuringProbe(t *testing.T) {
	// Shorter than the 4096-byte peek budget; must not be misread as a
	// peek failure (regression: an earlier readPeekBudget implementation
	// used Reader.ReadBytes, which discards partial reads on short
	// streams).
	raw := minimalMatroskaStream()
	require.Less(t, len(raw), 4096)

	inst, err := format.Open(bytes.NewReader(raw))
	require.NoError(t, err)
	require.NotNil(t, inst.FormatData())
}

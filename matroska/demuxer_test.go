package matroska

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/reader"
)

// buildMinimalStream assembles a complete-but-tiny Matroska byte stream:
// an EBML header with every field defaulted, one audio TrackEntry, and a
// single Cluster carrying one keyframe SimpleBlock.
func buildMinimalStream(t *testing.T) []byte {
	t.Helper()

	ebmlHeader := elemBytes(IDEBMLHeader, nil)

	trackEntry := elemBytes(IDTrackEntry, concat(
		elemBytes(IDTrackNum, []byte{1}),
		elemBytes(IDTrackUID, []byte{0x03, 0xE8}),
		elemBytes(IDTrackType, []byte{2}), // audio
		elemBytes(IDCodecID, []byte("A_OPUS")),
	))
	tracks := elemBytes(IDTracks, trackEntry)

	blockBody := concat(
		[]byte{0x81},       // track number VINT, track 1
		[]byte{0x00, 0x00}, // timecode offset, int16BE 0
		[]byte{0x80},       // flags: keyframe
		[]byte("PAYLOAD"),
	)
	simpleBlock := elemBytes(IDSimpleBlock, blockBody)
	timestamp := elemBytes(IDTimestamp, []byte{100})
	cluster := elemBytes(IDCluster, concat(timestamp, simpleBlock))

	segment := elemBytes(IDSegment, concat(tracks, cluster))

	return concat(ebmlHeader, segment)
}

func TestDemuxerOpenFindsOneAudioTrack(t *testing.T) {
	raw := buildMinimalStream(t)
	d := New(reader.New(bytes.NewReader(raw)))

	fd, err := d.Open()
	require.NoError(t, err)
	require.Len(t, fd.Tracks, 1)
	require.Equal(t, MediaAudio, fd.Tracks[0].Ty)
	require.Equal(t, CodecOpus, fd.Tracks[0].CodecParams.Ty)
}

func TestDemuxerReadPacketEmitsBlockThenEOF(t *testing.T) {
	raw := buildMinimalStream(t)
	d := New(reader.New(bytes.NewReader(raw)))

	_, err := d.Open()
	require.NoError(t, err)

	pkt, err := d.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte("PAYLOAD"), pkt.Data)
	require.Equal(t, int64(100), pkt.Timestamp)
	require.NotZero(t, pkt.Flags&FlagKeyframe)

	_, err = d.ReadPacket()
	require.ErrorIs(t, err, io.EOF)
}

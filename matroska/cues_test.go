package matroska

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

func TestParseCuesSingleTrackPosition(t *testing.T) {
	trackPositions := elemBytes(IDCueTrackPositions, concat(
		elemBytes(IDCueTrack, []byte{1}),
		elemBytes(IDCueClusterPosition, []byte{0x10}),
	))
	cuePoint := elemBytes(IDCuePoint, concat(
		elemBytes(IDCueTime, []byte{5}),
		trackPositions,
	))

	r := reader.New(bytes.NewReader(cuePoint))
	hdr := ebml.ElemHdr{ID: IDCues, Size: uint64(len(cuePoint)), BodyPos: 0}

	points, err := parseCues(r, hdr)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, uint64(5), points[0].time)
	require.Len(t, points[0].positions, 1)
	require.Equal(t, uint64(1), points[0].positions[0].track)
	require.Equal(t, uint64(0x10), points[0].positions[0].clusterPosition)
}

func TestParseCueTrackPositionsRequiresTrack(t *testing.T) {
	raw := elemBytes(IDCueClusterPosition, []byte{0x10})
	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDCueTrackPositions, Size: uint64(len(raw)), BodyPos: 0}

	_, err := parseCueTrackPositions(r, hdr)
	require.ErrorIs(t, err, ebml.ErrMissingElement)
}

package matroska

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

func TestParseSeekHeadCollectsPoints(t *testing.T) {
	seek := elemBytes(IDSeek, concat(
		elemBytes(IDSeekID, idBytes(IDTracks)),
		elemBytes(IDSeekPos, []byte{0x2A}),
	))
	r := reader.New(bytes.NewReader(seek))
	hdr := ebml.ElemHdr{ID: IDSeekHead, Size: uint64(len(seek)), BodyPos: 0}

	points, err := parseSeekHead(r, hdr)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, uint64(0x2A), points[0].position)
}

func TestParseSeekHeadRequiresSeekPos(t *testing.T) {
	seek := elemBytes(IDSeek, elemBytes(IDSeekID, idBytes(IDTracks)))
	r := reader.New(bytes.NewReader(seek))
	hdr := ebml.ElemHdr{ID: IDSeekHead, Size: uint64(len(seek)), BodyPos: 0}

	_, err := parseSeekHead(r, hdr)
	require.ErrorIs(t, err, ebml.ErrMissingElement)
}

package matroska

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

func TestParseBlockHeaderRejectsLacing(t *testing.T) {
	body := []byte{0x81, 0x00, 0x00, 0x06, 'p', 'a', 'y', 'l', 'o', 'a', 'd'}
	r := reader.New(bytes.NewReader(body))
	hdr := ebml.ElemHdr{Size: uint64(len(body)), BodyPos: 0}

	_, err := parseBlockHeader(r, hdr)
	require.ErrorIs(t, err, ErrUnsupportedLacing)
}

func TestParseBlockHeaderComputesPayloadSize(t *testing.T) {
	body := []byte{0x81, 0x00, 0x05, 0x80, 'h', 'e', 'l', 'l', 'o'}
	r := reader.New(bytes.NewReader(body))
	hdr := ebml.ElemHdr{Size: uint64(len(body)), BodyPos: 0}

	b, err := parseBlockHeader(r, hdr)
	require.NoError(t, err)
	require.Equal(t, uint64(1), b.trackID)
	require.Equal(t, int64(5), b.timecode)
	require.Equal(t, uint64(5), b.size)
}

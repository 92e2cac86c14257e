package matroska

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

func TestParseSegmentInfoDefaultsTimestampScale(t *testing.T) {
	r := reader.New(bytes.NewReader(nil))
	hdr := ebml.ElemHdr{ID: IDSegmentInfo, Size: 0, BodyPos: 0}

	info, err := parseSegmentInfo(r, hdr)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), info.TimestampScale)
	require.False(t, info.HasDuration)
}

func TestSegmentInfoTimeBaseReducesToMillisecond(t *testing.T) {
	info := segmentInfo{TimestampScale: 1_000_000}
	tb := info.timeBase()
	require.Equal(t, int64(1), tb.Num)
	require.Equal(t, int64(1000), tb.Den)
}

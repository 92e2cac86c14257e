package codecparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/matroska"
)

func TestNewAACDecodesStandardLCConfig(t *testing.T) {
	// AOT=2 (LC), sampleRateIndex=4 (44100Hz), channelConfig=2 (stereo) -
	// the conventional "12 10" AudioSpecificConfig bytes.
	params := &matroska.CodecParams{Config: []byte{0x12, 0x10}}
	NewAAC(params)

	require.Equal(t, uint32(44100), params.SampleRate)
	require.Equal(t, uint32(2), params.Channels)
}

func TestNewAACSampleRateEscape(t *testing.T) {
	// AOT=2, sampleRateIndex=0xF (escape) + 24-bit literal 12345,
	// channelConfig=1 (mono).
	br := bitWriter{}
	br.write(2, 5)
	br.write(0xF, 4)
	br.write(12345, 24)
	br.write(1, 4)
	params := &matroska.CodecParams{Config: br.bytes()}

	NewAAC(params)
	require.Equal(t, uint32(12345), params.SampleRate)
	require.Equal(t, uint32(1), params.Channels)
}

// bitWriter is the test-only inverse of bitReader, assembling an
// AudioSpecificConfig bit by bit for escape-path coverage.
type bitWriter struct {
	bits []bool
}

func (w *bitWriter) write(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.bits = append(w.bits, (v>>uint(i))&1 != 0)
	}
}

func (w *bitWriter) bytes() []byte {
	out := make([]byte, (len(w.bits)+7)/8)
	for i, b := range w.bits {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

package matroska

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/reader"
)

func TestProbeScoresFullMarksOnValidHeader(t *testing.T) {
	raw := elemBytes(IDEBMLHeader, nil)
	r := reader.New(bytes.NewReader(raw))

	score, err := Probe(r)
	require.NoError(t, err)
	require.Equal(t, 1.0, score)
}

func TestProbeScoresFullMarksOnHeaderAfterVoid(t *testing.T) {
	raw := concat(
		elemBytes(IDVoid, []byte{0, 0, 0}),
		elemBytes(IDEBMLHeader, nil),
	)
	r := reader.New(bytes.NewReader(raw))

	score, err := Probe(r)
	require.NoError(t, err)
	require.Equal(t, 1.0, score)
}

func TestProbeScoresZeroOnUnrelatedData(t *testing.T) {
	// A leading zero byte is an invalid VINT lead byte outright (not a
	// malformed-but-plausible ID), so Probe swallows it to a 0.0 score
	// rather than propagating an error.
	r := reader.New(bytes.NewReader([]byte{0x00, 'x', 'x', 'x'}))

	score, err := Probe(r)
	require.NoError(t, err)
	require.Equal(t, 0.0, score)
}

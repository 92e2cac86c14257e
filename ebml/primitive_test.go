package ebml_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

func TestFloatZeroLengthIsZero(t *testing.T) {
	r := reader.New(bytes.NewReader(nil))
	v, err := ebml.Float(r, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
}

func TestFloatRejectsOtherLengths(t *testing.T) {
	r := reader.New(bytes.NewReader([]byte{1, 2, 3}))
	_, err := ebml.Float(r, 3)
	require.ErrorIs(t, err, ebml.ErrReadOverflow)
}

func TestBitFlagsAcceptsKnownBits(t *testing.T) {
	r := reader.New(bytes.NewReader([]byte{0x06}))
	v, err := ebml.BitFlags(r, 1, 0x8E)
	require.NoError(t, err)
	require.Equal(t, uint64(0x06), v)
}

func TestBitFlagsRejectsUnknownBits(t *testing.T) {
	r := reader.New(bytes.NewReader([]byte{0x10}))
	_, err := ebml.BitFlags(r, 1, 0x8E)
	require.ErrorIs(t, err, ebml.ErrInvalidVariant)
}

func TestNonZeroUnsignedRejectsZero(t *testing.T) {
	r := reader.New(bytes.NewReader([]byte{0x00}))
	_, err := ebml.NonZeroUnsigned(r, 1)
	require.ErrorIs(t, err, ebml.ErrExpectedNonZero)
}

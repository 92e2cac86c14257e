package ebml_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
)

func TestSingleRejectsDuplicateInsert(t *testing.T) {
	var s ebml.Single[uint64]
	require.NoError(t, s.Insert(5))
	require.ErrorIs(t, s.Insert(6), ebml.ErrDuplicateElement)

	v, ok := s.Get()
	require.True(t, ok)
	require.Equal(t, uint64(5), v)
}

func TestSingleRequireMissing(t *testing.T) {
	var s ebml.Single[string]
	_, err := s.Require()
	require.ErrorIs(t, err, ebml.ErrMissingElement)
}

func TestSingleOrDefault(t *testing.T) {
	var s ebml.Single[uint64]
	require.Equal(t, uint64(42), s.OrDefault(42))
	require.NoError(t, s.Insert(7))
	require.Equal(t, uint64(7), s.OrDefault(42))
}

func TestMultiFinalize(t *testing.T) {
	var m ebml.Multi[int]
	vs, err := m.Finalize(false)
	require.NoError(t, err)
	require.Empty(t, vs)

	_, err = m.Finalize(true)
	require.ErrorIs(t, err, ebml.ErrMissingElement)

	m.Append(1)
	m.Append(2)
	vs, err = m.Finalize(true)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, vs)
	require.Equal(t, 2, m.Len())
}

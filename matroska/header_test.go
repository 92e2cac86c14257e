package matroska

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

// twoByteIDElem builds a single child element whose ID is a 2-byte,
// marker-included constant (e.g. IDEBMLVersion = 0x4286) carrying a
// 1-byte unsigned integer body.
func twoByteIDElem(id uint64, v uint8) []byte {
	return []byte{byte(id >> 8), byte(id), 0x81, v}
}

func TestParseEBMLHeaderReadsVersion(t *testing.T) {
	raw := twoByteIDElem(IDEBMLVersion, 1)
	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDEBMLHeader, Size: uint64(len(raw)), BodyPos: 0}

	h, err := parseEBMLHeader(r, hdr)
	require.NoError(t, err)
	require.Equal(t, uint64(1), h.Version)
}

func TestParseEBMLHeaderDefaults(t *testing.T) {
	// Body with no children at all: every field should take its default.
	r := reader.New(bytes.NewReader(nil))
	hdr := ebml.ElemHdr{ID: IDEBMLHeader, Size: 0, BodyPos: 0}

	h, err := parseEBMLHeader(r, hdr)
	require.NoError(t, err)
	require.Equal(t, uint64(1), h.Version)
	require.Equal(t, uint64(4), h.MaxIDLength)
	require.Equal(t, uint64(8), h.MaxSizeLength)
	require.Equal(t, "matroska", h.DocType)
}

func TestParseEBMLHeaderDoesNotValidateDocType(t *testing.T) {
	// parseEBMLHeader is structural-only (spec scenario S2): a doc_type
	// the rule table rejects still decodes cleanly here. Demuxer.Open is
	// what calls validateHeader and surfaces UnknownDocType.
	docType := []byte("mkv")
	raw := append([]byte{byte(IDEBMLDocType >> 8), byte(IDEBMLDocType), 0x80 | byte(len(docType))}, docType...)
	r := reader.New(bytes.NewReader(raw))
	hdr := ebml.ElemHdr{ID: IDEBMLHeader, Size: uint64(len(raw)), BodyPos: 0}

	h, err := parseEBMLHeader(r, hdr)
	require.NoError(t, err)
	require.Equal(t, "mkv", h.DocType)
	require.ErrorIs(t, validateHeader(h), ErrUnknownDocType)
}

func TestValidateHeaderRejectsUnknownDocType(t *testing.T) {
	h := EBMLHeader{Version: 1, MaxIDLength: 4, MaxSizeLength: 8, DocType: "ssa", DocTypeVersion: 1}
	require.ErrorIs(t, validateHeader(h), ErrUnknownDocType)
}

func TestValidateHeaderRejectsOversizeMaxIDLength(t *testing.T) {
	h := EBMLHeader{Version: 1, MaxIDLength: 9, MaxSizeLength: 8, DocType: "webm", DocTypeVersion: 1}
	require.ErrorIs(t, validateHeader(h), ErrIDTooLong)
}

func TestValidateHeaderAcceptsWebm(t *testing.T) {
	h := EBMLHeader{Version: 1, MaxIDLength: 4, MaxSizeLength: 8, DocType: "webm", DocTypeVersion: 2}
	require.NoError(t, validateHeader(h))
}

package matroska

import (
	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

// laceMask isolates bits 1-2 of the block flags byte (spec §6, block
// header layout).
const laceMask = 0x06

// blockFlagsMask is every bit spec §6's block header assigns meaning to:
// bit 7 keyframe, bits 1-2 lacing, bit 3 invisible.
const blockFlagsMask = 0x80 | laceMask | 0x08

// parseBlockHeader reads a SimpleBlock/Block's header — track number VINT,
// signed 16-bit timecode offset, and flags byte — and returns it alongside
// the number of bytes remaining in the element for the frame payload (spec
// §6; §4.E dispatch for SimpleBlock/Block).
func parseBlockHeader(r *reader.Reader, hdr ebml.ElemHdr) (block, error) {
	start := r.Position()
	track, _, err := ebml.DecodeVint(r, ebml.VintUnsigned)
	if err != nil {
		return block{}, err
	}
	offset, err := r.ReadI16BE()
	if err != nil {
		return block{}, err
	}
	flags64, err := ebml.BitFlags(r, 1, blockFlagsMask)
	if err != nil {
		return block{}, err
	}
	flags := uint8(flags64)
	if flags&laceMask != 0 {
		return block{}, ErrUnsupportedLacing
	}
	headerLen := r.Position() - start
	return block{
		trackID:  track,
		timecode: int64(offset),
		flags:    flags,
		size:     hdr.Size - headerLen,
	}, nil
}

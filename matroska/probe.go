package matroska

import (
	"io"

	"github.com/pkg/errors"

	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

// Probe implements spec §4.E's "Probe" scoring algorithm: read up to four
// top-level elements, scoring 1.0 on a structurally well-formed EBML
// header, 0.25 if only Void/Crc32/Segment were observed first, 0.0 if the
// EBML header itself is malformed or cut short, the score reached so far if
// an element header is malformed or the input runs out, and propagating
// anything else
// (spec §7, "other errors propagate"). Probe deliberately does not run validateHeader —
// a header with an unsupported doc_type is still a valid EBML header and
// scores 1.0; Demuxer.Open is what surfaces UnknownDocType et al.
func Probe(r *reader.Reader) (float64, error) {
	r.SetPeeking(true)
	defer r.SetPeeking(false)

	score := 0.0
	for i := 0; i < 4; i++ {
		hdr, err := ebml.ReadHeader(r)
		if err != nil {
			if isProbeFatal(err) {
				return 0, err
			}
			return score, nil
		}

		switch hdr.ID {
		case IDEBMLHeader:
			if _, err := parseEBMLHeader(r, hdr); err != nil {
				if isProbeFatal(err) {
					return 0, err
				}
				return 0, nil
			}
			return 1.0, nil
		case IDVoid, IDCRC32, IDSegment:
			score = 0.25
			if hdr.Unknown() {
				return score, nil
			}
			if err := r.Seek(hdr.BodyPos + hdr.Size); err != nil {
				if isProbeFatal(err) {
					return 0, err
				}
				return score, nil
			}
		default:
			if hdr.Unknown() {
				return score, nil
			}
			if err := r.Seek(hdr.BodyPos + hdr.Size); err != nil {
				if isProbeFatal(err) {
					return 0, err
				}
				return score, nil
			}
		}
	}
	return score, nil
}

// isProbeFatal reports whether err must propagate out of probing rather
// than being swallowed into a score. Malformed EBML (ebml.IsMalformed) and
// a stream that ends mid-probe are swallowed; anything else, including
// *reader.InvalidSeekError and reader.ErrPeekBufferExhausted, propagates.
func isProbeFatal(err error) bool {
	if ebml.IsMalformed(err) {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	return true
}

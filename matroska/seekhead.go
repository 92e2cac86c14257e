package matroska

import (
	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

// seekPoint is one (element id, segment-relative byte offset) pair from a
// SeekHead (spec §4.D, §GLOSSARY "SeekHead"), grounded on
// gemini-srt-translator-go's parseSeekHead/parseSeek.
type seekPoint struct {
	id       uint64
	position uint64
}

var seekHeadChildren = map[uint64]bool{IDSeek: true}
var seekChildren = map[uint64]bool{IDSeekID: true, IDSeekPos: true}

// parseSeekHead collects seek points; it is advisory only (spec §4.E,
// "parse into memory; advisory") — this demuxer does not jump to them
// during open; Demuxer stores them in seekPoints, which nothing reads.
func parseSeekHead(r *reader.Reader, hdr ebml.ElemHdr) ([]seekPoint, error) {
	var points []seekPoint
	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 0, func(id uint64) bool { return seekHeadChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			if child.ID != IDSeek {
				return nil
			}
			var idField, posField ebml.Single[uint64]
			cend, chasEnd := child.EndPos()
			err := ebml.ReadChildren(r, cend, chasEnd, 1, func(id uint64) bool { return seekChildren[id] },
				func(r *reader.Reader, gc ebml.ElemHdr) error {
					switch gc.ID {
					case IDSeekID:
						v, err := ebml.Unsigned(r, int(gc.Size))
						if err != nil {
							return err
						}
						return idField.Insert(v)
					case IDSeekPos:
						v, err := ebml.Unsigned(r, int(gc.Size))
						if err != nil {
							return err
						}
						return posField.Insert(v)
					}
					return nil
				})
			if err != nil {
				return err
			}
			id, err := idField.Require()
			if err != nil {
				return err
			}
			pos, err := posField.Require()
			if err != nil {
				return err
			}
			points = append(points, seekPoint{id: id, position: pos})
			return nil
		})
	return points, err
}

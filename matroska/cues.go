package matroska

import (
	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/reader"
)

// cuePoint and cueTrackPosition mirror original_source/spec/cues.rs's
// schema (Point/TrackPositions) — the teacher never implemented real
// cue-based seeking (its Seek/SeekCueAware are TODO stubs), so this shape
// has no teacher equivalent to generalize from.
type cueTrackPosition struct {
	track           uint64
	clusterPosition uint64
}

type cuePoint struct {
	time      uint64
	positions []cueTrackPosition
}

var cuesChildren = map[uint64]bool{IDCuePoint: true}
var cuePointChildren = map[uint64]bool{IDCueTime: true, IDCueTrackPositions: true}
var cueTrackPositionsChildren = map[uint64]bool{
	IDCueTrack: true, IDCueClusterPosition: true, IDCueRelativePosition: true,
	IDCueDuration: true, IDCueBlockNumber: true,
}

func parseCues(r *reader.Reader, hdr ebml.ElemHdr) ([]cuePoint, error) {
	var points []cuePoint
	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 0, func(id uint64) bool { return cuesChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			if child.ID != IDCuePoint {
				return nil
			}
			p, err := parseCuePoint(r, child)
			if err != nil {
				return err
			}
			points = append(points, p)
			return nil
		})
	return points, err
}

func parseCuePoint(r *reader.Reader, hdr ebml.ElemHdr) (cuePoint, error) {
	var time ebml.Single[uint64]
	var positions []cueTrackPosition

	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 1, func(id uint64) bool { return cuePointChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			switch child.ID {
			case IDCueTime:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return time.Insert(v)
			case IDCueTrackPositions:
				pos, err := parseCueTrackPositions(r, child)
				if err != nil {
					return err
				}
				positions = append(positions, pos)
				return nil
			}
			return nil
		})
	if err != nil {
		return cuePoint{}, err
	}
	t, err := time.Require()
	if err != nil {
		return cuePoint{}, err
	}
	return cuePoint{time: t, positions: positions}, nil
}

func parseCueTrackPositions(r *reader.Reader, hdr ebml.ElemHdr) (cueTrackPosition, error) {
	var track, clusterPos ebml.Single[uint64]
	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 2, func(id uint64) bool { return cueTrackPositionsChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			switch child.ID {
			case IDCueTrack:
				v, err := ebml.NonZeroUnsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return track.Insert(v)
			case IDCueClusterPosition:
				v, err := ebml.Unsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return clusterPos.Insert(v)
			case IDCueRelativePosition, IDCueDuration, IDCueBlockNumber:
				_, err := ebml.Unsigned(r, int(child.Size))
				return err
			}
			return nil
		})
	if err != nil {
		return cueTrackPosition{}, err
	}
	tr, err := track.Require()
	if err != nil {
		return cueTrackPosition{}, err
	}
	cp, err := clusterPos.Require()
	if err != nil {
		return cueTrackPosition{}, err
	}
	return cueTrackPosition{track: tr, clusterPosition: cp}, nil
}

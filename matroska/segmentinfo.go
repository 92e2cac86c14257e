package matroska

import (
	"github.com/gomkv/gomkv/ebml"
	"github.com/gomkv/gomkv/rational"
	"github.com/gomkv/gomkv/reader"
)

// segmentInfo is the finalized SegmentInfo shape this demuxer cares about
// (spec §4.E, "SegmentInfo -> extract duration and timecode_scale");
// grounded on the teacher's parseSegmentInfo plus the fields
// original_source/segment_info.rs carries that the teacher dropped
// (Title/MuxingApp/WritingApp survive for informational display).
type segmentInfo struct {
	TimestampScale uint64
	Duration       float64
	HasDuration    bool
	Title          string
	MuxingApp      string
	WritingApp     string
}

var segmentInfoChildren = map[uint64]bool{
	IDSegmentUID: true, IDTimestampScale: true, IDDuration: true,
	IDTitle: true, IDMuxingApp: true, IDWritingApp: true,
}

func parseSegmentInfo(r *reader.Reader, hdr ebml.ElemHdr) (segmentInfo, error) {
	var (
		scale             ebml.Single[uint64]
		duration          ebml.Single[float64]
		title, mux, write ebml.Single[string]
	)

	end, hasEnd := hdr.EndPos()
	err := ebml.ReadChildren(r, end, hasEnd, 0, func(id uint64) bool { return segmentInfoChildren[id] },
		func(r *reader.Reader, child ebml.ElemHdr) error {
			switch child.ID {
			case IDTimestampScale:
				v, err := ebml.NonZeroUnsigned(r, int(child.Size))
				if err != nil {
					return err
				}
				return scale.Insert(v)
			case IDDuration:
				v, err := ebml.PositiveFloat(r, int(child.Size))
				if err != nil {
					return err
				}
				return duration.Insert(v)
			case IDTitle:
				v, err := ebml.String(r, int(child.Size))
				if err != nil {
					return err
				}
				return title.Insert(v)
			case IDMuxingApp:
				v, err := ebml.String(r, int(child.Size))
				if err != nil {
					return err
				}
				return mux.Insert(v)
			case IDWritingApp:
				v, err := ebml.String(r, int(child.Size))
				if err != nil {
					return err
				}
				return write.Insert(v)
			case IDSegmentUID:
				_, err := ebml.Bytes(r, int(child.Size))
				return err
			}
			return nil
		})
	if err != nil {
		return segmentInfo{}, err
	}

	dur, hasDur := duration.Get()
	return segmentInfo{
		TimestampScale: scale.OrDefault(1_000_000),
		Duration:       dur,
		HasDuration:    hasDur,
		Title:          title.OrDefault(""),
		MuxingApp:      mux.OrDefault(""),
		WritingApp:     write.OrDefault(""),
	}, nil
}

// timeBase returns the container-wide timestamp rescale ratio (spec §4.E:
// `Rational(timestamp_scale_ns, 1_000_000_000).reduce()`).
func (s segmentInfo) timeBase() rational.Rational {
	return rational.New(int64(s.TimestampScale), 1_000_000_000).Reduce()
}

package format

import (
	"bytes"

	"github.com/gomkv/gomkv/matroska"
	"github.com/gomkv/gomkv/reader"
)

// matroskaDemuxer adapts package matroska to the format.Demuxer contract.
type matroskaDemuxer struct{}

func (matroskaDemuxer) Name() string { return "matroska" }

func (matroskaDemuxer) Probe(peek []byte) float64 {
	pr := reader.New(bytes.NewReader(peek))
	score, err := matroska.Probe(pr)
	if err != nil {
		return 0
	}
	return score
}

func (matroskaDemuxer) Open(r *reader.Reader, cfg *OpenConfig) (Instance, error) {
	d := matroska.New(r,
		matroska.WithLogger(cfg.Logger),
		matroska.WithCodecParserFactory(newCodecParser),
	)
	fd, err := d.Open()
	if err != nil {
		return nil, err
	}
	return &matroskaInstance{d: d, fd: fd}, nil
}

type matroskaInstance struct {
	d  *matroska.Demuxer
	fd *matroska.FormatData
}

func (i *matroskaInstance) FormatData() *matroska.FormatData { return i.fd }
func (i *matroskaInstance) ReadPacket() (*matroska.Packet, error) { return i.d.ReadPacket() }
func (i *matroskaInstance) Seek(trackIndex int, timecode int64, flags SeekFlags) error {
	return i.d.Seek(trackIndex, timecode, flags)
}

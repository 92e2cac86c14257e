package format

import (
	"github.com/gomkv/gomkv/matroska"
	"github.com/gomkv/gomkv/reader"
)

// nativeFallback stands in for "an external native demuxer ... consulted
// if no native candidate scores" (spec §4.E Probe). It always scores 0 and
// fails if ever opened: linking an actual FFI/cgo container library is out
// of this module's scope (spec §1), but the scoring table still needs a
// second candidate in its shape to match the facade spec §6 describes —
// the same role github.com/dwbuiten/matroska plays behind
// luispater/gemini-srt-translator-go's own matroska package, minus the cgo.
type nativeFallback struct{}

func (nativeFallback) Name() string { return "native-fallback" }

func (nativeFallback) Probe([]byte) float64 { return 0 }

func (nativeFallback) Open(*reader.Reader, *OpenConfig) (Instance, error) {
	return nil, matroska.ErrUnknownFormat
}

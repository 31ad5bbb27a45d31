package icns

import (
	"fmt"
	"io"
	"math"

	"github.com/hashicorp/go-hclog"

	iconerrors "github.com/provide-io/svgicon/pkg/icon/errors"
	"github.com/provide-io/svgicon/pkg/icon/layout"
	"github.com/provide-io/svgicon/pkg/icon/raster"
)

// Encoder builds ICNS containers from a raster source.
type Encoder struct {
	logger hclog.Logger
}

// NewEncoder creates an encoder that logs to logger (nil discards).
func NewEncoder(logger hclog.Logger) *Encoder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Encoder{logger: logger}
}

// Encode builds an ICNS with a default, silent encoder.
func Encode(src raster.Source, sizes []int, includeRetina bool) ([]byte, error) {
	return NewEncoder(nil).Encode(src, sizes, includeRetina)
}

// Write encodes the whole container before touching w.
func Write(w io.Writer, src raster.Source, sizes []int, includeRetina bool) error {
	data, err := Encode(src, sizes, includeRetina)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing ICNS: %w", err)
	}
	return nil
}

// Encode emits, for each size in caller order that has a type code, a 1x
// block and, when includeRetina is set, a 2x block rendered at double the
// size right after it. Sizes without a type code are skipped. Empty sizes
// selects DefaultSizes.
func (e *Encoder) Encode(src raster.Source, sizes []int, includeRetina bool) ([]byte, error) {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	if err := layout.ValidateSizes(sizes, 0); err != nil {
		return nil, err
	}

	e.logger.Debug("🎨 Rasterizing ICNS images", "sizes", sizes, "retina", includeRetina)

	var blocks []Block
	for _, size := range sizes {
		variant, ok := Lookup(size)
		if !ok {
			e.logger.Debug("Skipping size without an ICNS type", "size", size)
			continue
		}

		block, err := e.render(src, variant.Standard, size)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)

		if includeRetina {
			block, err := e.render(src, variant.Retina, size*2)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		}
	}

	total := HeaderSize
	for i := range blocks {
		total += blocks[i].Len()
	}
	if int64(total) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: total %d bytes", iconerrors.ErrContainerTooLarge, total)
	}

	parts := make([][]byte, 0, 1+len(blocks))
	parts = append(parts, packHeader(total))
	for i := range blocks {
		packed, err := blocks[i].Pack()
		if err != nil {
			return nil, err
		}
		parts = append(parts, packed)
	}

	out := layout.Concat(total, parts...)

	e.logger.Info("✅ Encoded ICNS", "blocks", len(blocks), "bytes", len(out))
	return out, nil
}

func (e *Encoder) render(src raster.Source, code TypeCode, pixels int) (Block, error) {
	data, err := src.Rasterize(pixels, pixels)
	if err != nil {
		e.logger.Error("❌ Rasterization failed", "type", code.String(), "pixels", pixels, "error", err)
		return Block{}, iconerrors.Rasterization(pixels, pixels, err)
	}
	e.logger.Trace("Rasterized block", "type", code.String(), "pixels", pixels, "bytes", len(data))
	return Block{Type: code, Data: data}, nil
}

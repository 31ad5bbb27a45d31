package pkg

import (
	"bytes"
	"fmt"
	"image/png"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/svgicon/internal/outfile"
	"github.com/provide-io/svgicon/pkg/icon/icns"
	"github.com/provide-io/svgicon/pkg/icon/ico"
	"github.com/provide-io/svgicon/pkg/icon/raster"
	"github.com/provide-io/svgicon/pkg/syso"
)

// Options are shared by every conversion.
type Options struct {
	Logger      hclog.Logger
	Scaler      raster.Scaler        // bitmap inputs only; nil selects CatmullRom
	Compression png.CompressionLevel // zero value is png.DefaultCompression
	StrictSVG   bool
}

// PNGOptions configures a single PNG export. A zero Width or Height is
// derived from the source aspect ratio.
type PNGOptions struct {
	Options
	Width  int
	Height int
}

// ICOOptions configures an ICO export. Empty Sizes selects ico.DefaultSizes.
type ICOOptions struct {
	Options
	Sizes []int
}

// ICNSOptions configures an ICNS export. Empty Sizes selects
// icns.DefaultSizes; 2x blocks are included unless ExcludeRetina is set.
type ICNSOptions struct {
	Options
	Sizes         []int
	ExcludeRetina bool
}

// SysoOptions configures a Windows resource object export.
type SysoOptions struct {
	ICOOptions
	Arch string
}

// Source is a raster source that knows its natural dimensions.
type Source interface {
	raster.Source
	NaturalSize() (float64, float64)
}

func (o Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// LoadSource picks the SVG renderer or the bitmap scaler by sniffing data.
func LoadSource(data []byte, opts Options) (Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if raster.IsSVG(data) {
		svgOpts := []raster.SVGOption{raster.WithSVGCompression(opts.Compression)}
		if opts.StrictSVG {
			svgOpts = append(svgOpts, raster.WithStrictParsing())
		}
		src, err := raster.NewSVGSource(data, svgOpts...)
		if err != nil {
			return nil, err
		}
		opts.logger().Debug("Loaded SVG source", "bytes", len(data))
		return src, nil
	}

	img, format, err := raster.DecodeBitmap(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	src := raster.NewBitmapSource(img, opts.Scaler)
	src.SetCompression(opts.Compression)
	opts.logger().Debug("Loaded bitmap source", "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return src, nil
}

// RenderPNG renders one PNG from an SVG or bitmap input.
func RenderPNG(data []byte, opts PNGOptions) ([]byte, error) {
	src, err := LoadSource(data, opts.Options)
	if err != nil {
		return nil, err
	}
	natW, natH := src.NaturalSize()
	w, h, err := raster.FitDimensions(natW, natH, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("🎨 Rendering PNG", "width", w, "height", h)
	return src.Rasterize(w, h)
}

// EncodeICO builds an ICO from an SVG or bitmap input.
func EncodeICO(data []byte, opts ICOOptions) ([]byte, error) {
	src, err := LoadSource(data, opts.Options)
	if err != nil {
		return nil, err
	}
	return ico.NewEncoder(opts.logger()).Encode(src, opts.Sizes)
}

// EncodeICNS builds an ICNS from an SVG or bitmap input.
func EncodeICNS(data []byte, opts ICNSOptions) ([]byte, error) {
	src, err := LoadSource(data, opts.Options)
	if err != nil {
		return nil, err
	}
	return icns.NewEncoder(opts.logger()).Encode(src, opts.Sizes, !opts.ExcludeRetina)
}

// EncodeSyso builds a Windows .syso. An ICO input is embedded as-is;
// anything else is first encoded to ICO.
func EncodeSyso(data []byte, opts SysoOptions) ([]byte, error) {
	icoData := data
	if !isICO(data) {
		var err error
		icoData, err = EncodeICO(data, opts.ICOOptions)
		if err != nil {
			return nil, err
		}
	}
	arch := opts.Arch
	if arch == "" {
		arch = "amd64"
	}
	return syso.Build(icoData, arch, opts.logger())
}

// ConvertToPNG converts the file at inputPath into a PNG at outputPath.
func ConvertToPNG(inputPath, outputPath string, opts PNGOptions) error {
	return convert(inputPath, outputPath, opts.logger(), func(data []byte) ([]byte, error) {
		return RenderPNG(data, opts)
	})
}

// ConvertToICO converts the file at inputPath into an ICO at outputPath.
func ConvertToICO(inputPath, outputPath string, opts ICOOptions) error {
	return convert(inputPath, outputPath, opts.logger(), func(data []byte) ([]byte, error) {
		return EncodeICO(data, opts)
	})
}

// ConvertToICNS converts the file at inputPath into an ICNS at outputPath.
func ConvertToICNS(inputPath, outputPath string, opts ICNSOptions) error {
	return convert(inputPath, outputPath, opts.logger(), func(data []byte) ([]byte, error) {
		return EncodeICNS(data, opts)
	})
}

// ConvertToSyso converts the file at inputPath into a .syso at outputPath.
func ConvertToSyso(inputPath, outputPath string, opts SysoOptions) error {
	return convert(inputPath, outputPath, opts.logger(), func(data []byte) ([]byte, error) {
		return EncodeSyso(data, opts)
	})
}

func convert(inputPath, outputPath string, logger hclog.Logger, encode func([]byte) ([]byte, error)) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	out, err := encode(data)
	if err != nil {
		return fmt.Errorf("converting %s: %w", inputPath, err)
	}

	if err := outfile.Write(outputPath, out, 0o644, logger); err != nil {
		return err
	}
	logger.Info("✅ Wrote output", "input", inputPath, "output", outputPath, "bytes", len(out))
	return nil
}

func isICO(data []byte) bool {
	return len(data) >= ico.HeaderSize && bytes.Equal(data[:4], []byte{0, 0, ico.TypeIcon, 0})
}

func isICNS(data []byte) bool {
	return len(data) >= icns.HeaderSize && bytes.Equal(data[:4], icns.Magic[:])
}

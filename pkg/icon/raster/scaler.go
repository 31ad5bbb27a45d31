package raster

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Scaler resamples src into the dst rectangle r.
type Scaler interface {
	Name() string
	Scale(dst *image.RGBA, r image.Rectangle, src image.Image)
}

type drawScaler struct {
	name   string
	kernel draw.Interpolator
}

func (s drawScaler) Name() string { return s.name }

func (s drawScaler) Scale(dst *image.RGBA, r image.Rectangle, src image.Image) {
	s.kernel.Scale(dst, r, src, src.Bounds(), draw.Src, nil)
}

type lanczosScaler struct{}

func (lanczosScaler) Name() string { return "lanczos" }

func (lanczosScaler) Scale(dst *image.RGBA, r image.Rectangle, src image.Image) {
	scaled := resize.Resize(uint(r.Dx()), uint(r.Dy()), src, resize.Lanczos3)
	draw.Draw(dst, r, scaled, scaled.Bounds().Min, draw.Src)
}

var (
	CatmullRom Scaler = drawScaler{name: "catmullrom", kernel: draw.CatmullRom}
	BiLinear   Scaler = drawScaler{name: "bilinear", kernel: draw.BiLinear}
	Lanczos    Scaler = lanczosScaler{}
)

// ParseScaler returns the scaler registered under name. An empty name
// selects CatmullRom.
func ParseScaler(name string) (Scaler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "catmullrom":
		return CatmullRom, nil
	case "bilinear":
		return BiLinear, nil
	case "lanczos", "lanczos3":
		return Lanczos, nil
	default:
		return nil, fmt.Errorf("unknown scaler %q (want catmullrom, bilinear or lanczos)", name)
	}
}

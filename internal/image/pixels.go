package image

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/jmylchreest/themix/internal/colour"
)

// DefaultMaxDimension bounds the long edge of an image before extraction.
const DefaultMaxDimension = 300

// Downsample scales img so that neither side exceeds maxDim, keeping the
// aspect ratio. Images already within bounds are returned as is. A
// non-positive maxDim disables scaling.
func Downsample(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	dw, dh := maxDim, maxDim
	if w >= h {
		dh = max(1, h*maxDim/w)
	} else {
		dw = max(1, w*maxDim/h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// PixelGrid exposes an image.Image as a colour.PixelSource. Coordinates are
// relative to the image bounds and alpha is discarded.
type PixelGrid struct {
	img    image.Image
	bounds image.Rectangle
	nrgba  *image.NRGBA
}

var _ colour.PixelSource = (*PixelGrid)(nil)

// NewPixelGrid wraps img.
func NewPixelGrid(img image.Image) *PixelGrid {
	g := &PixelGrid{img: img, bounds: img.Bounds()}
	if n, ok := img.(*image.NRGBA); ok {
		g.nrgba = n
	}
	return g
}

// Size implements colour.PixelSource.
func (g *PixelGrid) Size() (int, int) {
	return g.bounds.Dx(), g.bounds.Dy()
}

// RGBAt implements colour.PixelSource.
func (g *PixelGrid) RGBAt(x, y int) colour.RGB {
	px, py := g.bounds.Min.X+x, g.bounds.Min.Y+y
	if g.nrgba != nil {
		c := g.nrgba.NRGBAAt(px, py)
		return colour.RGB{R: c.R, G: c.G, B: c.B}
	}
	n := color.NRGBAModel.Convert(g.img.At(px, py)).(color.NRGBA)
	return colour.RGB{R: n.R, G: n.G, B: n.B}
}

// LoadPixels loads path, downsamples it to maxDim and returns the pixel grid
// along with the original dimensions.
func LoadPixels(l Loader, path string, maxDim int) (*PixelGrid, image.Point, error) {
	img, err := l.Load(path)
	if err != nil {
		return nil, image.Point{}, err
	}
	size := img.Bounds().Size()
	return NewPixelGrid(Downsample(img, maxDim)), size, nil
}

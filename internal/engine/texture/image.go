// Package texture provides image decoding for material texture maps.
package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// MinSize is the smallest texture edge accepted by the renderer.
const MinSize = 64

// Format is the pixel layout of an Image.
type Format int

// Pixel formats.
const (
	FormatRGB Format = iota
	FormatRGBA
)

// Channels returns the number of bytes per pixel.
func (f Format) Channels() int {
	if f == FormatRGBA {
		return 4
	}
	return 3
}

func (f Format) String() string {
	if f == FormatRGBA {
		return "RGBA"
	}
	return "RGB"
}

// Image is a decoded picture with rows stored top to bottom.
type Image struct {
	Format Format
	Width  int
	Height int
	Pix    []byte
}

// FromImage converts img to a flat buffer. Images without transparent pixels
// become RGB.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	format := FormatRGBA
	if opaque(img) {
		format = FormatRGB
	}
	ch := format.Channels()
	out := &Image{
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]byte, 0, b.Dx()*b.Dy()*ch),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.Pix = append(out.Pix, c.R, c.G, c.B)
			if ch == 4 {
				out.Pix = append(out.Pix, c.A)
			}
		}
	}
	return out
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// NRGBA returns the image as an *image.NRGBA.
func (img *Image) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	ch := img.Format.Channels()
	for i, j := 0, 0; i+ch <= len(img.Pix); i, j = i+ch, j+4 {
		out.Pix[j], out.Pix[j+1], out.Pix[j+2] = img.Pix[i], img.Pix[i+1], img.Pix[i+2]
		out.Pix[j+3] = 255
		if ch == 4 {
			out.Pix[j+3] = img.Pix[i+3]
		}
	}
	return out
}

// TooSmall reports whether either edge is below MinSize.
func (img *Image) TooSmall() bool {
	return img.Width < MinSize || img.Height < MinSize
}

// Scale resamples the image to w x h with bilinear filtering.
func (img *Image) Scale(w, h int) *Image {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img.NRGBA(), image.Rect(0, 0, img.Width, img.Height), draw.Src, nil)
	out := FromImage(dst)
	if img.Format == FormatRGBA && out.Format == FormatRGB {
		out = withAlpha(out)
	}
	return out
}

func withAlpha(img *Image) *Image {
	out := &Image{Format: FormatRGBA, Width: img.Width, Height: img.Height,
		Pix: make([]byte, 0, img.Width*img.Height*4)}
	for i := 0; i+3 <= len(img.Pix); i += 3 {
		out.Pix = append(out.Pix, img.Pix[i], img.Pix[i+1], img.Pix[i+2], 255)
	}
	return out
}

// FlipRows returns a copy with the row order reversed, for APIs whose image
// origin is the bottom-left corner.
func (img *Image) FlipRows() *Image {
	stride := img.Width * img.Format.Channels()
	out := &Image{Format: img.Format, Width: img.Width, Height: img.Height, Pix: make([]byte, len(img.Pix))}
	for y := 0; y < img.Height; y++ {
		copy(out.Pix[y*stride:(y+1)*stride], img.Pix[(img.Height-1-y)*stride:(img.Height-y)*stride])
	}
	return out
}

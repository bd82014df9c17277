package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/bmp"
)

// makeTGA builds an uncompressed true-color TGA stored bottom row first.
// pixels are given top row first as RGBA.
func makeTGA(width, height int, bpp byte, pixels []color.NRGBA) []byte {
	buf := new(bytes.Buffer)
	hdr := make([]byte, 18)
	hdr[2] = 2 // uncompressed true-color
	hdr[12], hdr[13] = byte(width), byte(width>>8)
	hdr[14], hdr[15] = byte(height), byte(height>>8)
	hdr[16] = bpp
	if bpp == 32 {
		hdr[17] = 8 // alpha bits
	}
	buf.Write(hdr)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			buf.Write([]byte{p.B, p.G, p.R})
			if bpp == 32 {
				buf.WriteByte(p.A)
			}
		}
	}
	return buf.Bytes()
}

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	clear = color.NRGBA{0, 0, 0, 0}
)

func TestDecodeTGA(t *testing.T) {
	tests := []struct {
		name   string
		bpp    byte
		pixels []color.NRGBA
		want   Format
		pix    []byte
	}{
		{"24-bit", 24, []color.NRGBA{red, green, blue, red}, FormatRGB,
			[]byte{255, 0, 0, 0, 255, 0, 0, 0, 255, 255, 0, 0}},
		{"32-bit with alpha", 32, []color.NRGBA{red, clear, blue, green}, FormatRGBA,
			[]byte{255, 0, 0, 255, 0, 0, 0, 0, 0, 0, 255, 255, 0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Decode(makeTGA(2, 2, tt.bpp, tt.pixels), TypeTGA)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if img.Format != tt.want || img.Width != 2 || img.Height != 2 {
				t.Errorf("got %s %dx%d", img.Format, img.Width, img.Height)
			}
			if !bytes.Equal(img.Pix, tt.pix) {
				t.Errorf("pix = %v, want %v", img.Pix, tt.pix)
			}
		})
	}
}

func TestDecodeBMP(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, red)
	src.SetNRGBA(1, 0, green)
	src.SetNRGBA(2, 0, blue)
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	for _, typ := range []Type{TypeBMP, TypeUnknown} {
		img, err := Decode(buf.Bytes(), typ)
		if err != nil {
			t.Fatalf("%s: Decode failed: %v", typ, err)
		}
		if img.Format != FormatRGB || img.Width != 3 || img.Height != 1 {
			t.Errorf("%s: got %s %dx%d", typ, img.Format, img.Width, img.Height)
		}
		if !bytes.Equal(img.Pix, []byte{255, 0, 0, 0, 255, 0, 0, 0, 255}) {
			t.Errorf("%s: pix = %v", typ, img.Pix)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode([]byte("BMnot really"), TypeBMP); err == nil {
		t.Error("expected error for corrupt BMP")
	}
	if _, err := Decode(nil, TypeUnknown); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestGuessType(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"wood.tga", TypeTGA},
		{"maps/WALL.TGA", TypeTGA},
		{"sky.bmp", TypeBMP},
		{"photo.jpg", TypeUnknown},
		{"noext", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuessType(tt.name); got != tt.want {
				t.Errorf("GuessType(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestScale(t *testing.T) {
	img := &Image{Format: FormatRGB, Width: 2, Height: 2, Pix: bytes.Repeat([]byte{10, 20, 30}, 4)}
	if !img.TooSmall() {
		t.Fatal("2x2 should be too small")
	}

	scaled := img.Scale(MinSize, MinSize)
	if scaled.Width != MinSize || scaled.Height != MinSize || scaled.Format != FormatRGB {
		t.Fatalf("scaled to %s %dx%d", scaled.Format, scaled.Width, scaled.Height)
	}
	if len(scaled.Pix) != MinSize*MinSize*3 {
		t.Fatalf("pix length %d", len(scaled.Pix))
	}
	// A uniform image stays uniform.
	for i := 0; i < len(scaled.Pix); i += 3 {
		if scaled.Pix[i] != 10 || scaled.Pix[i+1] != 20 || scaled.Pix[i+2] != 30 {
			t.Fatalf("pixel %d = %v", i/3, scaled.Pix[i:i+3])
		}
	}
	if scaled.TooSmall() {
		t.Error("scaled image still too small")
	}

	rgba := &Image{Format: FormatRGBA, Width: 1, Height: 1, Pix: []byte{1, 2, 3, 255}}
	if got := rgba.Scale(4, 4); got.Format != FormatRGBA || len(got.Pix) != 64 {
		t.Errorf("RGBA scale lost alpha channel: %s, %d bytes", got.Format, len(got.Pix))
	}
}

func TestFlipRows(t *testing.T) {
	img := &Image{Format: FormatRGB, Width: 1, Height: 3, Pix: []byte{1, 1, 1, 2, 2, 2, 3, 3, 3}}
	got := img.FlipRows()
	if !bytes.Equal(got.Pix, []byte{3, 3, 3, 2, 2, 2, 1, 1, 1}) {
		t.Errorf("pix = %v", got.Pix)
	}
	if img.Pix[0] != 1 {
		t.Error("FlipRows modified its receiver")
	}
}

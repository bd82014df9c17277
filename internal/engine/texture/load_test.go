package texture

import (
	"errors"
	"image/color"
	"io/fs"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mapSource map[string][]byte

func (m mapSource) Load(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func solid(n int, c color.NRGBA) []color.NRGBA {
	px := make([]color.NRGBA, n)
	for i := range px {
		px[i] = c
	}
	return px
}

func TestLoad(t *testing.T) {
	src := mapSource{
		"big.tga":   makeTGA(64, 128, 24, solid(64*128, red)),
		"small.tga": makeTGA(4, 4, 24, solid(16, green)),
		"wall.dat":  makeTGA(64, 64, 24, solid(64*64, blue)),
	}

	tests := []struct {
		name        string
		file        string
		wantW       int
		wantH       int
		wantWarn    string
		wantMissing bool
	}{
		{name: "as is", file: "big.tga", wantW: 64, wantH: 128},
		{name: "scaled up", file: "small.tga", wantW: MinSize, wantH: MinSize, wantWarn: "texture smaller than minimum size, scaling up"},
		{name: "unknown extension", file: "wall.dat", wantW: 64, wantH: 64, wantWarn: "unknown texture type, probing decoders"},
		{name: "missing", file: "nope.tga", wantMissing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			img, err := Load(src, tt.file, zap.New(core))

			if tt.wantMissing {
				if !errors.Is(err, fs.ErrNotExist) {
					t.Fatalf("expected fs.ErrNotExist, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if img.Width != tt.wantW || img.Height != tt.wantH {
				t.Errorf("size %dx%d, want %dx%d", img.Width, img.Height, tt.wantW, tt.wantH)
			}
			if tt.wantWarn == "" {
				if logs.Len() != 0 {
					t.Errorf("unexpected warnings: %v", logs.All())
				}
				return
			}
			if logs.FilterMessage(tt.wantWarn).Len() != 1 {
				t.Errorf("expected warning %q, got %v", tt.wantWarn, logs.All())
			}
		})
	}
}

func TestLoadCorrupt(t *testing.T) {
	src := mapSource{"bad.bmp": []byte("not a bitmap")}
	if _, err := Load(src, "bad.bmp", nil); err == nil {
		t.Error("expected decode error")
	}
}

func TestPowerOfTwo(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{64, 64, true},
		{256, 64, true},
		{1, 1, true},
		{100, 64, false},
		{64, 0, false},
	}
	for _, tt := range tests {
		img := &Image{Width: tt.w, Height: tt.h}
		if got := img.PowerOfTwo(); got != tt.want {
			t.Errorf("%dx%d PowerOfTwo = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

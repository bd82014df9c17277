package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// Type identifies an image file format.
type Type int

// Image file types.
const (
	TypeUnknown Type = iota
	TypeTGA
	TypeBMP
)

func (t Type) String() string {
	switch t {
	case TypeTGA:
		return "tga"
	case TypeBMP:
		return "bmp"
	}
	return "unknown"
}

// ErrUnsupported is returned when no decoder accepts the data.
var ErrUnsupported = errors.New("unsupported image format")

type decodeFunc func(data []byte) (image.Image, error)

var decoders = map[Type]decodeFunc{
	TypeTGA: func(data []byte) (image.Image, error) { return tga.Decode(bytes.NewReader(data)) },
	TypeBMP: func(data []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(data)) },
}

// GuessType guesses the file type from the file name's extension.
func GuessType(name string) Type {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tga":
		return TypeTGA
	case ".bmp":
		return TypeBMP
	}
	return TypeUnknown
}

// Decode decodes data as the given type. TypeUnknown tries every decoder,
// starting with the formats that carry a signature.
func Decode(data []byte, t Type) (*Image, error) {
	if t != TypeUnknown {
		img, err := decoders[t](data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", t, err)
		}
		return FromImage(img), nil
	}
	for _, t := range []Type{TypeBMP, TypeTGA} {
		if img, err := decoders[t](data); err == nil {
			return FromImage(img), nil
		}
	}
	return nil, ErrUnsupported
}

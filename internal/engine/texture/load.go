package texture

import (
	"fmt"
	"math/bits"

	"go.uber.org/zap"
)

// Source supplies raw image file contents by name.
type Source interface {
	Load(name string) ([]byte, error)
}

// Load reads and decodes name from src. Images smaller than MinSize on
// either edge are scaled up to MinSize x MinSize. Rows stay top to bottom.
func Load(src Source, name string, log *zap.Logger) (*Image, error) {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := src.Load(name)
	if err != nil {
		return nil, fmt.Errorf("reading texture %s: %w", name, err)
	}

	t := GuessType(name)
	if t == TypeUnknown {
		log.Warn("unknown texture type, probing decoders", zap.String("file", name))
	}

	img, err := Decode(data, t)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}

	if img.TooSmall() {
		log.Warn("texture smaller than minimum size, scaling up",
			zap.String("file", name),
			zap.Int("width", img.Width),
			zap.Int("height", img.Height),
			zap.Int("min", MinSize),
		)
		img = img.Scale(MinSize, MinSize)
	}
	return img, nil
}

// PowerOfTwo reports whether both edges are powers of two.
func (img *Image) PowerOfTwo() bool {
	return isPowerOfTwo(img.Width) && isPowerOfTwo(img.Height)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && bits.OnesCount(uint(n)) == 1
}

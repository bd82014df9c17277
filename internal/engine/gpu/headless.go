// Package gpu provides a headless graphics device. It decodes textures and
// tracks buffer handles the way the GL renderer does, without a GL context,
// so models can be loaded and inspected from tools and tests.
package gpu

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/demo3ds/internal/engine/texture"
)

// ErrEmptyBuffer is returned when uploading a zero-length array.
var ErrEmptyBuffer = errors.New("empty buffer")

// TextureInfo describes a texture held by the device.
type TextureInfo struct {
	Name    string
	Width   int
	Height  int
	Format  texture.Format
	Mipmaps bool
}

// Headless implements the scene's texture and buffer interfaces in memory.
// Handles start at 1 and are never reused.
type Headless struct {
	mu       sync.Mutex
	src      texture.Source
	log      *zap.Logger
	next     uint32
	textures map[uint32]TextureInfo
	buffers  map[uint32]int
}

// NewHeadless creates a device reading texture files from src.
func NewHeadless(src texture.Source, log *zap.Logger) *Headless {
	if log == nil {
		log = zap.NewNop()
	}
	return &Headless{
		src:      src,
		log:      log,
		textures: make(map[uint32]TextureInfo),
		buffers:  make(map[uint32]int),
	}
}

func (d *Headless) handle() uint32 {
	d.next++
	return d.next
}

// LoadTexture decodes name and returns a new texture handle.
func (d *Headless) LoadTexture(name string, mipmaps bool) (uint32, error) {
	img, err := texture.Load(d.src, name, d.log)
	if err != nil {
		return 0, err
	}
	if !img.PowerOfTwo() {
		d.log.Warn("texture size is not a power of two",
			zap.String("file", name), zap.Int("width", img.Width), zap.Int("height", img.Height))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.textures[h] = TextureInfo{
		Name:    name,
		Width:   img.Width,
		Height:  img.Height,
		Format:  img.Format,
		Mipmaps: mipmaps,
	}
	d.log.Debug("texture loaded", zap.String("file", name), zap.Uint32("handle", h))
	return h, nil
}

// DeleteTexture releases a texture handle. Unknown handles are ignored.
func (d *Headless) DeleteTexture(h uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.textures, h)
}

// UploadBuffer stores the element count of data under a new handle.
func (d *Headless) UploadBuffer(data []float32) (uint32, error) {
	if len(data) == 0 {
		return 0, ErrEmptyBuffer
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.buffers[h] = len(data)
	return h, nil
}

// DeleteBuffer releases a buffer handle. Unknown handles are ignored.
func (d *Headless) DeleteBuffer(h uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.buffers, h)
}

// Texture returns the texture stored under h.
func (d *Headless) Texture(h uint32) (TextureInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, ok := d.textures[h]
	return info, ok
}

// BufferLen returns the number of floats stored under h.
func (d *Headless) BufferLen(h uint32) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.buffers[h]
	return n, ok
}

// Stats returns the number of live textures and buffers.
func (d *Headless) Stats() (textures, buffers int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures), len(d.buffers)
}

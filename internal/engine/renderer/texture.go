package renderer

import (
	"errors"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/demo3ds/internal/engine/texture"
)

// ErrEmptyBuffer is returned when uploading a zero-length array.
var ErrEmptyBuffer = errors.New("empty buffer")

// LoadTexture decodes name and uploads it as a 2D texture.
func (r *Renderer) LoadTexture(name string, mipmaps bool) (uint32, error) {
	img, err := texture.Load(r.src, name, r.log)
	if err != nil {
		return 0, err
	}
	if !img.PowerOfTwo() {
		r.log.Warn("texture size is not a power of two",
			zap.String("file", name), zap.Int("width", img.Width), zap.Int("height", img.Height))
	}
	// GL rows start at the bottom
	img = img.FlipRows()

	format := uint32(gl.RGB)
	if img.Format == texture.FormatRGBA {
		format = gl.RGBA
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	if mipmaps {
		gl.TexParameteri(gl.TEXTURE_2D, gl.GENERATE_MIPMAP, gl.TRUE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		if a := r.config.Anisotropy; r.caps.Anisotropic && a >= 1 {
			gl.TexParameterf(gl.TEXTURE_2D, textureMaxAnisotropy, min(a, r.caps.MaxAnisotropy))
		}
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}

	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format),
		int32(img.Width), int32(img.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("texture upload"); err != nil {
		gl.DeleteTextures(1, &tex)
		return 0, err
	}

	r.log.Debug("texture loaded",
		zap.String("file", name),
		zap.Uint32("texture", tex),
		zap.Stringer("format", img.Format),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Bool("mipmaps", mipmaps),
	)
	return tex, nil
}

// DeleteTexture releases a texture.
func (r *Renderer) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

// UploadBuffer copies data into a new static vertex buffer.
func (r *Renderer) UploadBuffer(data []float32) (uint32, error) {
	if len(data) == 0 {
		return 0, ErrEmptyBuffer
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := glError("buffer upload"); err != nil {
		gl.DeleteBuffers(1, &vbo)
		return 0, err
	}
	return vbo, nil
}

// DeleteBuffer releases a vertex buffer.
func (r *Renderer) DeleteBuffer(vbo uint32) {
	gl.DeleteBuffers(1, &vbo)
}

// Package renderer draws scene meshes with the OpenGL 2.1 fixed-function
// pipeline. It also implements the scene's texture and buffer interfaces.
package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/demo3ds/internal/engine/scene"
	"github.com/Faultbox/demo3ds/internal/engine/texture"
	"github.com/Faultbox/demo3ds/pkg/math"
)

// EXT_texture_filter_anisotropic tokens, not exported by the 2.1 bindings.
const (
	textureMaxAnisotropy    = 0x84FE
	maxTextureMaxAnisotropy = 0x84FF
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	FOV      float32 // vertical, degrees
	NearClip float32
	FarClip  float32

	// Anisotropy is the requested filter level for mipmapped textures.
	// Values below 1 disable anisotropic filtering.
	Anisotropy float32
}

// Caps records optional driver features.
type Caps struct {
	Version       string
	Renderer      string
	Vendor        string
	Anisotropic   bool
	MaxAnisotropy float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger
	src    texture.Source
	caps   Caps
}

// New creates a new renderer reading texture files from src.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, src texture.Source, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config: cfg,
		log:    log,
		src:    src,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.caps = Caps{
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
	}
	extensions := gl.GoStr(gl.GetString(gl.EXTENSIONS))
	if strings.Contains(extensions, "GL_EXT_texture_filter_anisotropic") {
		r.caps.Anisotropic = true
		gl.GetFloatv(maxTextureMaxAnisotropy, &r.caps.MaxAnisotropy)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", r.caps.Version),
		zap.String("renderer", r.caps.Renderer),
		zap.String("vendor", r.caps.Vendor),
		zap.Bool("anisotropic", r.caps.Anisotropic),
		zap.Float32("max_anisotropy", r.caps.MaxAnisotropy),
	)

	r.setupState()
	r.Resize(cfg.Width, cfg.Height)

	if err := glError("setup"); err != nil {
		return nil, err
	}
	return r, nil
}

// Caps returns the detected driver features.
func (r *Renderer) Caps() Caps {
	return r.caps
}

func (r *Renderer) setupState() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ShadeModel(gl.SMOOTH)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.Enable(gl.TEXTURE_2D)
	gl.ClearColor(0, 0, 0, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.EnableClientState(gl.NORMAL_ARRAY)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)

	// Ambient-only lighting; materials supply the color
	gl.Enable(gl.LIGHTING)
	ambient := [4]float32{1, 1, 1, 1}
	gl.LightModelfv(gl.LIGHT_MODEL_AMBIENT, &ambient[0])
	gl.LightModeli(gl.LIGHT_MODEL_LOCAL_VIEWER, gl.FALSE)
	gl.LightModeli(gl.LIGHT_MODEL_COLOR_CONTROL, gl.SINGLE_COLOR)

	r.applyMaterial(gl.FRONT_AND_BACK, scene.NewNullMaterial())
}

// Close releases renderer resources. Textures and buffers belong to the
// scene and are released through it.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
}

// Resize sets the viewport and projection for a window of the given size.
func (r *Renderer) Resize(width, height int) {
	if height == 0 {
		height = 1
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))

	proj := math.Perspective(r.config.FOV, float32(width)/float32(height), r.config.NearClip, r.config.FarClip)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(proj.Ptr())
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame viewed through view.
func (r *Renderer) Begin(view math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.LoadIdentity()
	gl.MultMatrixf(view.Ptr())
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.Flush()
	if err := glError("frame"); err != nil {
		r.log.Warn("GL error", zap.Error(err))
	}
}

// glError returns the pending GL error, if any.
func glError(op string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	return fmt.Errorf("%s: %s (0x%04X)", op, errorString(code), code)
}

func errorString(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.STACK_OVERFLOW:
		return "stack overflow"
	case gl.STACK_UNDERFLOW:
		return "stack underflow"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	}
	return "unknown error"
}

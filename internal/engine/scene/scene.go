// Package scene holds the in-memory model of loaded geometry: meshes, their
// submeshes and the shared materials they reference, together with the
// loader that builds them from 3DS model files.
//
// A Scene owns two pools. The mesh pool and the material pool both keep the
// most recently added entry first, and both are torn down only explicitly.
// A Scene is not safe for concurrent use.
package scene

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Load errors.
var (
	ErrOpen         = errors.New("model file unavailable")
	ErrFormat       = errors.New("not a 3DS model file")
	ErrCorruptModel = errors.New("corrupt model file")
)

// TextureLoader creates texture objects from image files. Handles are
// opaque to the scene; zero means no texture.
type TextureLoader interface {
	LoadTexture(name string, mipmaps bool) (uint32, error)
	DeleteTexture(handle uint32)
}

// BufferUploader copies vertex attribute arrays to the renderer. A scene
// without one keeps all geometry on the CPU.
type BufferUploader interface {
	UploadBuffer(data []float32) (uint32, error)
	DeleteBuffer(handle uint32)
}

// Opener opens model files by name.
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

type osOpener struct{}

func (osOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Config contains scene options.
type Config struct {
	Logger   *zap.Logger
	Files    Opener
	Textures TextureLoader
	Buffers  BufferUploader

	// Mipmaps requests mipmapped textures for material maps.
	Mipmaps bool
	// KeepCPUCopy keeps vertex arrays in memory after they are uploaded.
	KeepCPUCopy bool
	// NameEncoding decodes object and material names. Nil keeps raw bytes.
	NameEncoding encoding.Encoding
}

// DefaultConfig returns a configuration that reads from the file system and
// loads no textures.
func DefaultConfig() Config {
	return Config{
		Logger:  zap.NewNop(),
		Files:   osOpener{},
		Mipmaps: true,
	}
}

// Scene is the registry of loaded meshes and materials.
type Scene struct {
	config Config
	log    *zap.Logger

	meshes    []*Mesh // most recent first
	materials []*Material
}

// New creates an empty scene.
func New(cfg Config) *Scene {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Files == nil {
		cfg.Files = osOpener{}
	}
	return &Scene{
		config: cfg,
		log:    cfg.Logger,
	}
}

// Shutdown deletes every mesh, then every material.
func (s *Scene) Shutdown() {
	s.DeleteMeshPool()
	s.DeleteMaterialPool()
}

package scene

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/demo3ds/pkg/formats"
)

// Color is an RGBA color with components in [0,1].
type Color [4]float32

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// FaceBits selects the polygon faces a material applies to.
type FaceBits uint8

// Face selection bits.
const (
	FaceFront FaceBits = 1 << iota
	FaceBack
	FaceBoth = FaceFront | FaceBack
)

// TextureSlot is one of a material's texture bindings.
type TextureSlot struct {
	Present bool
	File    string // lower-cased map file name
	Handle  uint32 // zero if the texture could not be loaded
}

// Material is a named set of shading properties shared by submeshes.
type Material struct {
	Name      string
	Color     Color
	Ambient   Color
	Diffuse   Color
	Specular  Color
	Emission  Color
	Shininess float32
	FaceBits  FaceBits

	TexMap1 TextureSlot
	TexMap2 TextureSlot
	BumpMap TextureSlot
}

// NewNullMaterial returns an unregistered material with engine defaults.
func NewNullMaterial() *Material {
	return &Material{
		Color:     RGB(0, 0, 0),
		Ambient:   RGB(1, 1, 1),
		Diffuse:   RGB(1, 1, 1),
		Specular:  RGB(1, 1, 1),
		Emission:  RGB(0, 0, 0),
		Shininess: 40,
		FaceBits:  FaceBoth,
	}
}

// Slot returns the texture slot selected by a map chunk id, or nil.
func (m *Material) Slot(id formats.ChunkID) *TextureSlot {
	switch id {
	case formats.ChunkMatTexMap1:
		return &m.TexMap1
	case formats.ChunkMatTexMap2:
		return &m.TexMap2
	case formats.ChunkMatBumpMap:
		return &m.BumpMap
	}
	return nil
}

// colorField returns the color selected by a material color chunk id.
func (m *Material) colorField(id formats.ChunkID) *Color {
	switch id {
	case formats.ChunkMatAmbient:
		return &m.Ambient
	case formats.ChunkMatDiffuse:
		return &m.Diffuse
	case formats.ChunkMatSpecular:
		return &m.Specular
	}
	return nil
}

// AddMaterial links mat at the head of the material pool.
func (s *Scene) AddMaterial(mat *Material) {
	s.materials = slices.Insert(s.materials, 0, mat)
}

// Materials returns the material pool, most recent first.
func (s *Scene) Materials() []*Material {
	return s.materials
}

// GetMaterial returns the most recently added material with the given name,
// or nil.
func (s *Scene) GetMaterial(name string) *Material {
	return findMaterial(s.materials, name)
}

func findMaterial(pool []*Material, name string) *Material {
	if name == "" {
		return nil
	}
	for _, m := range pool {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// DeleteMaterial releases mat's textures and removes it from the pool.
// Submeshes referencing mat are not updated.
func (s *Scene) DeleteMaterial(mat *Material) {
	s.releaseTextures(mat)
	s.materials = slices.DeleteFunc(s.materials, func(x *Material) bool { return x == mat })
	s.log.Debug("material deleted", zap.String("name", mat.Name))
}

func (s *Scene) releaseTextures(mat *Material) {
	for _, slot := range []*TextureSlot{&mat.TexMap1, &mat.TexMap2, &mat.BumpMap} {
		if slot.Handle != 0 && s.config.Textures != nil {
			s.config.Textures.DeleteTexture(slot.Handle)
		}
		*slot = TextureSlot{}
	}
}

// DeleteMaterialPool deletes every material.
func (s *Scene) DeleteMaterialPool() {
	for len(s.materials) > 0 {
		s.DeleteMaterial(s.materials[0])
	}
}

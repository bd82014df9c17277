package scene

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/demo3ds/internal/engine/model"
	"github.com/Faultbox/demo3ds/pkg/formats"
	"github.com/Faultbox/demo3ds/pkg/math"
)

// LoadMesh loads a model file, choosing the loader by extension. A non-empty
// name replaces the mesh name taken from the file.
func (s *Scene) LoadMesh(path, name string) (*Mesh, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".3ds" {
		s.log.Warn("unknown mesh type, trying 3ds", zap.String("path", path), zap.String("ext", ext))
	}
	m, err := s.LoadModel(path)
	if err != nil {
		return nil, err
	}
	if name != "" {
		m.Name = name
		m.named = true
	}
	return m, nil
}

// LoadModel loads a 3DS model file into a new pooled mesh. On failure
// neither pool is changed.
func (s *Scene) LoadModel(path string) (*Mesh, error) {
	f, err := s.config.Files.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	m, err := s.LoadReader(bufio.NewReader(f), path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// LoadReader loads a model from r. source names the stream in log messages
// and errors.
func (s *Scene) LoadReader(r io.Reader, source string) (*Mesh, error) {
	p := &parser{
		scene:  s,
		cr:     formats.NewChunkReader(r),
		source: source,
		mesh:   newMesh(""),
	}
	p.cr.SetNameEncoding(s.config.NameEncoding)

	if err := p.run(); err != nil {
		p.abort()
		s.log.Warn("model load failed", zap.String("path", source), zap.Error(err))
		return nil, err
	}

	m := p.mesh
	if err := ComputeNormals(m); err != nil {
		p.abort()
		return nil, err
	}
	for i := len(p.staged) - 1; i >= 0; i-- {
		s.AddMaterial(p.staged[i])
	}
	s.linkMesh(m)
	s.PostProcess(m)

	s.log.Debug("model loaded",
		zap.String("path", source),
		zap.String("mesh", m.Name),
		zap.Int("submeshes", len(m.Submeshes)),
		zap.Int("materials", len(p.staged)),
		zap.Uint32("version", p.version))
	return m, nil
}

// parser carries the state of one model load.
type parser struct {
	scene  *Scene
	cr     *formats.ChunkReader
	source string

	mesh    *Mesh
	sub     *Submesh  // object being read
	mat     *Material // material being read
	slot    formats.ChunkID
	staged  []*Material // parsed materials, most recent first
	version uint32
}

func (p *parser) run() error {
	main, err := p.cr.ReadHeader()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFormat, p.source, err)
	}
	if main.ID != formats.ChunkMain {
		return fmt.Errorf("%w: %s: first chunk is %s", ErrFormat, p.source, main.ID)
	}
	if err := p.children(&main, p.process); err != nil {
		return p.corrupt(err)
	}
	return nil
}

func (p *parser) corrupt(err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCorruptModel, p.source, err)
}

// abort releases textures loaded for materials that will not be committed.
func (p *parser) abort() {
	for _, mat := range p.staged {
		p.scene.releaseTextures(mat)
	}
	if p.mat != nil {
		p.scene.releaseTextures(p.mat)
	}
}

// children processes c's sub-chunks with fn until c is consumed.
func (p *parser) children(c *formats.Chunk, fn func(*formats.Chunk) error) error {
	for !c.Done() {
		child, err := p.cr.ReadChild(c)
		if err != nil {
			return err
		}
		if err := fn(&child); err != nil {
			return err
		}
		if !child.Done() {
			if err := p.cr.Skip(&child); err != nil {
				return err
			}
		}
		if err := c.Absorb(child); err != nil {
			return err
		}
	}
	return nil
}

// process handles the geometry level of the chunk tree. Unhandled chunks
// are left for children to skip.
func (p *parser) process(c *formats.Chunk) error {
	switch c.ID {
	case formats.ChunkVersion:
		return p.readVersion(c)
	case formats.ChunkObjectInfo:
		return p.readObjectInfo(c)
	case formats.ChunkMaterial:
		return p.readMaterial(c)
	case formats.ChunkObject:
		return p.readObject(c)
	case formats.ChunkObjectMesh:
		if p.sub == nil {
			return nil
		}
		return p.children(c, p.process)
	case formats.ChunkObjectVertices:
		return p.readVertices(c)
	case formats.ChunkObjectFaces:
		return p.readFaces(c)
	case formats.ChunkObjectMaterial:
		return p.readFaceMaterial(c)
	case formats.ChunkObjectUV:
		return p.readTexCoords(c)
	case formats.ChunkEditKeyframe:
		p.scene.log.Debug("skipping keyframe data", zap.Uint32("bytes", c.Remaining()))
		return nil
	default:
		return nil
	}
}

func (p *parser) readVersion(c *formats.Chunk) error {
	v, err := p.cr.ReadUint32(c)
	if err != nil {
		return err
	}
	p.version = v
	if v > formats.MaxVersion {
		p.scene.log.Warn("model file version newer than supported, loading anyway",
			zap.String("path", p.source),
			zap.Uint32("version", v),
			zap.Int("max", formats.MaxVersion))
	}
	return nil
}

// readObjectInfo skips the leading mesh version chunk and descends into the
// materials and objects.
func (p *parser) readObjectInfo(c *formats.Chunk) error {
	first := true
	return p.children(c, func(child *formats.Chunk) error {
		if first && child.ID == formats.ChunkMeshFileVersion {
			first = false
			return nil
		}
		first = false
		return p.process(child)
	})
}

func (p *parser) readMaterial(c *formats.Chunk) error {
	p.mat = NewNullMaterial()
	if err := p.children(c, p.processMaterial); err != nil {
		return err
	}
	p.staged = append([]*Material{p.mat}, p.staged...)
	p.mat = nil
	return nil
}

// processMaterial handles the sub-chunks of a material block.
func (p *parser) processMaterial(c *formats.Chunk) error {
	switch {
	case c.ID == formats.ChunkMatName:
		name, err := p.cr.ReadFixedString(c)
		if err != nil {
			return err
		}
		p.mat.Name = name
	case c.ID.IsColor():
		return p.readColor(c, p.mat.colorField(c.ID))
	case c.ID.IsMapSlot():
		prev := p.slot
		p.slot = c.ID
		err := p.children(c, p.processMaterial)
		p.slot = prev
		return err
	case c.ID == formats.ChunkMatMapFile:
		return p.readMapFile(c)
	}
	return nil
}

// readColor reads the first color sub-chunk of c into dst.
func (p *parser) readColor(c *formats.Chunk, dst *Color) error {
	sub, err := p.cr.ReadChild(c)
	if err != nil {
		return err
	}
	switch sub.ID {
	case formats.ChunkColorFloat:
		var rgb [3]float32
		if err := p.cr.ReadData(&sub, &rgb); err != nil {
			return err
		}
		*dst = RGB(rgb[0], rgb[1], rgb[2])
	case formats.ChunkColorRGB24, formats.ChunkColorLinRGB24:
		var rgb [3]byte
		if err := p.cr.ReadData(&sub, &rgb); err != nil {
			return err
		}
		*dst = RGB(float32(rgb[0])/255, float32(rgb[1])/255, float32(rgb[2])/255)
	default:
		p.scene.log.Debug("skipping non-color sub-chunk",
			zap.Stringer("chunk", c.ID),
			zap.Stringer("sub", sub.ID))
	}
	if err := p.cr.Skip(&sub); err != nil {
		return err
	}
	return c.Absorb(sub)
}

func (p *parser) readMapFile(c *formats.Chunk) error {
	file, err := p.cr.ReadFixedString(c)
	if err != nil {
		return err
	}
	slot := p.mat.Slot(p.slot)
	if slot == nil {
		return nil
	}
	if slot.Handle != 0 && p.scene.config.Textures != nil {
		p.scene.config.Textures.DeleteTexture(slot.Handle)
	}
	file = strings.ToLower(file)
	*slot = TextureSlot{Present: true, File: file}

	tex := p.scene.config.Textures
	if tex == nil {
		return nil
	}
	h, err := tex.LoadTexture(file, p.scene.config.Mipmaps)
	if err != nil {
		p.scene.log.Warn("texture load failed",
			zap.String("material", p.mat.Name),
			zap.String("file", file),
			zap.Error(err))
		return nil
	}
	slot.Handle = h
	return nil
}

func (p *parser) readObject(c *formats.Chunk) error {
	name, err := p.cr.ReadString(c)
	if err != nil {
		return err
	}
	p.sub = &Submesh{Name: name}
	addSubmesh(p.mesh, p.sub)

	if err := p.children(c, p.process); err != nil {
		return err
	}
	if err := model.ValidateFaces(p.sub.Faces, len(p.sub.Vertices)); err != nil {
		return fmt.Errorf("object %q: %w", name, err)
	}
	p.sub = nil
	return nil
}

func (p *parser) readVertices(c *formats.Chunk) error {
	if p.sub == nil {
		return nil
	}
	count, err := p.cr.ReadUint16(c)
	if err != nil {
		return err
	}
	raw := make([]float32, int(count)*3)
	if err := p.cr.ReadData(c, raw); err != nil {
		return err
	}
	verts := make([]math.Vec3, count)
	for i := range verts {
		x, y, z := raw[i*3], raw[i*3+1], raw[i*3+2]
		verts[i] = math.Vec3{X: x, Y: z, Z: -y}
	}
	p.sub.Vertices = verts
	return nil
}

func (p *parser) readFaces(c *formats.Chunk) error {
	if p.sub == nil {
		return nil
	}
	count, err := p.cr.ReadUint16(c)
	if err != nil {
		return err
	}
	raw := make([]uint16, int(count)*4)
	if err := p.cr.ReadData(c, raw); err != nil {
		return err
	}
	faces := make([]model.Face, count)
	for i := range faces {
		// The fourth word holds edge visibility flags.
		faces[i].VertexIndex = [3]uint32{uint32(raw[i*4]), uint32(raw[i*4+1]), uint32(raw[i*4+2])}
	}
	p.sub.Faces = faces
	return p.children(c, p.process)
}

func (p *parser) readFaceMaterial(c *formats.Chunk) error {
	if p.sub == nil {
		return nil
	}
	name, err := p.cr.ReadString(c)
	if err != nil {
		return err
	}
	mat := findMaterial(p.staged, name)
	if mat == nil {
		mat = p.scene.GetMaterial(name)
	}
	if mat == nil {
		p.scene.log.Warn("material not found",
			zap.String("path", p.source),
			zap.String("object", p.sub.Name),
			zap.String("material", name))
	}
	p.sub.Material = mat
	return nil
}

func (p *parser) readTexCoords(c *formats.Chunk) error {
	if p.sub == nil {
		return nil
	}
	count, err := p.cr.ReadUint16(c)
	if err != nil {
		return err
	}
	raw := make([]float32, int(count)*2)
	if err := p.cr.ReadData(c, raw); err != nil {
		return err
	}
	uvs := make([]math.Vec2, count)
	for i := range uvs {
		uvs[i] = math.Vec2{X: raw[i*2], Y: raw[i*2+1]}
	}
	p.sub.TexCoords = uvs
	return nil
}

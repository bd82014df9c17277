package scene

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/demo3ds/internal/engine/model"
	"github.com/Faultbox/demo3ds/pkg/math"
)

// Mesh is a named top-level object made of submeshes.
type Mesh struct {
	ID   uuid.UUID
	Name string

	// Submeshes, most recently added first.
	Submeshes []*Submesh

	named bool
}

// Submesh is one indexed triangle list with its own vertex arrays.
type Submesh struct {
	MeshID uuid.UUID
	Name   string

	Vertices  []math.Vec3
	Faces     []model.Face
	TexCoords []math.Vec2
	Normals   []math.Vec3 // one per vertex after ComputeNormals

	// Material is shared with other submeshes and never owned. Nil means
	// draw without material binding.
	Material *Material

	// Buffer handles assigned by PostProcess; zero when not uploaded.
	VertexBuffer   uint32
	NormalBuffer   uint32
	TexCoordBuffer uint32

	vertexCount   int
	texCoordCount int
}

// NumVertices returns the vertex count, including after the CPU copy was
// released.
func (sm *Submesh) NumVertices() int {
	if sm.Vertices != nil {
		return len(sm.Vertices)
	}
	return sm.vertexCount
}

// NumTexCoords returns the texture coordinate count, including after the CPU
// copy was released.
func (sm *Submesh) NumTexCoords() int {
	if sm.TexCoords != nil {
		return len(sm.TexCoords)
	}
	return sm.texCoordCount
}

// Indices flattens the face list into a triangle index array.
func (sm *Submesh) Indices() []uint32 {
	idx := make([]uint32, 0, len(sm.Faces)*3)
	for _, f := range sm.Faces {
		idx = append(idx, f.VertexIndex[:]...)
	}
	return idx
}

// HasName reports whether the mesh has been named, either explicitly or from
// its first submesh. The name itself may be empty.
func (m *Mesh) HasName() bool {
	return m.named
}

// GetSubmesh returns the submesh with the given name, or nil.
func (m *Mesh) GetSubmesh(name string) *Submesh {
	if name == "" {
		return nil
	}
	for _, sm := range m.Submeshes {
		if sm.Name == name {
			return sm
		}
	}
	return nil
}

func newMesh(name string) *Mesh {
	return &Mesh{ID: uuid.New(), Name: name, named: name != ""}
}

// CreateMesh creates a mesh and adds it to the pool. An empty name leaves
// the mesh unnamed until a submesh is added.
func (s *Scene) CreateMesh(name string) *Mesh {
	m := newMesh(name)
	s.linkMesh(m)
	return m
}

func (s *Scene) linkMesh(m *Mesh) {
	s.meshes = slices.Insert(s.meshes, 0, m)
	s.log.Debug("mesh created", zap.String("name", m.Name), zap.Stringer("id", m.ID))
}

// AddSubmesh links sm at the head of m's submesh list. An unnamed mesh takes
// the submesh's name.
func (s *Scene) AddSubmesh(m *Mesh, sm *Submesh) {
	addSubmesh(m, sm)
}

func addSubmesh(m *Mesh, sm *Submesh) {
	sm.MeshID = m.ID
	m.Submeshes = slices.Insert(m.Submeshes, 0, sm)
	if !m.named {
		m.Name = sm.Name
		m.named = true
	}
}

// Meshes returns the mesh pool, most recent first.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// GetMesh returns the most recently added mesh with the given name, or nil.
func (s *Scene) GetMesh(name string) *Mesh {
	if name == "" {
		return nil
	}
	for _, m := range s.meshes {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MeshByID returns the pooled mesh with the given id, or nil.
func (s *Scene) MeshByID(id uuid.UUID) *Mesh {
	for _, m := range s.meshes {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// GetSubmesh searches the named mesh for the named submesh.
func (s *Scene) GetSubmesh(meshName, submeshName string) *Submesh {
	m := s.GetMesh(meshName)
	if m == nil {
		return nil
	}
	return m.GetSubmesh(submeshName)
}

// DeleteSubmesh unlinks sm from its mesh and releases its arrays and
// buffers. The referenced material is left alone.
func (s *Scene) DeleteSubmesh(sm *Submesh) {
	if m := s.MeshByID(sm.MeshID); m != nil {
		m.Submeshes = slices.DeleteFunc(m.Submeshes, func(x *Submesh) bool { return x == sm })
	}
	s.releaseSubmesh(sm)
}

func (s *Scene) releaseSubmesh(sm *Submesh) {
	if s.config.Buffers != nil {
		for _, h := range []uint32{sm.VertexBuffer, sm.NormalBuffer, sm.TexCoordBuffer} {
			if h != 0 {
				s.config.Buffers.DeleteBuffer(h)
			}
		}
	}
	sm.VertexBuffer, sm.NormalBuffer, sm.TexCoordBuffer = 0, 0, 0
	sm.Vertices, sm.Faces, sm.TexCoords, sm.Normals = nil, nil, nil, nil
	sm.vertexCount, sm.texCoordCount = 0, 0
	sm.Material = nil
	sm.MeshID = uuid.Nil
}

// DeleteMesh deletes all of m's submeshes and removes m from the pool.
func (s *Scene) DeleteMesh(m *Mesh) {
	for _, sm := range m.Submeshes {
		s.releaseSubmesh(sm)
	}
	m.Submeshes = nil
	s.meshes = slices.DeleteFunc(s.meshes, func(x *Mesh) bool { return x == m })
	s.log.Debug("mesh deleted", zap.String("name", m.Name))
}

// DeleteMeshPool deletes every mesh.
func (s *Scene) DeleteMeshPool() {
	for len(s.meshes) > 0 {
		s.DeleteMesh(s.meshes[0])
	}
}

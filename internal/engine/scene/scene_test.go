package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/Faultbox/demo3ds/internal/engine/model"
	"github.com/Faultbox/demo3ds/pkg/math"
)

func TestNewNullMaterial(t *testing.T) {
	m := NewNullMaterial()

	if m.Color != (Color{0, 0, 0, 1}) {
		t.Errorf("color = %v, want black", m.Color)
	}
	for _, c := range []Color{m.Ambient, m.Diffuse, m.Specular} {
		if c != (Color{1, 1, 1, 1}) {
			t.Errorf("expected white, got %v", c)
		}
	}
	if m.Emission != (Color{0, 0, 0, 1}) {
		t.Errorf("emission = %v, want black", m.Emission)
	}
	if m.Shininess != 40 {
		t.Errorf("shininess = %f, want 40", m.Shininess)
	}
	if m.FaceBits != FaceFront|FaceBack {
		t.Errorf("face bits = %d, want front and back", m.FaceBits)
	}
	if m.TexMap1.Present || m.TexMap2.Present || m.BumpMap.Present {
		t.Error("null material has textures")
	}
}

func TestMeshPool(t *testing.T) {
	s := New(DefaultConfig())

	a := s.CreateMesh("a")
	b := s.CreateMesh("b")

	if got := s.Meshes(); len(got) != 2 || got[0] != b || got[1] != a {
		t.Fatalf("pool order = %v, want most recent first", got)
	}
	if s.GetMesh("a") != a || s.GetMesh("b") != b {
		t.Error("GetMesh returned wrong mesh")
	}
	if s.GetMesh("") != nil {
		t.Error("empty key must not match")
	}
	if s.GetMesh("missing") != nil {
		t.Error("missing name must return nil")
	}
	if s.MeshByID(a.ID) != a {
		t.Error("MeshByID returned wrong mesh")
	}

	s.DeleteMesh(a)
	if s.GetMesh("a") != nil || len(s.Meshes()) != 1 {
		t.Error("deleted mesh still pooled")
	}
	s.DeleteMeshPool()
	if len(s.Meshes()) != 0 {
		t.Error("pool not empty after DeleteMeshPool")
	}
}

func TestAddSubmesh_NameBackfill(t *testing.T) {
	tests := []struct {
		name      string
		meshName  string
		submeshes []string
		want      string
	}{
		{"unnamed takes first", "", []string{"first", "second"}, "first"},
		{"explicit name kept", "mesh", []string{"first"}, "mesh"},
		{"empty first submesh", "", []string{"", "second"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(DefaultConfig())
			m := s.CreateMesh(tt.meshName)
			for _, n := range tt.submeshes {
				s.AddSubmesh(m, &Submesh{Name: n})
			}
			if m.Name != tt.want {
				t.Errorf("mesh name = %q, want %q", m.Name, tt.want)
			}
			if !m.HasName() {
				t.Error("mesh should be named")
			}
			last := tt.submeshes[len(tt.submeshes)-1]
			if m.Submeshes[0].Name != last {
				t.Errorf("head submesh = %q, want %q", m.Submeshes[0].Name, last)
			}
		})
	}
}

func TestGetSubmesh(t *testing.T) {
	s := New(DefaultConfig())
	m := s.CreateMesh("m")
	sm := &Submesh{Name: "part"}
	s.AddSubmesh(m, sm)

	if sm.MeshID != m.ID {
		t.Error("submesh not linked to its mesh")
	}
	if m.GetSubmesh("part") != sm || s.GetSubmesh("m", "part") != sm {
		t.Error("GetSubmesh failed")
	}
	if m.GetSubmesh("") != nil || s.GetSubmesh("m", "nope") != nil || s.GetSubmesh("x", "part") != nil {
		t.Error("lookup should miss")
	}
}

func TestComputeNormals_BadFaceIndex(t *testing.T) {
	m := newMesh("hand")
	good := &Submesh{
		Name:     "good",
		Vertices: []math.Vec3{{X: 0}, {X: 1}, {Y: 1}},
		Faces:    []model.Face{{VertexIndex: [3]uint32{0, 1, 2}}},
	}
	bad := &Submesh{
		Name:     "bad",
		Vertices: []math.Vec3{{X: 0}, {X: 1}, {Y: 1}},
		Faces:    []model.Face{{VertexIndex: [3]uint32{0, 1, 7}}},
	}
	addSubmesh(m, good)
	addSubmesh(m, bad)

	err := ComputeNormals(m)
	if !errors.Is(err, ErrCorruptModel) {
		t.Fatalf("expected ErrCorruptModel, got %v", err)
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("error does not name the submesh: %v", err)
	}
	if bad.Normals != nil {
		t.Error("bad submesh got normals")
	}
	if len(good.Normals) != 3 {
		t.Errorf("good submesh has %d normals, want 3", len(good.Normals))
	}
	if err := ComputeNormals(newMesh("empty")); err != nil {
		t.Errorf("empty mesh: %v", err)
	}
}

func TestDeleteSubmesh_KeepsMaterial(t *testing.T) {
	s := New(DefaultConfig())
	mat := NewNullMaterial()
	mat.Name = "shared"
	s.AddMaterial(mat)

	m := s.CreateMesh("m")
	one := &Submesh{Name: "one", Material: mat, Vertices: []math.Vec3{{}}, Faces: []model.Face{{}}}
	two := &Submesh{Name: "two", Material: mat}
	s.AddSubmesh(m, one)
	s.AddSubmesh(m, two)

	s.DeleteSubmesh(one)

	if len(m.Submeshes) != 1 || m.Submeshes[0] != two {
		t.Fatalf("submeshes = %v", m.Submeshes)
	}
	if one.Vertices != nil || one.Faces != nil {
		t.Error("deleted submesh kept its arrays")
	}
	if two.Material != mat || s.GetMaterial("shared") != mat {
		t.Error("material lost after submesh deletion")
	}
}

func TestMaterialPool(t *testing.T) {
	tex := newFakeTextures()
	cfg := DefaultConfig()
	cfg.Textures = tex
	s := New(cfg)

	older := NewNullMaterial()
	older.Name = "dup"
	newer := NewNullMaterial()
	newer.Name = "dup"
	newer.TexMap1 = TextureSlot{Present: true, File: "a.tga", Handle: 7}
	s.AddMaterial(older)
	s.AddMaterial(newer)

	if s.GetMaterial("dup") != newer {
		t.Error("lookup should find the most recent material")
	}
	if s.GetMaterial("") != nil {
		t.Error("empty key must not match")
	}

	s.DeleteMaterial(newer)
	if len(tex.deleted) != 1 || tex.deleted[0] != 7 {
		t.Errorf("deleted textures = %v, want [7]", tex.deleted)
	}
	if s.GetMaterial("dup") != older {
		t.Error("older material should remain")
	}

	s.DeleteMaterialPool()
	if len(s.Materials()) != 0 {
		t.Error("material pool not empty")
	}
}

func TestShutdown(t *testing.T) {
	buf := newFakeBuffers()
	tex := newFakeTextures()
	cfg := DefaultConfig()
	cfg.Buffers = buf
	cfg.Textures = tex
	s := New(cfg)

	mat := NewNullMaterial()
	mat.BumpMap = TextureSlot{Present: true, Handle: 3}
	s.AddMaterial(mat)
	m := s.CreateMesh("m")
	s.AddSubmesh(m, &Submesh{Name: "sm", VertexBuffer: 11, NormalBuffer: 12, Material: mat})

	s.Shutdown()

	if len(s.Meshes()) != 0 || len(s.Materials()) != 0 {
		t.Error("pools not empty after shutdown")
	}
	if len(buf.deleted) != 2 {
		t.Errorf("deleted buffers = %v, want 2", buf.deleted)
	}
	if len(tex.deleted) != 1 || tex.deleted[0] != 3 {
		t.Errorf("deleted textures = %v, want [3]", tex.deleted)
	}
}

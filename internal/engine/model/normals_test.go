package model

import (
	"testing"

	"github.com/Faultbox/demo3ds/pkg/formats"
	"github.com/Faultbox/demo3ds/pkg/math"
	"github.com/chewxy/math32"
)

func cube() ([]math.Vec3, []Face) {
	verts := make([]math.Vec3, len(formats.CubeVertices))
	for i, v := range formats.CubeVertices {
		verts[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	faces := make([]Face, len(formats.CubeFaces))
	for i, f := range formats.CubeFaces {
		faces[i] = Face{VertexIndex: [3]uint32{uint32(f[0]), uint32(f[1]), uint32(f[2])}}
	}
	return verts, faces
}

func TestFaceNormals_Winding(t *testing.T) {
	// Counter-clockwise seen from +Z.
	verts := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	faces := []Face{{VertexIndex: [3]uint32{0, 1, 2}}}

	fn := FaceNormals(verts, faces)
	if fn[0].Raw != (math.Vec3{X: 0, Y: 0, Z: -1}) {
		t.Errorf("raw normal = %+v, want (0,0,-1)", fn[0].Raw)
	}

	vn := VertexNormals(verts, faces)
	for i, n := range vn {
		if n != (math.Vec3{X: 0, Y: 0, Z: 1}) {
			t.Errorf("vertex %d normal = %+v, want (0,0,1)", i, n)
		}
	}
}

func TestVertexNormals_CubeOutward(t *testing.T) {
	verts, faces := cube()
	normals := VertexNormals(verts, faces)
	centroid := ComputeBounds(verts).Center()

	if len(normals) != len(verts) {
		t.Fatalf("expected %d normals, got %d", len(verts), len(normals))
	}
	for i, n := range normals {
		if d := math32.Abs(n.Length() - 1); d > 1e-5 {
			t.Errorf("vertex %d: normal length %f not unit", i, n.Length())
		}
		if dot := n.Dot(verts[i].Sub(centroid)); dot <= 0 {
			t.Errorf("vertex %d: normal %+v points inward (dot %f)", i, n, dot)
		}
	}
}

func TestVertexNormals_Unreferenced(t *testing.T) {
	verts := []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 5, Y: 5, Z: 5}}
	faces := []Face{{VertexIndex: [3]uint32{0, 1, 2}}}

	normals := VertexNormals(verts, faces)
	if !normals[3].IsZero() {
		t.Errorf("unreferenced vertex normal = %+v, want zero", normals[3])
	}
	for i := 0; i < 3; i++ {
		if normals[i].IsZero() {
			t.Errorf("vertex %d has no normal", i)
		}
	}
}

func TestVertexNormals_Empty(t *testing.T) {
	if n := VertexNormals(nil, nil); len(n) != 0 {
		t.Errorf("expected no normals, got %d", len(n))
	}
}

func TestValidateFaces(t *testing.T) {
	tests := []struct {
		name    string
		faces   []Face
		wantErr bool
	}{
		{"valid", []Face{{VertexIndex: [3]uint32{0, 1, 2}}}, false},
		{"last index", []Face{{VertexIndex: [3]uint32{3, 3, 3}}}, false},
		{"out of range", []Face{{VertexIndex: [3]uint32{0, 1, 2}}, {VertexIndex: [3]uint32{0, 4, 2}}}, true},
		{"no faces", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFaces(tt.faces, 4)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFaces() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeBounds(t *testing.T) {
	verts, _ := cube()
	b := ComputeBounds(verts)
	if b.Min != (math.Vec3{X: -1, Y: -1, Z: -1}) || b.Max != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("bounds = %+v", b)
	}
	if b.Size() != (math.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("size = %+v", b.Size())
	}
	if (ComputeBounds(nil) != Bounds{}) {
		t.Error("empty bounds not zero")
	}
}

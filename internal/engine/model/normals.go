package model

import (
	"fmt"

	"github.com/Faultbox/demo3ds/pkg/math"
)

// FaceNormals computes the normal of each face as (v0 - v2) x (v2 - v1).
// Faces must reference valid vertices (see ValidateFaces).
func FaceNormals(vertices []math.Vec3, faces []Face) []FaceNormal {
	normals := make([]FaceNormal, len(faces))
	for i, f := range faces {
		v0 := vertices[f.VertexIndex[0]]
		v1 := vertices[f.VertexIndex[1]]
		v2 := vertices[f.VertexIndex[2]]
		raw := v0.Sub(v2).Cross(v2.Sub(v1))
		normals[i] = FaceNormal{Raw: raw, Unit: raw.Normalize()}
	}
	return normals
}

// VertexNormals returns one smooth normal per vertex: the sum of the raw
// normals of every face referencing the vertex, divided by the negated
// reference count, then normalized. With the edge order of FaceNormals this
// points outward for faces wound counter-clockwise when seen from outside.
//
// A face referencing a vertex more than once counts once per corner.
// Vertices referenced by no face get the zero vector.
func VertexNormals(vertices []math.Vec3, faces []Face) []math.Vec3 {
	faceNormals := FaceNormals(vertices, faces)

	sums := make([]math.Vec3, len(vertices))
	shared := make([]int, len(vertices))
	for i, f := range faces {
		for _, idx := range f.VertexIndex {
			sums[idx] = sums[idx].Add(faceNormals[i].Raw)
			shared[idx]++
		}
	}

	normals := make([]math.Vec3, len(vertices))
	for i := range normals {
		if shared[i] == 0 {
			continue
		}
		normals[i] = sums[i].Div(-float32(shared[i])).Normalize()
	}
	return normals
}

// ValidateFaces reports the first face that references a vertex outside
// [0, numVertices).
func ValidateFaces(faces []Face, numVertices int) error {
	for i, f := range faces {
		for k, idx := range f.VertexIndex {
			if int(idx) >= numVertices {
				return fmt.Errorf("face %d corner %d: vertex index %d out of range [0,%d)",
					i, k, idx, numVertices)
			}
		}
	}
	return nil
}

// ComputeBounds returns the bounding box of vertices. An empty slice yields
// the zero box.
func ComputeBounds(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, v := range vertices[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, v.X), Y: min(b.Min.Y, v.Y), Z: min(b.Min.Z, v.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, v.X), Y: max(b.Max.Y, v.Y), Z: max(b.Max.Z, v.Z)}
	}
	return b
}

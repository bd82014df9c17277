// Package model provides geometry passes over triangle meshes: face and
// smooth vertex normals, index validation and bounding boxes.
package model

import "github.com/Faultbox/demo3ds/pkg/math"

// Face is a triangle stored as three indices into a vertex array.
type Face struct {
	VertexIndex [3]uint32
}

// FaceNormal holds the raw (unnormalized) and unit normal of a face.
type FaceNormal struct {
	Raw  math.Vec3
	Unit math.Vec3
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

package renderer

import (
	"github.com/go-gl/gl/v2.1/gl"

	"github.com/Faultbox/demo3ds/internal/engine/scene"
)

// glFace maps material face bits to a GL face. No bits means both faces.
func glFace(bits scene.FaceBits) uint32 {
	switch bits {
	case scene.FaceFront:
		return gl.FRONT
	case scene.FaceBack:
		return gl.BACK
	}
	return gl.FRONT_AND_BACK
}

// BindMaterial makes mat the current material and binds its first texture
// map. Without a loaded texture, texturing is unbound.
func (r *Renderer) BindMaterial(mat *scene.Material) {
	r.applyMaterial(glFace(mat.FaceBits), mat)
	gl.BindTexture(gl.TEXTURE_2D, mat.TexMap1.Handle)
}

func (r *Renderer) applyMaterial(face uint32, mat *scene.Material) {
	gl.Materialfv(face, gl.AMBIENT, &mat.Ambient[0])
	gl.Materialfv(face, gl.DIFFUSE, &mat.Diffuse[0])
	gl.Materialfv(face, gl.SPECULAR, &mat.Specular[0])
	gl.Materialfv(face, gl.EMISSION, &mat.Emission[0])
	gl.Materialf(face, gl.SHININESS, mat.Shininess)
	gl.Color4fv(&mat.Color[0])
}

// DrawMesh draws every submesh of m translated by offset.
func (r *Renderer) DrawMesh(m *scene.Mesh, offset [3]float32) {
	gl.PushMatrix()
	gl.Translatef(offset[0], offset[1], offset[2])
	for _, sm := range m.Submeshes {
		if sm.Material != nil {
			r.BindMaterial(sm.Material)
		}
		r.DrawSubmesh(sm)
	}
	gl.PopMatrix()
}

// DrawSubmesh draws sm from its vertex buffers, or from its CPU arrays when
// it was never uploaded.
func (r *Renderer) DrawSubmesh(sm *scene.Submesh) {
	if len(sm.Faces) == 0 {
		return
	}
	if sm.VertexBuffer == 0 {
		r.drawImmediate(sm)
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, sm.NormalBuffer)
	gl.NormalPointer(gl.FLOAT, 0, gl.PtrOffset(0))
	if sm.TexCoordBuffer != 0 {
		gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
		gl.BindBuffer(gl.ARRAY_BUFFER, sm.TexCoordBuffer)
		gl.TexCoordPointer(2, gl.FLOAT, 0, gl.PtrOffset(0))
	} else {
		gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, sm.VertexBuffer)
	gl.VertexPointer(3, gl.FLOAT, 0, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	idx := sm.Indices()
	gl.DrawElements(gl.TRIANGLES, int32(len(idx)), gl.UNSIGNED_INT, gl.Ptr(idx))

	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
}

// drawImmediate submits sm vertex by vertex from its CPU arrays.
func (r *Renderer) drawImmediate(sm *scene.Submesh) {
	hasNormals := len(sm.Normals) == len(sm.Vertices)
	hasUV := len(sm.TexCoords) == len(sm.Vertices)

	gl.Begin(gl.TRIANGLES)
	for _, f := range sm.Faces {
		for _, i := range f.VertexIndex {
			if hasNormals {
				n := sm.Normals[i]
				gl.Normal3f(n.X, n.Y, n.Z)
			}
			if hasUV {
				t := sm.TexCoords[i]
				gl.TexCoord2f(t.X, t.Y)
			}
			v := sm.Vertices[i]
			gl.Vertex3f(v.X, v.Y, v.Z)
		}
	}
	gl.End()
}

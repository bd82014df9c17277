package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/demo3ds/internal/engine/model"
	"github.com/Faultbox/demo3ds/pkg/math"
)

// ComputeNormals fills in the per-vertex normals of every submesh of m.
// Submeshes with a face index out of range keep no normals and are reported
// in the returned error.
func ComputeNormals(m *Mesh) error {
	var errs []error
	for _, sm := range m.Submeshes {
		if err := model.ValidateFaces(sm.Faces, len(sm.Vertices)); err != nil {
			sm.Normals = nil
			errs = append(errs, fmt.Errorf("%w: submesh %q: %w", ErrCorruptModel, sm.Name, err))
			continue
		}
		sm.Normals = model.VertexNormals(sm.Vertices, sm.Faces)
	}
	return errors.Join(errs...)
}

// PostProcess uploads each submesh's vertex, normal and texture coordinate
// arrays when the scene has a buffer uploader. CPU copies are released
// afterwards unless KeepCPUCopy is set. A failed upload keeps the submesh on
// the CPU.
func (s *Scene) PostProcess(m *Mesh) {
	up := s.config.Buffers
	if up == nil {
		return
	}
	for _, sm := range m.Submeshes {
		if err := s.upload(up, sm); err != nil {
			s.log.Warn("buffer upload failed, keeping CPU arrays",
				zap.String("mesh", m.Name),
				zap.String("submesh", sm.Name),
				zap.Error(err))
			continue
		}
		if s.config.KeepCPUCopy {
			continue
		}
		sm.vertexCount = len(sm.Vertices)
		sm.texCoordCount = len(sm.TexCoords)
		sm.Vertices, sm.Normals, sm.TexCoords = nil, nil, nil
	}
}

func (s *Scene) upload(up BufferUploader, sm *Submesh) error {
	var handles []uint32
	put := func(data []float32) (uint32, error) {
		if len(data) == 0 {
			return 0, nil
		}
		h, err := up.UploadBuffer(data)
		if err != nil {
			for _, old := range handles {
				up.DeleteBuffer(old)
			}
			return 0, err
		}
		handles = append(handles, h)
		return h, nil
	}

	vb, err := put(flatten3(sm.Vertices))
	if err != nil {
		return err
	}
	nb, err := put(flatten3(sm.Normals))
	if err != nil {
		return err
	}
	tb, err := put(flatten2(sm.TexCoords))
	if err != nil {
		return err
	}
	sm.VertexBuffer, sm.NormalBuffer, sm.TexCoordBuffer = vb, nb, tb
	return nil
}

func flatten3(vs []math.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

func flatten2(vs []math.Vec2) []float32 {
	out := make([]float32, 0, len(vs)*2)
	for _, v := range vs {
		out = append(out, v.X, v.Y)
	}
	return out
}

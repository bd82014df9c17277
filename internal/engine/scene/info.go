package scene

import (
	"fmt"
	"io"

	"github.com/Faultbox/demo3ds/internal/engine/model"
)

// PrintMeshInfo writes a summary of m and its submeshes to w.
func PrintMeshInfo(w io.Writer, m *Mesh) {
	fmt.Fprintf(w, "Mesh %q (%s): %d submeshes\n", m.Name, m.ID, len(m.Submeshes))
	for _, sm := range m.Submeshes {
		fmt.Fprintf(w, "  Submesh %q\n", sm.Name)
		fmt.Fprintf(w, "    vertices:  %d\n", sm.NumVertices())
		fmt.Fprintf(w, "    faces:     %d\n", len(sm.Faces))
		fmt.Fprintf(w, "    texcoords: %d\n", sm.NumTexCoords())
		if len(sm.Vertices) > 0 {
			b := model.ComputeBounds(sm.Vertices)
			fmt.Fprintf(w, "    bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
				b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		}
		if sm.VertexBuffer != 0 {
			fmt.Fprintf(w, "    buffers:   vertex=%d normal=%d texcoord=%d\n",
				sm.VertexBuffer, sm.NormalBuffer, sm.TexCoordBuffer)
		}
		if sm.Material != nil {
			fmt.Fprintf(w, "    material:  %q\n", sm.Material.Name)
		} else {
			fmt.Fprintf(w, "    material:  none\n")
		}
	}
}

// PrintMaterialInfo writes mat's properties to w.
func PrintMaterialInfo(w io.Writer, mat *Material) {
	fmt.Fprintf(w, "Material %q\n", mat.Name)
	fmt.Fprintf(w, "  ambient:   %s\n", formatColor(mat.Ambient))
	fmt.Fprintf(w, "  diffuse:   %s\n", formatColor(mat.Diffuse))
	fmt.Fprintf(w, "  specular:  %s\n", formatColor(mat.Specular))
	fmt.Fprintf(w, "  emission:  %s\n", formatColor(mat.Emission))
	fmt.Fprintf(w, "  shininess: %.1f\n", mat.Shininess)
	for _, s := range []struct {
		label string
		slot  TextureSlot
	}{
		{"texmap1", mat.TexMap1},
		{"texmap2", mat.TexMap2},
		{"bumpmap", mat.BumpMap},
	} {
		if s.slot.Present {
			fmt.Fprintf(w, "  %s:   %s (texture %d)\n", s.label, s.slot.File, s.slot.Handle)
		}
	}
}

func formatColor(c Color) string {
	return fmt.Sprintf("%.3f %.3f %.3f %.3f", c[0], c[1], c[2], c[3])
}

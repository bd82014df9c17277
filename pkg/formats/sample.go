package formats

// MaterialDesc describes a material block to encode.
type MaterialDesc struct {
	Name     string
	Ambient  *[3]byte
	Diffuse  *[3]byte
	Specular *[3]byte
	TexMap1  string
	TexMap2  string
	BumpMap  string
}

// ObjectDesc describes an object block to encode. Coordinates are in file
// space (Z up).
type ObjectDesc struct {
	Name     string
	Vertices [][3]float32
	Faces    [][3]uint16
	UVs      [][2]float32
	Material string // per-face material name, empty for none
}

// EncodeMaterial builds a MATERIAL block.
func EncodeMaterial(m MaterialDesc) *Block {
	b := NewBlock(ChunkMaterial, nil,
		NewBlock(ChunkMatName, new(PayloadWriter).String(m.Name).Bytes()))
	colors := []struct {
		id  ChunkID
		rgb *[3]byte
	}{
		{ChunkMatAmbient, m.Ambient},
		{ChunkMatDiffuse, m.Diffuse},
		{ChunkMatSpecular, m.Specular},
	}
	for _, c := range colors {
		if c.rgb == nil {
			continue
		}
		b.Children = append(b.Children, NewBlock(c.id, nil,
			NewBlock(ChunkColorRGB24, c.rgb[:])))
	}
	maps := []struct {
		id   ChunkID
		file string
	}{
		{ChunkMatTexMap1, m.TexMap1},
		{ChunkMatTexMap2, m.TexMap2},
		{ChunkMatBumpMap, m.BumpMap},
	}
	for _, mp := range maps {
		if mp.file == "" {
			continue
		}
		b.Children = append(b.Children, NewBlock(mp.id, nil,
			NewBlock(ChunkPercentInt, new(PayloadWriter).Uint16(100).Bytes()),
			NewBlock(ChunkMatMapFile, new(PayloadWriter).String(mp.file).Bytes())))
	}
	return b
}

// EncodeObject builds an OBJECT block holding one triangle mesh.
func EncodeObject(o ObjectDesc) *Block {
	verts := new(PayloadWriter).Uint16(uint16(len(o.Vertices)))
	for _, v := range o.Vertices {
		verts.Float32(v[0], v[1], v[2])
	}

	faces := new(PayloadWriter).Uint16(uint16(len(o.Faces)))
	for _, f := range o.Faces {
		faces.Uint16(f[0]).Uint16(f[1]).Uint16(f[2]).Uint16(0x0007)
	}
	facesBlock := NewBlock(ChunkObjectFaces, faces.Bytes())
	if o.Material != "" {
		list := new(PayloadWriter).String(o.Material).Uint16(uint16(len(o.Faces)))
		for i := range o.Faces {
			list.Uint16(uint16(i))
		}
		facesBlock.Children = append(facesBlock.Children, NewBlock(ChunkObjectMaterial, list.Bytes()))
	}

	mesh := NewBlock(ChunkObjectMesh, nil, NewBlock(ChunkObjectVertices, verts.Bytes()), facesBlock)
	if len(o.UVs) > 0 {
		uvs := new(PayloadWriter).Uint16(uint16(len(o.UVs)))
		for _, uv := range o.UVs {
			uvs.Float32(uv[0], uv[1])
		}
		mesh.Children = append(mesh.Children, NewBlock(ChunkObjectUV, uvs.Bytes()))
	}

	return NewBlock(ChunkObject, new(PayloadWriter).String(o.Name).Bytes(), mesh)
}

// EncodeModel builds a MAIN block: version, then an OBJECTINFO block holding
// the mesh version, the materials and the objects in order.
func EncodeModel(version uint32, materials []MaterialDesc, objects []ObjectDesc) *Block {
	info := NewBlock(ChunkObjectInfo, nil,
		NewBlock(ChunkMeshFileVersion, new(PayloadWriter).Uint32(3).Bytes()))
	for _, m := range materials {
		info.Children = append(info.Children, EncodeMaterial(m))
	}
	for _, o := range objects {
		info.Children = append(info.Children, EncodeObject(o))
	}
	return NewBlock(ChunkMain, nil,
		NewBlock(ChunkVersion, new(PayloadWriter).Uint32(version).Bytes()),
		info)
}

// CubeVertices are the corners of a cube of half-size 1 centered at the
// origin, in file space.
var CubeVertices = [][3]float32{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// CubeFaces are the cube's 12 triangles, wound counter-clockwise when seen
// from outside.
var CubeFaces = [][3]uint16{
	{0, 3, 2}, {0, 2, 1}, // -Z
	{4, 5, 6}, {4, 6, 7}, // +Z
	{0, 1, 5}, {0, 5, 4}, // -Y
	{3, 7, 6}, {3, 6, 2}, // +Y
	{0, 4, 7}, {0, 7, 3}, // -X
	{1, 2, 6}, {1, 6, 5}, // +X
}

// SampleCube returns a complete model holding one red material and one cube
// object assigned to it.
func SampleCube(objectName, materialName string) *Block {
	red := [3]byte{255, 0, 0}
	return EncodeModel(3,
		[]MaterialDesc{{Name: materialName, Diffuse: &red}},
		[]ObjectDesc{{
			Name:     objectName,
			Vertices: CubeVertices,
			Faces:    CubeFaces,
			UVs: [][2]float32{
				{0, 0}, {1, 0}, {1, 1}, {0, 1},
				{0, 0}, {1, 0}, {1, 1}, {0, 1},
			},
			Material: materialName,
		}})
}

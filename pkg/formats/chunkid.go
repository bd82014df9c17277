package formats

import "fmt"

// ChunkID is the 16-bit tag of a chunk.
type ChunkID uint16

// Chunk tags understood by the model loader. Indentation follows nesting.
const (
	ChunkMain            ChunkID = 0x4D4D // main
	ChunkVersion         ChunkID = 0x0002 // file format version
	ChunkObjectInfo      ChunkID = 0x3D3D // 3D editor
	ChunkMaterial        ChunkID = 0xAFFF // material block
	ChunkMatName         ChunkID = 0xA000 // material name
	ChunkMatAmbient      ChunkID = 0xA010 // material ambient color
	ChunkMatDiffuse      ChunkID = 0xA020 // material diffuse color
	ChunkMatSpecular     ChunkID = 0xA030 // material specular color
	ChunkMatShininess    ChunkID = 0xA040 // material shininess (not read)
	ChunkMatTexMap1      ChunkID = 0xA200 // texture map 1
	ChunkMatTexMap2      ChunkID = 0xA33A // texture map 2
	ChunkMatBumpMap      ChunkID = 0xA230 // bump map
	ChunkMatMapFile      ChunkID = 0xA300 // map filename
	ChunkObject          ChunkID = 0x4000 // object block
	ChunkObjectMesh      ChunkID = 0x4100 // triangle mesh
	ChunkObjectVertices  ChunkID = 0x4110 // vertex list
	ChunkObjectFaces     ChunkID = 0x4120 // face list
	ChunkObjectMaterial  ChunkID = 0x4130 // faces material list
	ChunkObjectUV        ChunkID = 0x4140 // texture coordinates
	ChunkEditKeyframe    ChunkID = 0xB000 // keyframer block, always skipped
	ChunkColorFloat      ChunkID = 0x0010 // 3 float32
	ChunkColorRGB24      ChunkID = 0x0011 // 3 unsigned bytes
	ChunkColorLinRGB24   ChunkID = 0x0012 // gamma corrected 3 unsigned bytes
	ChunkPercentInt      ChunkID = 0x0030 // percentage as int16
	ChunkMeshFileVersion ChunkID = 0x3D3E // mesh format version inside object info
)

// MaxVersion is the highest file format version known to load correctly.
const MaxVersion = 3

var chunkNames = map[ChunkID]string{
	ChunkMain:            "MAIN",
	ChunkVersion:         "VERSION",
	ChunkObjectInfo:      "OBJECTINFO",
	ChunkMaterial:        "MATERIAL",
	ChunkMatName:         "MAT_NAME",
	ChunkMatAmbient:      "MAT_AMBIENT",
	ChunkMatDiffuse:      "MAT_DIFFUSE",
	ChunkMatSpecular:     "MAT_SPECULAR",
	ChunkMatShininess:    "MAT_SHININESS",
	ChunkMatTexMap1:      "MAT_TEXMAP1",
	ChunkMatTexMap2:      "MAT_TEXMAP2",
	ChunkMatBumpMap:      "MAT_BUMPMAP",
	ChunkMatMapFile:      "MAT_MAPFILE",
	ChunkObject:          "OBJECT",
	ChunkObjectMesh:      "OBJECT_MESH",
	ChunkObjectVertices:  "OBJECT_VERTICES",
	ChunkObjectFaces:     "OBJECT_FACES",
	ChunkObjectMaterial:  "OBJECT_MATERIAL",
	ChunkObjectUV:        "OBJECT_UV",
	ChunkEditKeyframe:    "EDIT_KEYFRAME",
	ChunkColorFloat:      "COLOR_F",
	ChunkColorRGB24:      "COLOR_RGB24",
	ChunkColorLinRGB24:   "COLOR_LIN_RGB24",
	ChunkPercentInt:      "PERCENT_INT",
	ChunkMeshFileVersion: "MESH_VERSION",
}

// String returns the chunk's symbolic name, or its hex tag if unknown.
func (id ChunkID) String() string {
	if name, ok := chunkNames[id]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint16(id))
}

// Known reports whether id has a symbolic name.
func (id ChunkID) Known() bool {
	_, ok := chunkNames[id]
	return ok
}

// IsMapSlot reports whether id selects one of a material's texture slots.
func (id ChunkID) IsMapSlot() bool {
	switch id {
	case ChunkMatTexMap1, ChunkMatTexMap2, ChunkMatBumpMap:
		return true
	}
	return false
}

// IsColor reports whether id is one of the material color chunks.
func (id ChunkID) IsColor() bool {
	switch id {
	case ChunkMatAmbient, ChunkMatDiffuse, ChunkMatSpecular:
		return true
	}
	return false
}

package formats

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestReadTree_SampleCube(t *testing.T) {
	data := SampleCube("Cube01", "Mat1").Bytes()

	root, err := ReadTree(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTree failed: %v", err)
	}
	if root.Chunk.ID != ChunkMain {
		t.Errorf("expected MAIN root, got %s", root.Chunk.ID)
	}
	if root.Chunk.BytesRead != root.Chunk.Length || int(root.Chunk.Length) != len(data) {
		t.Errorf("root read %d of %d bytes (file %d)", root.Chunk.BytesRead, root.Chunk.Length, len(data))
	}

	counts := map[ChunkID]int{
		ChunkVersion:        1,
		ChunkObjectInfo:     1,
		ChunkMaterial:       1,
		ChunkColorRGB24:     1,
		ChunkObject:         1,
		ChunkObjectVertices: 1,
		ChunkObjectFaces:    1,
		ChunkObjectMaterial: 1,
		ChunkObjectUV:       1,
	}
	for id, want := range counts {
		if got := root.Count(id); got != want {
			t.Errorf("%s: expected %d, got %d", id, want, got)
		}
	}

	var out strings.Builder
	root.Print(&out)
	if !strings.Contains(out.String(), `"Cube01"`) {
		t.Errorf("listing lacks object name:\n%s", out.String())
	}
}

func TestReadTree_UnknownChunkSkipped(t *testing.T) {
	model := SampleCube("Cube01", "Mat1")
	info := model.Children[1]
	junk := NewBlock(ChunkID(0x7777), bytes.Repeat([]byte{0xAB}, 37))
	info.Children = append([]*Block{junk}, info.Children...)
	data := model.Bytes()

	root, err := ReadTree(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTree failed: %v", err)
	}
	if root.Count(ChunkID(0x7777)) != 1 {
		t.Error("unknown chunk missing from tree")
	}
	if root.Count(ChunkObjectVertices) != 1 {
		t.Error("chunks after the unknown one were lost")
	}
	if root.Chunk.BytesRead != uint32(len(data)) {
		t.Errorf("root read %d of %d bytes", root.Chunk.BytesRead, len(data))
	}
}

func TestReadTree_Truncated(t *testing.T) {
	data := SampleCube("Cube01", "Mat1").Bytes()
	for _, cut := range []int{3, 20, len(data) / 2, len(data) - 1} {
		if _, err := ReadTree(bytes.NewReader(data[:cut])); !errors.Is(err, ErrTruncated) {
			t.Errorf("cut at %d: expected ErrTruncated, got %v", cut, err)
		}
	}
}

// randomBlock builds a tree of containers and opaque leaves.
func randomBlock(rng *rand.Rand, depth int) *Block {
	if depth == 0 || rng.Intn(3) == 0 {
		id := ChunkID(0x1000 + rng.Intn(0x100))
		return NewBlock(id, bytes.Repeat([]byte{byte(rng.Intn(256))}, rng.Intn(64)))
	}
	b := NewBlock(ChunkMaterial, nil)
	for i := rng.Intn(4); i >= 0; i-- {
		b.Children = append(b.Children, randomBlock(rng, depth-1))
	}
	return b
}

func checkAccounting(t *testing.T, n *Node) {
	t.Helper()
	if n.Chunk.BytesRead != n.Chunk.Length {
		t.Errorf("%s at %d: read %d of %d bytes", n.Chunk.ID, n.Offset, n.Chunk.BytesRead, n.Chunk.Length)
	}
	for _, c := range n.Children {
		checkAccounting(t, c)
	}
}

func TestReadTree_AccountingRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		root := NewBlock(ChunkMain, nil, randomBlock(rng, 4), randomBlock(rng, 3))
		data := root.Bytes()

		tree, err := ReadTree(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("tree %d: ReadTree failed: %v", i, err)
		}
		checkAccounting(t, tree)
		if int(tree.Chunk.Length) != len(data) {
			t.Errorf("tree %d: root length %d, file %d", i, tree.Chunk.Length, len(data))
		}
	}
}

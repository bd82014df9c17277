package formats

import (
	"fmt"
	"io"
	"strings"
)

// Node is one chunk of a parsed chunk tree.
type Node struct {
	Chunk    Chunk
	Offset   int64  // Stream offset of the header
	Label    string // Object name (OBJECT only)
	Children []*Node
}

// ReadTree walks the whole chunk tree of a model stream without interpreting
// geometry. Container chunks are descended into, everything else is skipped.
// The returned root's BytesRead equals its Length when the stream is well
// formed.
func ReadTree(r io.Reader) (*Node, error) {
	cr := NewChunkReader(r)
	root := &Node{Offset: cr.Offset()}
	c, err := cr.ReadHeader()
	if err != nil {
		return nil, err
	}
	if err := cr.walk(&c, root); err != nil {
		return nil, err
	}
	root.Chunk = c
	return root, nil
}

func (cr *ChunkReader) walk(c *Chunk, n *Node) error {
	switch c.ID {
	case ChunkObject:
		name, err := cr.ReadString(c)
		if err != nil {
			return err
		}
		n.Label = name
	case ChunkObjectFaces:
		count, err := cr.ReadUint16(c)
		if err != nil {
			return err
		}
		if _, err := cr.ReadBytes(c, uint32(count)*8); err != nil {
			return err
		}
	case ChunkMain, ChunkObjectInfo, ChunkMaterial, ChunkObjectMesh,
		ChunkMatTexMap1, ChunkMatTexMap2, ChunkMatBumpMap,
		ChunkMatAmbient, ChunkMatDiffuse, ChunkMatSpecular:
	default:
		return cr.Skip(c)
	}

	for !c.Done() {
		child := &Node{Offset: cr.Offset()}
		cc, err := cr.ReadChild(c)
		if err != nil {
			return err
		}
		if err := cr.walk(&cc, child); err != nil {
			return err
		}
		child.Chunk = cc
		if err := c.Absorb(cc); err != nil {
			return err
		}
		n.Children = append(n.Children, child)
	}
	return nil
}

// Print writes an indented listing of the tree to w.
func (n *Node) Print(w io.Writer) {
	n.print(w, 0)
}

func (n *Node) print(w io.Writer, depth int) {
	label := ""
	if n.Label != "" {
		label = fmt.Sprintf(" %q", n.Label)
	}
	fmt.Fprintf(w, "%s%-16s @%-8d len=%-8d read=%d%s\n",
		strings.Repeat("  ", depth), n.Chunk.ID, n.Offset, n.Chunk.Length, n.Chunk.BytesRead, label)
	for _, c := range n.Children {
		c.print(w, depth+1)
	}
}

// Count returns the number of nodes in the tree with the given id.
func (n *Node) Count(id ChunkID) int {
	total := 0
	if n.Chunk.ID == id {
		total++
	}
	for _, c := range n.Children {
		total += c.Count(id)
	}
	return total
}

package formats

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Block is an in-memory chunk used to compose model files: a payload followed
// by child blocks. Length is computed on write.
type Block struct {
	ID       ChunkID
	Payload  []byte
	Children []*Block
}

// NewBlock creates a block with the given payload and children.
func NewBlock(id ChunkID, payload []byte, children ...*Block) *Block {
	return &Block{ID: id, Payload: payload, Children: children}
}

// Len returns the total encoded length including the header.
func (b *Block) Len() uint32 {
	n := uint32(HeaderSize + len(b.Payload))
	for _, c := range b.Children {
		n += c.Len()
	}
	return n
}

// WriteTo encodes the block and its children to w.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	var hdr [HeaderSize]byte
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(b.ID))
	binary.LittleEndian.PutUint32(hdr[2:6], b.Len())
	n, err := w.Write(hdr[:])
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(b.Payload)
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, c := range b.Children {
		m, err := c.WriteTo(w)
		total += m
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Bytes returns the encoded block.
func (b *Block) Bytes() []byte {
	var buf bytes.Buffer
	b.WriteTo(&buf)
	return buf.Bytes()
}

// PayloadWriter accumulates little-endian payload bytes.
type PayloadWriter struct {
	buf []byte
}

// Uint16 appends v.
func (p *PayloadWriter) Uint16(v uint16) *PayloadWriter {
	p.buf = binary.LittleEndian.AppendUint16(p.buf, v)
	return p
}

// Uint32 appends v.
func (p *PayloadWriter) Uint32(v uint32) *PayloadWriter {
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
	return p
}

// Float32 appends each value.
func (p *PayloadWriter) Float32(vs ...float32) *PayloadWriter {
	for _, v := range vs {
		p.buf = binary.LittleEndian.AppendUint32(p.buf, math.Float32bits(v))
	}
	return p
}

// String appends s and a null terminator.
func (p *PayloadWriter) String(s string) *PayloadWriter {
	p.buf = append(p.buf, s...)
	p.buf = append(p.buf, 0)
	return p
}

// Raw appends b verbatim.
func (p *PayloadWriter) Raw(b ...byte) *PayloadWriter {
	p.buf = append(p.buf, b...)
	return p
}

// Bytes returns the accumulated payload.
func (p *PayloadWriter) Bytes() []byte {
	return p.buf
}

// Package formats provides readers for the tagged binary chunk format used by
// 3D Studio (.3ds) model files.
package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

// HeaderSize is the size of a chunk header: 2-byte id + 4-byte length.
const HeaderSize = 6

// Chunk format errors.
var (
	ErrShortChunk         = errors.New("chunk length shorter than its header")
	ErrChunkOverrun       = errors.New("chunk exceeds its parent's declared length")
	ErrTruncated          = errors.New("truncated chunk data")
	ErrUnterminatedString = errors.New("unterminated string in chunk")
)

// Chunk is the parse cursor of a single length-delimited record. Length
// includes the 6 header bytes; BytesRead counts every byte consumed so far,
// header included.
type Chunk struct {
	ID        ChunkID
	Length    uint32
	BytesRead uint32
}

// Remaining returns the number of declared bytes not yet consumed.
func (c *Chunk) Remaining() uint32 {
	return c.Length - c.BytesRead
}

// Done reports whether the chunk has been fully consumed.
func (c *Chunk) Done() bool {
	return c.BytesRead >= c.Length
}

// Absorb adds a fully processed child's byte count to c.
func (c *Chunk) Absorb(child Chunk) error {
	if child.BytesRead > c.Remaining() {
		return fmt.Errorf("%w: %s child %s consumed %d bytes, %d left",
			ErrChunkOverrun, c.ID, child.ID, child.BytesRead, c.Remaining())
	}
	c.BytesRead += child.BytesRead
	return nil
}

func (c Chunk) String() string {
	return fmt.Sprintf("%s len=%d read=%d", c.ID, c.Length, c.BytesRead)
}

// ChunkReader reads chunk headers and payload from a byte stream, charging
// every read against a chunk's declared length so that no read can cross a
// chunk boundary.
type ChunkReader struct {
	r       io.Reader
	names   encoding.Encoding
	scratch [8]byte
	offset  int64
}

// NewChunkReader creates a chunk reader over r.
func NewChunkReader(r io.Reader) *ChunkReader {
	return &ChunkReader{r: r}
}

// SetNameEncoding sets the character encoding of name strings. A nil encoding
// passes the raw bytes through.
func (cr *ChunkReader) SetNameEncoding(e encoding.Encoding) {
	cr.names = e
}

// Offset returns the number of bytes read from the underlying stream.
func (cr *ChunkReader) Offset() int64 {
	return cr.offset
}

// ReadHeader reads a top-level chunk header. The returned chunk has
// BytesRead set to HeaderSize.
func (cr *ChunkReader) ReadHeader() (Chunk, error) {
	if err := cr.fill(cr.scratch[:HeaderSize]); err != nil {
		return Chunk{}, err
	}
	c := Chunk{
		ID:        ChunkID(binary.LittleEndian.Uint16(cr.scratch[0:2])),
		Length:    binary.LittleEndian.Uint32(cr.scratch[2:6]),
		BytesRead: HeaderSize,
	}
	if c.Length < HeaderSize {
		return c, fmt.Errorf("%w: %s declares %d bytes", ErrShortChunk, c.ID, c.Length)
	}
	return c, nil
}

// ReadChild reads the header of the next child of parent. The header bytes are
// charged to the child, not the parent; the caller hands the finished child
// back with parent.Absorb.
func (cr *ChunkReader) ReadChild(parent *Chunk) (Chunk, error) {
	if parent.Remaining() < HeaderSize {
		return Chunk{}, fmt.Errorf("%w: %s has %d bytes left, need a %d byte header",
			ErrChunkOverrun, parent.ID, parent.Remaining(), HeaderSize)
	}
	child, err := cr.ReadHeader()
	if err != nil {
		return child, err
	}
	if child.Length > parent.Remaining() {
		return child, fmt.Errorf("%w: %s declares %d bytes inside %s with %d left",
			ErrChunkOverrun, child.ID, child.Length, parent.ID, parent.Remaining())
	}
	return child, nil
}

// ReadUint16 reads a little-endian uint16 from c.
func (cr *ChunkReader) ReadUint16(c *Chunk) (uint16, error) {
	if err := cr.take(c, cr.scratch[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(cr.scratch[:2]), nil
}

// ReadUint32 reads a little-endian uint32 from c.
func (cr *ChunkReader) ReadUint32(c *Chunk) (uint32, error) {
	if err := cr.take(c, cr.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(cr.scratch[:4]), nil
}

// ReadData decodes fixed-size little-endian data (as understood by
// encoding/binary) from c.
func (cr *ChunkReader) ReadData(c *Chunk, data any) error {
	size := binary.Size(data)
	if size < 0 {
		return fmt.Errorf("formats: %T has no fixed size", data)
	}
	if err := cr.charge(c, uint32(size)); err != nil {
		return err
	}
	if err := binary.Read(cr.r, binary.LittleEndian, data); err != nil {
		return truncated(c, err)
	}
	cr.offset += int64(size)
	return nil
}

// ReadBytes reads n bytes from c.
func (cr *ChunkReader) ReadBytes(c *Chunk, n uint32) ([]byte, error) {
	buf := make([]byte, n)
	if err := cr.take(c, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadRemaining reads everything left in c.
func (cr *ChunkReader) ReadRemaining(c *Chunk) ([]byte, error) {
	return cr.ReadBytes(c, c.Remaining())
}

// ReadString reads a null-terminated string byte by byte. The terminator is
// consumed and counted, so a string of n characters charges n+1 bytes.
func (cr *ChunkReader) ReadString(c *Chunk) (string, error) {
	var buf []byte
	for {
		if c.Remaining() == 0 {
			return "", fmt.Errorf("%w: %s", ErrUnterminatedString, c.ID)
		}
		if err := cr.take(c, cr.scratch[:1]); err != nil {
			return "", err
		}
		if cr.scratch[0] == 0 {
			break
		}
		buf = append(buf, cr.scratch[0])
	}
	return cr.decodeName(buf)
}

// ReadFixedString reads everything left in c as a name, cut at the first
// null byte.
func (cr *ChunkReader) ReadFixedString(c *Chunk) (string, error) {
	buf, err := cr.ReadRemaining(c)
	if err != nil {
		return "", err
	}
	for i, b := range buf {
		if b == 0 {
			buf = buf[:i]
			break
		}
	}
	return cr.decodeName(buf)
}

// Skip discards the rest of c.
func (cr *ChunkReader) Skip(c *Chunk) error {
	n := c.Remaining()
	if n == 0 {
		return nil
	}
	copied, err := io.CopyN(io.Discard, cr.r, int64(n))
	cr.offset += copied
	c.BytesRead += uint32(copied)
	if err != nil {
		return truncated(c, err)
	}
	return nil
}

func (cr *ChunkReader) decodeName(buf []byte) (string, error) {
	if cr.names == nil {
		return string(buf), nil
	}
	out, err := cr.names.NewDecoder().Bytes(buf)
	if err != nil {
		return "", fmt.Errorf("decoding name: %w", err)
	}
	return string(out), nil
}

func (cr *ChunkReader) take(c *Chunk, buf []byte) error {
	if err := cr.charge(c, uint32(len(buf))); err != nil {
		return err
	}
	if err := cr.fill(buf); err != nil {
		return truncated(c, err)
	}
	return nil
}

func (cr *ChunkReader) charge(c *Chunk, n uint32) error {
	if n > c.Remaining() {
		return fmt.Errorf("%w: read of %d bytes in %s with %d left",
			ErrChunkOverrun, n, c.ID, c.Remaining())
	}
	c.BytesRead += n
	return nil
}

func (cr *ChunkReader) fill(buf []byte) error {
	n, err := io.ReadFull(cr.r, buf)
	cr.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w at offset %d", ErrTruncated, cr.offset)
		}
		return err
	}
	return nil
}

func truncated(c *Chunk, err error) error {
	if errors.Is(err, ErrTruncated) {
		return fmt.Errorf("%s: %w", c.ID, err)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: %w", c.ID, ErrTruncated)
	}
	return err
}

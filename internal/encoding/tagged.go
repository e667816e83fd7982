// Package encoding implements the self-describing tagged-array format
// used by gfconv artifacts. Every field is written as a type tag, a
// dimensionality byte, the dimension sizes, and a little-endian raw
// payload. The stream opens with a 4-byte magic and closes with an
// xxhash64 trailer over everything before it.
package encoding

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Tag identifies the element type of a tagged array.
type Tag byte

const (
	TagInt64   Tag = 0x01
	TagFloat64 Tag = 0x02
	TagBytes   Tag = 0x03
)

func (t Tag) String() string {
	switch t {
	case TagInt64:
		return "int64"
	case TagFloat64:
		return "float64"
	case TagBytes:
		return "bytes"
	default:
		return fmt.Sprintf("tag(0x%02x)", byte(t))
	}
}

// Magic opens every artifact stream.
var Magic = [4]byte{'G', 'F', 'A', '1'}

// trailerSize is the length of the xxhash64 trailer in bytes.
const trailerSize = 8

// Writer emits tagged arrays to an underlying stream while folding every
// written byte into a running xxhash64 digest. Finish appends the digest
// as the stream trailer; nothing may be written afterwards.
type Writer struct {
	out    io.Writer
	digest *xxhash.Digest
	done   bool
}

// NewWriter wraps w and writes the stream magic.
func NewWriter(w io.Writer) (*Writer, error) {
	wr := &Writer{out: w, digest: xxhash.New()}
	if err := wr.writeRaw(Magic[:]); err != nil {
		return nil, fmt.Errorf("write magic: %w", err)
	}
	return wr, nil
}

// writeRaw writes to the underlying stream and the digest in lockstep.
func (w *Writer) writeRaw(b []byte) error {
	if w.done {
		return fmt.Errorf("write after Finish")
	}
	if _, err := w.out.Write(b); err != nil {
		return err
	}
	_, _ = w.digest.Write(b) // never fails per hash.Hash contract
	return nil
}

// writeHeader emits the tag, dimensionality and dimension sizes of one
// array, validating that the dimensions cover exactly n elements.
func (w *Writer) writeHeader(tag Tag, dims []uint32, n int) error {
	if len(dims) == 0 || len(dims) > 255 {
		return fmt.Errorf("invalid dimensionality %d", len(dims))
	}
	prod := uint64(1)
	for _, d := range dims {
		prod *= uint64(d)
	}
	if prod != uint64(n) {
		return fmt.Errorf("dims %v cover %d elements, payload has %d", dims, prod, n)
	}

	buf := make([]byte, 0, 2+4*len(dims))
	buf = append(buf, byte(tag), byte(len(dims)))
	for _, d := range dims {
		buf = binary.LittleEndian.AppendUint32(buf, d)
	}
	return w.writeRaw(buf)
}

// WriteFloat64s writes a float64 array with the given dimensions. Values
// are stored in their IEEE 754 bit representation, so round-trips are
// bit-identical.
func (w *Writer) WriteFloat64s(dims []uint32, vals []float64) error {
	if err := w.writeHeader(TagFloat64, dims, len(vals)); err != nil {
		return err
	}
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return w.writeRaw(buf)
}

// WriteInt64s writes a signed integer array with the given dimensions.
func (w *Writer) WriteInt64s(dims []uint32, vals []int64) error {
	if err := w.writeHeader(TagInt64, dims, len(vals)); err != nil {
		return err
	}
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return w.writeRaw(buf)
}

// WriteBytes writes a raw byte array, dimensioned by its length.
func (w *Writer) WriteBytes(b []byte) error {
	if err := w.writeHeader(TagBytes, []uint32{uint32(len(b))}, len(b)); err != nil {
		return err
	}
	return w.writeRaw(b)
}

// Finish writes the xxhash64 trailer and seals the writer.
func (w *Writer) Finish() error {
	if w.done {
		return fmt.Errorf("already finished")
	}
	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[:], w.digest.Sum64())
	if _, err := w.out.Write(trailer[:]); err != nil {
		return fmt.Errorf("write trailer: %w", err)
	}
	w.done = true
	return nil
}

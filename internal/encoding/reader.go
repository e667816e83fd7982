package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrBadMagic indicates the stream does not start with the artifact magic.
	ErrBadMagic = errors.New("bad artifact magic")

	// ErrChecksum indicates the xxhash64 trailer does not match the stream.
	ErrChecksum = errors.New("artifact checksum mismatch")

	// ErrTruncatedStream indicates the stream ends inside an array.
	ErrTruncatedStream = errors.New("truncated artifact stream")
)

// Array is one decoded tagged array. Exactly one of I64, F64 or Raw is
// populated, matching the Tag.
type Array struct {
	Tag  Tag
	Dims []uint32
	I64  []int64
	F64  []float64
	Raw  []byte
}

// Len returns the element count covered by the dimensions.
func (a *Array) Len() int {
	n, _ := elemCount(a.Dims)
	return int(n)
}

// elemCount returns the element count covered by dims, reporting
// whether the uint64 product overflowed. Dimensions come straight from
// the stream, so the product must be validated before any allocation.
func elemCount(dims []uint32) (uint64, bool) {
	n := uint64(1)
	for _, d := range dims {
		if d != 0 && n > math.MaxUint64/uint64(d) {
			return 0, false
		}
		n *= uint64(d)
	}
	return n, true
}

// Decode parses a complete artifact stream, verifying the magic and the
// xxhash64 trailer before returning the arrays in stream order.
func Decode(data []byte) ([]Array, error) {
	if len(data) < len(Magic)+trailerSize {
		return nil, ErrTruncatedStream
	}
	if [4]byte(data[:4]) != Magic {
		return nil, ErrBadMagic
	}

	body, trailer := data[:len(data)-trailerSize], data[len(data)-trailerSize:]
	if xxhash.Sum64(body) != binary.LittleEndian.Uint64(trailer) {
		return nil, ErrChecksum
	}

	var arrays []Array
	off := len(Magic)
	for off < len(body) {
		a, n, err := decodeArray(body[off:])
		if err != nil {
			return nil, fmt.Errorf("array %d at offset %d: %w", len(arrays), off, err)
		}
		arrays = append(arrays, a)
		off += n
	}
	return arrays, nil
}

// decodeArray parses one tagged array from the front of data, returning
// the array and the number of bytes consumed.
func decodeArray(data []byte) (Array, int, error) {
	if len(data) < 2 {
		return Array{}, 0, ErrTruncatedStream
	}
	a := Array{Tag: Tag(data[0])}
	ndims := int(data[1])
	off := 2

	if len(data) < off+4*ndims {
		return Array{}, 0, ErrTruncatedStream
	}
	a.Dims = make([]uint32, ndims)
	for i := range a.Dims {
		a.Dims[i] = binary.LittleEndian.Uint32(data[off:])
		off += 4
	}

	// Validate the element count in uint64 against the remaining bytes
	// before allocating, so oversized or overflowing dims from a
	// corrupted stream cannot defeat the bounds checks.
	count, ok := elemCount(a.Dims)
	if !ok {
		return Array{}, 0, ErrTruncatedStream
	}
	remaining := uint64(len(data) - off)

	switch a.Tag {
	case TagInt64:
		if count > remaining/8 {
			return Array{}, 0, ErrTruncatedStream
		}
		n := int(count)
		a.I64 = make([]int64, n)
		for i := range a.I64 {
			a.I64[i] = int64(binary.LittleEndian.Uint64(data[off:]))
			off += 8
		}
	case TagFloat64:
		if count > remaining/8 {
			return Array{}, 0, ErrTruncatedStream
		}
		n := int(count)
		a.F64 = make([]float64, n)
		for i := range a.F64 {
			a.F64[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
			off += 8
		}
	case TagBytes:
		if count > remaining {
			return Array{}, 0, ErrTruncatedStream
		}
		n := int(count)
		a.Raw = append([]byte(nil), data[off:off+n]...)
		off += n
	default:
		return Array{}, 0, fmt.Errorf("unknown tag 0x%02x", byte(a.Tag))
	}

	return a, off, nil
}

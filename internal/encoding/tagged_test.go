package encoding

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	descriptor := []byte("test descriptor\nline two\n")
	params := []int64{3, 1000, 9, 1_000_000, 1700000000, 1700000001}
	floats := []float64{
		1.5, math.Copysign(0, -1), math.Pi,
		math.MaxFloat64, math.SmallestNonzeroFloat64, -273.15,
	}
	ids := []int64{1, 2, 3, math.MaxInt64, math.MinInt64}

	require.NoError(t, w.WriteBytes(descriptor))
	require.NoError(t, w.WriteInt64s([]uint32{6}, params))
	require.NoError(t, w.WriteFloat64s([]uint32{3, 2}, floats))
	require.NoError(t, w.WriteInt64s([]uint32{5}, ids))
	require.NoError(t, w.Finish())

	arrays, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, arrays, 4)

	assert.Equal(t, TagBytes, arrays[0].Tag)
	assert.Equal(t, descriptor, arrays[0].Raw)

	assert.Equal(t, TagInt64, arrays[1].Tag)
	assert.Equal(t, []uint32{6}, arrays[1].Dims)
	assert.Equal(t, params, arrays[1].I64)

	assert.Equal(t, TagFloat64, arrays[2].Tag)
	assert.Equal(t, []uint32{3, 2}, arrays[2].Dims)
	// Round-trips must be bit-identical, including the sign of -0.0.
	require.Len(t, arrays[2].F64, len(floats))
	for i, v := range floats {
		assert.Equal(t, math.Float64bits(v), math.Float64bits(arrays[2].F64[i]), "float %d", i)
	}

	assert.Equal(t, ids, arrays[3].I64)
}

func TestWriter_DimsMismatch(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{})
	require.NoError(t, err)

	err = w.WriteFloat64s([]uint32{3, 3}, []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestWriter_WriteAfterFinish(t *testing.T) {
	w, err := NewWriter(&bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, w.Finish())

	assert.Error(t, w.WriteBytes([]byte("late")))
	assert.Error(t, w.Finish())
}

func TestDecode_BadMagic(t *testing.T) {
	data := make([]byte, 16)
	copy(data, "XXXX")

	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.WriteInt64s([]uint32{2}, []int64{7, 8}))
	require.NoError(t, w.Finish())

	data := buf.Bytes()
	data[len(Magic)+2] ^= 0xff // corrupt a payload byte

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrChecksum)
}

// sealed appends a valid xxhash trailer to a hand-built body, so the
// stream passes the checksum and exercises the array header validation.
func sealed(body []byte) []byte {
	return binary.LittleEndian.AppendUint64(body, xxhash.Sum64(body))
}

func TestDecode_DimsProductOverflow(t *testing.T) {
	// dims [2^31, 2^31] cover 2^62 elements; the 8-byte payload size
	// wraps around in int arithmetic. The decoder must reject this
	// instead of attempting the allocation.
	body := append([]byte{}, Magic[:]...)
	body = append(body, byte(TagFloat64), 2)
	body = binary.LittleEndian.AppendUint32(body, 0x80000000)
	body = binary.LittleEndian.AppendUint32(body, 0x80000000)

	_, err := Decode(sealed(body))
	assert.ErrorIs(t, err, ErrTruncatedStream)
}

func TestDecode_DimsExceedPayload(t *testing.T) {
	for _, tag := range []Tag{TagInt64, TagFloat64, TagBytes} {
		body := append([]byte{}, Magic[:]...)
		body = append(body, byte(tag), 1)
		body = binary.LittleEndian.AppendUint32(body, 0xffffffff)

		_, err := Decode(sealed(body))
		assert.ErrorIs(t, err, ErrTruncatedStream, "tag %s", tag)
	}
}

func TestDecode_Truncated(t *testing.T) {
	_, err := Decode([]byte("GFA1"))
	assert.ErrorIs(t, err, ErrTruncatedStream)
}

func TestDecode_EmptyStream(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	require.NoError(t, w.Finish())

	arrays, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, arrays)
}

package artifact

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ppiankov/gfconv/internal/encoding"
)

// Field indices within a decoded artifact, matching the fixed write order.
const (
	FieldDescriptor = iota
	FieldRunParams
	FieldEnergy3
	FieldPosition3
	FieldMomentum3
	FieldEventID
	FieldHeader

	FieldCount
)

// ReadFile decodes an artifact from disk, transparently decompressing
// by filename suffix, and verifies its checksum.
func ReadFile(path string) ([]encoding.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	case strings.HasSuffix(path, ".lz4"):
		r = lz4.NewReader(f)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	arrays, err := encoding.Decode(data)
	if err != nil {
		return nil, err
	}
	if len(arrays) != FieldCount {
		return nil, fmt.Errorf("artifact has %d fields, want %d", len(arrays), FieldCount)
	}
	return arrays, nil
}

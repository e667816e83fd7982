package scan

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/gfconv/internal/model"
)

// Extract performs the second pass: for each block it seeks to the
// bookmarked start offset and reads exactly Length() rows of
// RecordWidth numeric fields, appending them to the unified matrix in
// scan order. The sentinel lines themselves are never re-parsed.
func Extract(r io.ReadSeeker, blocks []model.BlockDescriptor) (*model.EventMatrix, error) {
	total := 0
	for _, b := range blocks {
		total += b.Length()
	}
	matrix := model.NewEventMatrix(total)

	for _, b := range blocks {
		if _, err := r.Seek(b.StartOffset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek to block at line %d: %w", b.StartLine, err)
		}
		br := bufio.NewReader(r)

		for i := 0; i < b.Length(); i++ {
			raw, err := br.ReadString('\n')
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("read line %d: %w", b.StartLine+1+i, err)
			}

			var row [model.RecordWidth]float64
			if err := parseRow(raw, &row); err != nil {
				return nil, fmt.Errorf("line %d: %w", b.StartLine+1+i, err)
			}
			matrix.Append(row)
		}
	}

	return matrix, nil
}

// parseRow splits one event line into its fixed-width numeric fields.
func parseRow(raw string, row *[model.RecordWidth]float64) error {
	fields := strings.Fields(raw)
	if len(fields) != model.RecordWidth {
		return fmt.Errorf("expected %d fields, got %d", model.RecordWidth, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("field %d %q: %w", i, f, err)
		}
		row[i] = v
	}
	return nil
}

// CaptureHeader repositions to the start of the file and reads the
// preamble lines preceding the first block's start sentinel, byte
// verbatim including their original line endings. Returns nil when the
// first sentinel is on line 1.
func CaptureHeader(r io.ReadSeeker, firstBlockStartLine int) ([]byte, error) {
	n := firstBlockStartLine - 1
	if n <= 0 {
		return nil, nil
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to header: %w", err)
	}

	br := bufio.NewReader(r)
	var header []byte
	for i := 0; i < n; i++ {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read header line %d: %w", i+1, err)
		}
		header = append(header, raw...)
	}
	return header, nil
}

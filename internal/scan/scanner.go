// Package scan implements the two-pass parse of a simulation log: a
// forward pass that bookmarks sentinel-delimited block boundaries by
// line number and byte offset, and a second pass that seeks back to
// those bookmarks and reads the event rows.
package scan

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/ppiankov/gfconv/internal/model"
)

// ErrEmptyDataset indicates a file with no valid data blocks.
var ErrEmptyDataset = errors.New("no valid data blocks")

// Result is the outcome of the first pass over a source file.
type Result struct {
	Blocks    []model.BlockDescriptor // matched sentinel pairs, in file order
	Truncated bool                    // odd sentinel count at EOF
	Lines     int                     // total lines read
}

// ValidBlocks returns the blocks containing at least one event row.
func (r *Result) ValidBlocks() []model.BlockDescriptor {
	valid := make([]model.BlockDescriptor, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		if b.Valid() {
			valid = append(valid, b)
		}
	}
	return valid
}

// Scan performs a single forward pass over the log, toggling between
// block start and block stop on every line that begins with the
// 2-character sentinel prefix. Each sentinel records the current line
// number and the byte offset immediately after its line. A dangling
// start sentinel at EOF marks the result truncated and is discarded.
func Scan(r io.Reader, sentinel string) (*Result, error) {
	br := bufio.NewReader(r)
	res := &Result{}

	var (
		offset  int64
		line    int
		open    bool
		pending model.BlockDescriptor
	)

	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			line++
			offset += int64(len(raw))

			if strings.HasPrefix(strings.TrimRight(raw, "\r\n"), sentinel) {
				if !open {
					pending = model.BlockDescriptor{StartLine: line, StartOffset: offset}
					open = true
				} else {
					pending.StopLine = line
					pending.StopOffset = offset
					res.Blocks = append(res.Blocks, pending)
					open = false
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	res.Lines = line
	res.Truncated = open
	return res, nil
}

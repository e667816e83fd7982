// Package pipeline drives the per-file conversion: filename metadata,
// sentinel scan, block extraction, header capture, artifact assembly.
// Files are processed strictly one at a time; each is fully scanned,
// extracted and written before the next begins.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/gfconv/internal/artifact"
	"github.com/ppiankov/gfconv/internal/meta"
	"github.com/ppiankov/gfconv/internal/model"
	"github.com/ppiankov/gfconv/internal/scan"
)

// Pipeline converts simulation logs into binary artifacts.
type Pipeline struct {
	cfg       *model.Config
	assembler *artifact.Assembler
}

// NewPipeline creates a pipeline for one batch run.
func NewPipeline(cfg *model.Config, version string) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		assembler: artifact.NewAssembler(artifact.Options{
			OutputDir: cfg.OutputDir,
			Operator:  cfg.Operator,
			Compress:  cfg.Compress,
			Version:   version,
		}),
	}
}

// ConvertFile processes a single source file and reports its outcome.
// Every failure is confined to this file; the caller decides whether to
// continue with the rest of the batch.
func (p *Pipeline) ConvertFile(path string) *model.Outcome {
	out := &model.Outcome{Source: path}

	// Run metadata is derived fresh per file; a parse failure skips the
	// file so no placeholder metadata ever reaches an artifact.
	md, err := meta.Parse(filepath.Base(path))
	if err != nil {
		out.Status = model.StatusSkipped
		out.Reason = err
		return out
	}

	info, err := os.Stat(path)
	if err != nil {
		out.Status = model.StatusFailed
		out.Reason = fmt.Errorf("stat source: %w", err)
		return out
	}

	f, err := os.Open(path)
	if err != nil {
		out.Status = model.StatusFailed
		out.Reason = fmt.Errorf("open source: %w", err)
		return out
	}
	defer func() { _ = f.Close() }()

	// Pass 1: bookmark sentinel-delimited blocks.
	res, err := scan.Scan(f, p.cfg.Sentinel)
	if err != nil {
		out.Status = model.StatusFailed
		out.Reason = fmt.Errorf("scan: %w", err)
		return out
	}
	if res.Truncated {
		out.Warnings = append(out.Warnings, "odd sentinel count, file appears truncated")
	}

	blocks := res.ValidBlocks()
	if len(blocks) == 0 {
		out.Status = model.StatusSkipped
		out.Reason = scan.ErrEmptyDataset
		return out
	}

	// Pass 2: seek back to the bookmarks on the same handle.
	matrix, err := scan.Extract(f, blocks)
	if err != nil {
		out.Status = model.StatusFailed
		out.Reason = fmt.Errorf("extract: %w", err)
		return out
	}

	header, err := scan.CaptureHeader(f, blocks[0].StartLine)
	if err != nil {
		out.Status = model.StatusFailed
		out.Reason = fmt.Errorf("capture header: %w", err)
		return out
	}

	src := artifact.SourceInfo{
		Name:  filepath.Base(path),
		Size:  info.Size(),
		CTime: ctime(info),
		MTime: info.ModTime().Unix(),
	}

	artPath, err := p.assembler.Assemble(md, src, matrix, header)
	if err != nil {
		out.Status = model.StatusFailed
		out.Reason = fmt.Errorf("assemble: %w", err)
		return out
	}

	out.Status = model.StatusConverted
	out.ArtifactPath = artPath
	out.Rows = matrix.Rows()
	return out
}

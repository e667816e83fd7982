// Package artifact assembles the binary output file for one converted
// source: a human-readable descriptor, the run parameter vector, the
// four column groups sliced from the event matrix, and the verbatim
// simulation preamble, in that fixed order.
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ppiankov/gfconv/internal/encoding"
	"github.com/ppiankov/gfconv/internal/model"
)

// SourceInfo carries provenance of the converted file into the artifact.
type SourceInfo struct {
	Name  string
	Size  int64
	CTime int64 // unix seconds
	MTime int64 // unix seconds
}

// Options configures the assembler for a batch run.
type Options struct {
	OutputDir string
	Operator  string // free-text operator identifier
	Compress  string // none, zstd, lz4
	Version   string // tool version tag embedded in the descriptor
}

// Assembler writes binary artifacts. One assembler serves a whole batch;
// all per-file state arrives through Assemble's arguments.
type Assembler struct {
	opts Options
}

func NewAssembler(opts Options) *Assembler {
	if opts.Operator == "" {
		opts.Operator = "unknown"
	}
	return &Assembler{opts: opts}
}

// Assemble writes one artifact and returns its path. An existing file at
// the same path is overwritten, which makes re-running a conversion
// idempotent. A mid-write failure may leave a truncated file behind.
func (a *Assembler) Assemble(md *model.RunMetadata, src SourceInfo, m *model.EventMatrix, header []byte) (string, error) {
	path := filepath.Join(a.opts.OutputDir, a.Filename(md))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	w, closer, err := wrapCompressor(f, a.opts.Compress)
	if err != nil {
		return "", err
	}

	if err := a.writeFields(w, md, src, m, header); err != nil {
		return "", err
	}

	if closer != nil {
		if err := closer.Close(); err != nil {
			return "", fmt.Errorf("flush compressor: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}
	return path, nil
}

// writeFields emits the seven tagged fields in their fixed order.
func (a *Assembler) writeFields(w io.Writer, md *model.RunMetadata, src SourceInfo, m *model.EventMatrix, header []byte) error {
	enc, err := encoding.NewWriter(w)
	if err != nil {
		return err
	}

	n := uint32(m.Rows())

	if err := enc.WriteBytes([]byte(a.Descriptor(md, src))); err != nil {
		return fmt.Errorf("descriptor: %w", err)
	}
	if err := enc.WriteInt64s([]uint32{6}, RunParameters(md, src)); err != nil {
		return fmt.Errorf("run parameters: %w", err)
	}
	if err := enc.WriteFloat64s([]uint32{3, n}, m.ComponentTriples(model.ColEnergy)); err != nil {
		return fmt.Errorf("energy3: %w", err)
	}
	if err := enc.WriteFloat64s([]uint32{3, n}, m.ComponentTriples(model.ColPosition)); err != nil {
		return fmt.Errorf("position3: %w", err)
	}
	if err := enc.WriteFloat64s([]uint32{3, n}, m.ComponentTriples(model.ColMomentum)); err != nil {
		return fmt.Errorf("momentum3: %w", err)
	}
	if err := enc.WriteInt64s([]uint32{n}, m.EventIDs()); err != nil {
		return fmt.Errorf("eventID: %w", err)
	}
	if err := enc.WriteBytes(header); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	return enc.Finish()
}

// RunParameters builds the fixed 6-element integer vector:
// [jobID, startEnergy(keV), nSteps, eventsPerStep, sourceCTime, sourceMTime].
func RunParameters(md *model.RunMetadata, src SourceInfo) []int64 {
	return []int64{
		int64(md.JobID),
		int64(md.StartEnergy),
		int64(md.NSteps),
		int64(md.EventsPerStep),
		src.CTime,
		src.MTime,
	}
}

// Descriptor renders the multi-line ASCII preamble documenting the
// artifact schema and provenance.
func (a *Assembler) Descriptor(md *model.RunMetadata, src SourceInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "gfconv binary artifact (gfconv v%s)\n", a.opts.Version)
	fmt.Fprintf(&b, "source: %s (%d bytes, created %s)\n",
		src.Name, src.Size, time.Unix(src.CTime, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "operator: %s\n", a.opts.Operator)
	fmt.Fprintf(&b, "species: %c  telescope: %s  job: %d\n", md.Species, md.TelescopeType, md.JobID)
	b.WriteString("fields: descriptor, runparams[6], energy3[3xN], position3[3xN], momentum3[3xN], eventid[N], header\n")
	b.WriteString("runparams: jobid, energy_kev, nsteps, events_per_step, source_ctime, source_mtime\n")
	b.WriteString("energy3: incident, det1 deposit, det2 deposit (keV); position3: x,y,z (mm); momentum3: normalized\n")
	return b.String()
}

// Filename composes the deterministic output name
// <telescopeType>_<speciesEnergyToken>_<jobID>.bin plus the codec suffix.
func (a *Assembler) Filename(md *model.RunMetadata) string {
	name := fmt.Sprintf("%s_%s_%d.bin", md.TelescopeType, md.EnergyToken, md.JobID)
	switch a.opts.Compress {
	case "zstd":
		return name + ".zst"
	case "lz4":
		return name + ".lz4"
	default:
		return name
	}
}

// wrapCompressor wraps the output file in the configured codec. The
// returned closer, when non-nil, must be closed before the file.
func wrapCompressor(f *os.File, codec string) (io.Writer, io.Closer, error) {
	switch codec {
	case "", "none":
		return f, nil, nil
	case "zstd":
		zw, err := zstd.NewWriter(f)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd writer: %w", err)
		}
		return zw, zw, nil
	case "lz4":
		lw := lz4.NewWriter(f)
		return lw, lw, nil
	default:
		return nil, nil, fmt.Errorf("unknown compression codec %q", codec)
	}
}

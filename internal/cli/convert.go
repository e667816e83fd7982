package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/gfconv/internal/model"
	"github.com/ppiankov/gfconv/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outputDir string
	globPat   string
	sentinel  string
	operator  string
	compress  string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <path>",
	Short: "Convert simulation log(s) into binary artifacts",
	Long: `Convert processes either a single simulation log or every matching
file directly beneath a directory. Each source file is handled
independently and sequentially:

- Mine run parameters from the filename (species, energy, steps, job)
- Scan for sentinel-delimited event blocks (pass 1)
- Extract the event rows at the bookmarked offsets (pass 2)
- Capture the simulation preamble
- Write one self-describing binary artifact

A failure in one file never stops the rest of the batch.

Example:
  gfconv convert p1.0MeV_9x1.E+06_ptel.j3
  gfconv convert ./runs --glob '*.j*' --output-dir ./artifacts
  gfconv convert ./runs --operator jdoe --compress zstd`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	defaults := model.DefaultConfig()
	convertCmd.Flags().StringVar(&outputDir, "output-dir", defaults.OutputDir, "output directory for artifacts")
	convertCmd.Flags().StringVar(&globPat, "glob", defaults.Glob, "source glob pattern under a directory")
	convertCmd.Flags().StringVar(&sentinel, "sentinel", defaults.Sentinel, "2-character block delimiter prefix")
	convertCmd.Flags().StringVar(&operator, "operator", defaults.Operator, "operator identifier embedded in artifacts")
	convertCmd.Flags().StringVar(&compress, "compress", defaults.Compress, "artifact compression (none, zstd, lz4)")
}

// buildConfig layers the convert configuration: flags over config
// file/env values over defaults.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	for key, dst := range map[string]*string{
		"output_dir": &cfg.OutputDir,
		"glob":       &cfg.Glob,
		"sentinel":   &cfg.Sentinel,
		"operator":   &cfg.Operator,
		"compress":   &cfg.Compress,
	} {
		if viper.IsSet(key) {
			*dst = viper.GetString(key)
		}
	}

	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("glob") {
		cfg.Glob = globPat
	}
	if cmd.Flags().Changed("sentinel") {
		cfg.Sentinel = sentinel
	}
	if cmd.Flags().Changed("operator") {
		cfg.Operator = operator
	}
	if cmd.Flags().Changed("compress") {
		cfg.Compress = compress
	}
	cfg.Verbose = verbose

	if len(cfg.Sentinel) != 2 {
		return nil, fmt.Errorf("sentinel prefix must be exactly 2 characters, got %q", cfg.Sentinel)
	}
	switch cfg.Compress {
	case "none", "zstd", "lz4":
	default:
		return nil, fmt.Errorf("unknown compression codec %q (none, zstd, lz4)", cfg.Compress)
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Source:      %s\n", source)
		fmt.Fprintf(os.Stderr, "Output dir:  %s\n", cfg.OutputDir)
		fmt.Fprintf(os.Stderr, "Glob:        %s\n", cfg.Glob)
		fmt.Fprintf(os.Stderr, "Sentinel:    %s\n", cfg.Sentinel)
		fmt.Fprintf(os.Stderr, "Compress:    %s\n", cfg.Compress)
		fmt.Fprintln(os.Stderr)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	sources, err := pipeline.ResolveSources(source, cfg.Glob)
	if err != nil {
		// Zero matches is reported, not escalated.
		if errors.Is(err, pipeline.ErrInvalidSource) {
			fmt.Fprintf(os.Stderr, "✗ %v\n", err)
			return nil
		}
		return err
	}

	p := pipeline.NewPipeline(cfg, version)
	outcomes := p.Run(sources)

	converted := 0
	skipped := 0
	failed := 0

	for _, out := range outcomes {
		for _, w := range out.Warnings {
			fmt.Fprintf(os.Stderr, "! %s: %s\n", out.Source, w)
		}
		switch out.Status {
		case model.StatusConverted:
			converted++
			fmt.Fprintf(os.Stderr, "✓ %s → %s (%d events)\n", out.Source, out.ArtifactPath, out.Rows)
		case model.StatusSkipped:
			skipped++
			fmt.Fprintf(os.Stderr, "- %s: %v\n", out.Source, out.Reason)
		default:
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", out.Source, out.Reason)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Conversion Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:      %d files\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "  Converted:  %d\n", converted)
	fmt.Fprintf(os.Stderr, "  Skipped:    %d\n", skipped)
	fmt.Fprintf(os.Stderr, "  Failed:     %d\n", failed)
	fmt.Fprintf(os.Stderr, "  Output:     %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

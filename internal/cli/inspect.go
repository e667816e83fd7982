package cli

import (
	"fmt"

	"github.com/ppiankov/gfconv/internal/artifact"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <artifact>",
	Short: "Decode a binary artifact and print its contents",
	Long: `Inspect decodes a gfconv binary artifact, verifies its checksum and
prints the embedded descriptor, the run parameter vector and the shapes
of the event arrays. Compressed artifacts (.zst, .lz4) are decompressed
transparently.

Example:
  gfconv inspect ptel_p1.0MeV_3.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var fieldNames = [artifact.FieldCount]string{
	"descriptor", "runparams", "energy3", "position3", "momentum3", "eventid", "header",
}

func runInspect(cmd *cobra.Command, args []string) error {
	arrays, err := artifact.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("inspect %s: %w", args[0], err)
	}

	fmt.Print(string(arrays[artifact.FieldDescriptor].Raw))
	fmt.Println()

	params := arrays[artifact.FieldRunParams].I64
	if len(params) != 6 {
		return fmt.Errorf("inspect %s: run parameter vector has %d elements, want 6", args[0], len(params))
	}
	fmt.Printf("runparams: jobid=%d energy_kev=%d nsteps=%d events_per_step=%d ctime=%d mtime=%d\n",
		params[0], params[1], params[2], params[3], params[4], params[5])

	for i, a := range arrays {
		fmt.Printf("field %d %-10s %-8s dims=%v (%d elements)\n",
			i, fieldNames[i], a.Tag, a.Dims, a.Len())
	}

	if verbose {
		fmt.Println()
		fmt.Print(string(arrays[artifact.FieldHeader].Raw))
	}
	return nil
}

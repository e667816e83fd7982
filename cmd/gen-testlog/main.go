// Test program that generates a synthetic simulation log for smoke
// testing the converter. The output mimics the real tool: a free-text
// runtime preamble followed by sentinel-delimited blocks of 10-field
// event rows.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
)

func main() {
	var (
		path     = flag.String("o", "p1.0MeV_9x1.E+06_ptel.j3", "output path (basename carries the run metadata)")
		blocks   = flag.Int("blocks", 3, "number of sentinel-delimited blocks")
		rows     = flag.Int("rows", 100, "event rows per block")
		sentinel = flag.String("sentinel", "##", "block delimiter prefix")
		seed     = flag.Int64("seed", 1, "random seed")
	)
	flag.Parse()

	f, err := os.Create(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))

	fmt.Fprintln(f, "*** Monte-Carlo detector simulation, synthetic run ***")
	fmt.Fprintln(f, "geometry: ptel  physics list: standard")
	fmt.Fprintln(f, "")

	event := 0
	for b := 0; b < *blocks; b++ {
		fmt.Fprintf(f, "%s block %d\n", *sentinel, b+1)
		for r := 0; r < *rows; r++ {
			event++
			fmt.Fprintf(f, "%d %.4f %.4f %.4f %.6f %.6f %.6f %.3f %.3f %.3f\n",
				event,
				rng.Float64()*100-50, rng.Float64()*100-50, rng.Float64()*100-50,
				rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1,
				1000.0, rng.Float64()*500, rng.Float64()*500)
		}
		fmt.Fprintf(f, "%s end\n", *sentinel)
	}

	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d blocks x %d rows)\n", *path, *blocks, *rows)
}

// Command bandinfo prints the analytic band average of the two-source field
// at one point, band by band, and the sample-block backends available on
// this machine.
//
// Usage:
//
//	bandinfo [flags] [lo:hi ...]
//
// Without band arguments it prints the bands of the default grid.
//
// Examples:
//
//	bandinfo
//	bandinfo --x 5 --y 5 --d 1 60:250
//	bandinfo --d 0.3 16:60 2000:4000
//	bandinfo --backends
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/internal/backend"
	"github.com/cwbudde/algo-interference/internal/cpu"
	"github.com/cwbudde/algo-interference/sweep"
)

func main() {
	fs := pflag.NewFlagSet("bandinfo", pflag.ExitOnError)
	x := fs.Float64("x", 5, "point x, m")
	y := fs.Float64("y", 5, "point y, m")
	d := fs.Float64("d", 1, "source separation, m")
	backends := fs.Bool("backends", false, "list sample-block backends")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bandinfo [flags] [lo:hi ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints analytic band averages of the two-source field at one point.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if *backends {
		printBackends(os.Stdout, cpu.DetectFeatures())
		return
	}

	bands, err := parseBands(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(bands) == 0 {
		bands = sweep.DefaultGrid().Bands
	}

	if err := printBands(os.Stdout, field.Point{X: *x, Y: *y}, *d, bands); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseBands(args []string) ([]field.Band, error) {
	bands := make([]field.Band, 0, len(args))
	for _, arg := range args {
		lo, hi, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("band %q is not lo:hi", arg)
		}
		l, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", arg, err)
		}
		h, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", arg, err)
		}
		b := field.Band{Lo: l, Hi: h}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("band %q: %w", arg, err)
		}
		bands = append(bands, b)
	}
	return bands, nil
}

func printBands(w io.Writer, p field.Point, d float64, bands []field.Band) error {
	ra, rb := field.SourceDistances(p.X, p.Y, d)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "point (%g, %g) m, d = %g m, r = %.4f / %.4f m\n\n", p.X, p.Y, d, ra, rb)
	fmt.Fprintf(tw, "Band [Hz]\tCenter\tWidth\tMean\tA0(lo)\tA0(center)\tA0(hi)\n")
	fmt.Fprintf(tw, "---------\t------\t-----\t----\t------\t----------\t------\n")

	for _, b := range bands {
		fmt.Fprintf(tw, "%g:%g\t%g\t%g\t%.6f\t%.6f\t%.6f\t%.6f\n",
			b.Lo, b.Hi,
			b.Center(),
			b.Width(),
			field.BandAverage(p.X, p.Y, d, b),
			field.Instantaneous(b.Lo, p.X, p.Y, d),
			field.Instantaneous(b.Center(), p.X, p.Y, d),
			field.Instantaneous(b.Hi, p.X, p.Y, d),
		)
	}
	return tw.Flush()
}

func printBackends(w io.Writer, features cpu.Features) {
	selected := backend.Global.Lookup(features)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s, %d CPUs, SIMD %s (%d lanes)\n\n",
		features.Architecture, features.NumCPU, features.SIMD(), features.SIMD().Lanes())
	fmt.Fprintf(tw, "Backend\tSIMD\tMin CPUs\tPriority\tUsable\tAuto\n")
	fmt.Fprintf(tw, "-------\t----\t--------\t--------\t------\t----\n")

	for _, e := range backend.Global.ListEntries() {
		auto := ""
		if selected != nil && selected.Name == e.Name {
			auto = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%t\t%s\n",
			e.Name,
			e.SIMDLevel,
			e.MinCPUs,
			e.Priority,
			cpu.Supports(features, e.SIMDLevel, e.MinCPUs),
			auto,
		)
	}
	_ = tw.Flush()
}

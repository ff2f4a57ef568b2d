package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/born-ml/backprop/internal/device"
)

func runDevice(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("device", flag.ContinueOnError)
	fs.SetOutput(stdout)
	size := fs.Int("size", 1000, "Matrix size of the CPU benchmark")
	warmup := fs.Int("warmup", 100, "Warm-up products before timing")
	seed := fs.Int64("seed", 1234, "PRNG seed of the benchmark inputs")
	asJSON := fs.Bool("json", false, "Print the adapter report as JSON")
	skipProbe := fs.Bool("skip-probe", false, "Do not probe for a WebGPU adapter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*skipProbe {
		report, err := device.Probe()
		switch {
		case errors.Is(err, device.ErrUnavailable):
			fmt.Fprintln(stdout, "WebGPU adapter not found.")
			log.Printf("probe: %v", err)
		case err != nil:
			return err
		case *asJSON:
			b, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, string(b))
		default:
			fmt.Fprintln(stdout, "WebGPU adapter found!")
			fmt.Fprintln(stdout, report)
		}
	}

	fmt.Fprintln(stdout, "Benchmarking...")
	res, err := device.BenchmarkMatMul(*size, *warmup, *seed)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res)
	return nil
}

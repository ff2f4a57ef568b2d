// Package main provides the backprop CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

const version = "v0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		log.Fatalf("backprop: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "train":
		return runTrain(ctx, args[1:], stdout)
	case "gradcheck":
		return runGradcheck(args[1:], stdout)
	case "demo":
		return runDemo(args[1:], stdout)
	case "device":
		return runDevice(args[1:], stdout)
	case "version":
		fmt.Fprintf(stdout, "backprop %s\n", version)
		return nil
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	}
	usage(stdout)
	return errors.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "backprop - manual backpropagation for small sigmoid networks")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train       Train a model from a YAML config")
	fmt.Fprintln(w, "  gradcheck   Compare analytic gradients with finite differences")
	fmt.Fprintln(w, "  demo        Run one forward and backward pass on the fixed example")
	fmt.Fprintln(w, "  device      Probe for a WebGPU adapter and time a CPU matmul")
	fmt.Fprintln(w, "  version     Show version")
}

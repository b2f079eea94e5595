// Package main provides the synapse CLI.
//
// Usage:
//
//	synapse version
//	synapse neuron
//	synapse xor [-epochs 4000] [-lr 0.01] [-seed 1]
//	synapse train -data iris.txt -structure "4,8,3" -classes 3 [-dashboard]
//	synapse predict -model iris.syn -input "5.1,3.5,1.4,0.2"
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "synapse: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(stdout)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "synapse %s\n", version)
		return nil
	case "neuron":
		return runNeuron(stdout)
	case "xor":
		return runXOR(args[1:], stdout)
	case "train":
		return runTrain(args[1:], stdout)
	case "predict":
		return runPredict(args[1:], stdout)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stdout)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "synapse %s - feed-forward neural networks trained online\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  neuron     Run the single-neuron demo")
	fmt.Fprintln(w, "  xor        Train a 2-2-1 network on XOR")
	fmt.Fprintln(w, "  train      Train a network on a dataset file")
	fmt.Fprintln(w, "  predict    Run a saved model on one input")
}

// openLog returns a logger writing to path, or a discarding logger when path
// is empty. The returned close function is never nil.
func openLog(path string, level slog.Level) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f.Close, nil
}

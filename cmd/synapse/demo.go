package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/synapse/internal/nn"
	"github.com/born-ml/synapse/internal/train"
)

// runNeuron evaluates one neuron with fixed weights, the smallest possible
// network: three inputs feeding a single output.
func runNeuron(stdout io.Writer) error {
	inputs := []float64{1.0, 3.0, 1.5}
	weights := []float64{0.5, -0.5, 1.0}
	const bias = 0.1

	net := nn.New(nn.Config{})
	if err := net.Setup([]int{len(inputs), 1}); err != nil {
		return err
	}
	if err := net.SetNeuron(1, 0, weights, bias); err != nil {
		return err
	}

	out, err := net.ForwardPass(inputs)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "inputs:  %v\n", inputs)
	fmt.Fprintf(stdout, "weights: %v\n", weights)
	fmt.Fprintf(stdout, "bias:    %g\n", bias)
	fmt.Fprintf(stdout, "output:  %g\n", out[0])
	return nil
}

func runXOR(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("xor", flag.ContinueOnError)
	fs.SetOutput(stdout)
	epochs := fs.Int("epochs", 4000, "Passes over the four examples")
	lr := fs.Float64("lr", 0.01, "Learning rate")
	seed := fs.Uint64("seed", 1, "Weight initialization seed")
	optimizer := fs.String("optimizer", train.OptimizerRMSProp, "sgd or rmsprop")
	if err := fs.Parse(args); err != nil {
		return err
	}

	net := nn.New(nn.Config{LearningRate: *lr, Seed: *seed})
	if err := net.Setup([]int{2, 2, 1}); err != nil {
		return err
	}

	history, err := train.Run(context.Background(), net, train.XOR(), train.Config{
		Epochs:    *epochs,
		Optimizer: *optimizer,
	})
	if err != nil {
		return err
	}
	if len(history) > 0 {
		fmt.Fprintf(stdout, "final loss: %.6f after %d epochs\n\n", history[len(history)-1].Loss, len(history))
	}

	for _, ex := range train.XOR() {
		out, err := net.ForwardPass(ex.Input)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%v -> %.4f (want %g)\n", ex.Input, out[0], ex.Target[0])
	}
	fmt.Fprintln(stdout)

	_, err = net.Report().WriteTo(stdout)
	return err
}

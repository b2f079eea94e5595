package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"unicode"

	"github.com/born-ml/synapse/internal/dashboard"
	"github.com/born-ml/synapse/internal/dataset"
	"github.com/born-ml/synapse/internal/nn"
	"github.com/born-ml/synapse/internal/parallel"
	"github.com/born-ml/synapse/internal/serialization"
	"github.com/born-ml/synapse/internal/train"
)

// normalizerKind tags the MinMax file written next to a saved model.
const normalizerKind = "minmax"

func runTrain(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stdout)
	data := fs.String("data", "", "Dataset file (required)")
	structureFlag := fs.String("structure", "", `Layer sizes, e.g. "4,8,3" (required)`)
	epochs := fs.Int("epochs", 100, "Passes over the dataset")
	lr := fs.Float64("lr", nn.DefaultLearningRate, "Learning rate")
	optimizer := fs.String("optimizer", train.OptimizerRMSProp, "sgd or rmsprop")
	activation := fs.String("activation", "leakyrelu", "leakyrelu, relu or tanh")
	classes := fs.Int("classes", 0, "Expand the last column into this many one-hot classes")
	split := fs.Float64("split", 0.8, "Fraction of examples used for training")
	logPath := fs.String("log", "", "Append per-neuron debug lines to this file")
	save := fs.String("save", "", "Write the trained model to this file")
	dash := fs.Bool("dashboard", false, "Show a live terminal dashboard")
	seed := fs.Uint64("seed", 1, "Seed for weights and shuffling")
	par := fs.Bool("parallel", false, "Activate the neurons of wide layers on all CPUs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *data == "" || *structureFlag == "" {
		fs.Usage()
		return errors.New("train: -data and -structure are required")
	}

	structure, err := nn.ParseStructure(*structureFlag)
	if err != nil {
		return err
	}
	set, err := dataset.Load(*data, dataset.Options{Classes: *classes})
	if err != nil {
		return err
	}
	if set.Features != structure[0] || set.Outputs != structure[len(structure)-1] {
		return fmt.Errorf("train: dataset has %d features and %d outputs, structure is %v",
			set.Features, set.Outputs, structure)
	}

	logger, closeLog, err := openLog(*logPath, slog.LevelDebug)
	if err != nil {
		return err
	}
	defer closeLog()

	norm := dataset.Normalize(set)
	set.Shuffle(rand.New(rand.NewPCG(*seed, *seed+1)))
	trainSet, testSet := set.Split(*split)

	netCfg := nn.Config{
		LearningRate: *lr,
		Activation:   nn.ParseActivation(*activation),
		Seed:         *seed,
		Logger:       logger,
	}
	if *par {
		netCfg.Parallel = parallel.DefaultConfig()
	}
	net := nn.New(netCfg)
	if err := net.Setup(structure); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := train.Config{
		Epochs:    *epochs,
		Optimizer: *optimizer,
		Shuffle:   true,
		Seed:      *seed,
	}

	var history []train.Epoch
	if *dash {
		history, err = trainWithDashboard(ctx, net, trainSet, cfg, dashboard.Settings{
			Structure:    structure,
			Epochs:       *epochs,
			LearningRate: *lr,
			Optimizer:    *optimizer,
			Activation:   *activation,
			Examples:     trainSet.Len(),
		})
	} else {
		cfg.OnEpoch = func(e train.Epoch) bool {
			if e.Index%max(1, *epochs/10) == 0 || e.Index == *epochs-1 {
				printEpoch(stdout, e)
			}
			return true
		}
		history, err = train.Run(ctx, net, trainSet.Examples, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintf(stdout, "trained %d epochs on %d examples\n", len(history), trainSet.Len())

	if testSet.Len() > 0 {
		eval, err := train.Evaluate(net, testSet.Examples)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "held-out %d examples: loss %.6f", testSet.Len(), eval.Loss)
		if eval.Classify {
			fmt.Fprintf(stdout, ", accuracy %.2f%%", 100*eval.Accuracy)
		}
		fmt.Fprintln(stdout)
	}

	if *save != "" {
		if err := saveModel(*save, net, norm); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "saved model to %s\n", *save)
	}
	return nil
}

func trainWithDashboard(ctx context.Context, net *nn.Network, set *dataset.Set, cfg train.Config, s dashboard.Settings) ([]train.Epoch, error) {
	d, err := dashboard.New(s)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		history []train.Epoch
		err     error
	}
	done := make(chan result, 1)
	cfg.OnEpoch = d.Observe
	go func() {
		h, err := train.Run(ctx, net, set.Examples, cfg)
		if err != nil {
			d.Log(fmt.Sprintf("stopped: %v", err))
		} else {
			d.Log("training complete, press q to quit")
		}
		done <- result{h, err}
	}()

	// Quitting the dashboard cancels a run still in progress.
	d.Loop()
	cancel()
	r := <-done
	return r.history, r.err
}

func printEpoch(w io.Writer, e train.Epoch) {
	fmt.Fprintf(w, "epoch %5d  loss %.6f  lr %.6g", e.Index+1, e.Loss, e.LearningRate)
	if e.Classify {
		fmt.Fprintf(w, "  accuracy %.2f%%", 100*e.Accuracy)
	}
	fmt.Fprintln(w)
}

// saveModel writes the network checkpoint to path and the input scaling to
// path + ".norm".
func saveModel(path string, net *nn.Network, norm *dataset.MinMax) error {
	if err := writeFile(path, net.SaveCheckpoint); err != nil {
		return err
	}
	return writeFile(path+".norm", func(w io.Writer) error {
		return serialization.Write(w, normalizerKind, norm, nil)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func runPredict(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stdout)
	model := fs.String("model", "", "Model written by train -save (required)")
	input := fs.String("input", "", `Comma separated features, e.g. "5.1,3.5,1.4,0.2" (required)`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *model == "" || *input == "" {
		fs.Usage()
		return errors.New("predict: -model and -input are required")
	}

	x, err := parseVector(*input)
	if err != nil {
		return err
	}

	f, err := os.Open(*model)
	if err != nil {
		return fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()
	net, err := nn.LoadCheckpoint(f, nn.Config{})
	if err != nil {
		return err
	}

	// Models saved without a normalizer take raw features.
	if nf, err := os.Open(*model + ".norm"); err == nil {
		defer nf.Close()
		var norm dataset.MinMax
		if _, err := serialization.Read(nf, normalizerKind, &norm); err != nil {
			return fmt.Errorf("failed to read normalizer: %w", err)
		}
		x = norm.Transform(x)
	}

	out, err := net.ForwardPass(x)
	if err != nil {
		return err
	}

	parts := make([]string, len(out))
	for i, v := range out {
		parts[i] = strconv.FormatFloat(v, 'g', 6, 64)
	}
	fmt.Fprintln(stdout, strings.Join(parts, " "))
	return nil
}

func parseVector(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	x := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("input value %d: %w", i+1, err)
		}
		x[i] = v
	}
	return x, nil
}

// Package dashboard renders a live terminal view of a training run: loss and
// accuracy curves, an epoch gauge, run status and an event log.
package dashboard

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/born-ml/synapse/internal/train"
)

// Settings describes the run shown in the hyperparameter panel.
type Settings struct {
	Structure    []int
	Epochs       int
	LearningRate float64
	Optimizer    string
	Activation   string
	Examples     int
}

// Dashboard is a termui grid fed by train.Config.OnEpoch.
//
// All methods are safe to call from the training goroutine while Loop runs
// on another one.
type Dashboard struct {
	grid *ui.Grid

	lossPlot     *widgets.Plot
	accuracyPlot *widgets.Plot
	gauge        *widgets.Gauge
	status       *widgets.List
	system       *widgets.List
	events       *widgets.Paragraph

	settings Settings
	start    time.Time
	losses   []float64
	accuracy []float64

	mu sync.Mutex
}

// New initializes the terminal and lays out the widgets. Close must be
// called to restore the terminal.
func New(s Settings) (*Dashboard, error) {
	if err := ui.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize termui: %w", err)
	}

	d := &Dashboard{
		settings: s,
		start:    time.Now(),
		// termui plots need at least two points to draw.
		losses:   []float64{0, 0},
		accuracy: []float64{0, 0},
	}

	d.lossPlot = widgets.NewPlot()
	d.lossPlot.Title = "Training Loss (MSE)"
	d.lossPlot.Data = [][]float64{d.losses}
	d.lossPlot.LineColors[0] = ui.ColorRed

	d.accuracyPlot = widgets.NewPlot()
	d.accuracyPlot.Title = "Accuracy (%)"
	d.accuracyPlot.Data = [][]float64{d.accuracy}
	d.accuracyPlot.LineColors[0] = ui.ColorGreen

	d.gauge = widgets.NewGauge()
	d.gauge.Title = "Epochs"
	d.gauge.BarColor = ui.ColorBlue

	d.status = widgets.NewList()
	d.status.Title = "Training Status"
	d.system = widgets.NewList()
	d.system.Title = "System"

	params := widgets.NewList()
	params.Title = "Hyperparameters"
	params.Rows = []string{
		fmt.Sprintf("Structure: %v", s.Structure),
		fmt.Sprintf("Epochs: %d", s.Epochs),
		fmt.Sprintf("Learning Rate: %g", s.LearningRate),
		fmt.Sprintf("Optimizer: %s", s.Optimizer),
		fmt.Sprintf("Activation: %s", s.Activation),
		fmt.Sprintf("Examples: %d", s.Examples),
	}

	d.events = widgets.NewParagraph()
	d.events.Title = "Event Log"
	d.events.Text = "press q to quit"

	d.grid = ui.NewGrid()
	w, h := ui.TerminalDimensions()
	d.grid.SetRect(0, 0, w, h)
	d.grid.Set(
		ui.NewRow(0.45, ui.NewCol(0.5, d.lossPlot), ui.NewCol(0.5, d.accuracyPlot)),
		ui.NewRow(0.3, ui.NewCol(0.34, d.status), ui.NewCol(0.33, d.system), ui.NewCol(0.33, params)),
		ui.NewRow(0.25, ui.NewCol(1.0, ui.NewRow(0.4, d.gauge), ui.NewRow(0.6, d.events))),
	)

	ui.Render(d.grid)
	return d, nil
}

// Observe records one epoch and redraws. It always returns true so it can be
// passed directly as train.Config.OnEpoch.
func (d *Dashboard) Observe(e train.Epoch) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.losses = append(d.losses, e.Loss)
	if e.Classify {
		d.accuracy = append(d.accuracy, 100*e.Accuracy)
	}

	done := e.Index + 1
	d.status.Rows = []string{
		fmt.Sprintf("Epoch: %d / %d", done, d.settings.Epochs),
		fmt.Sprintf("Loss: %.6f", e.Loss),
		fmt.Sprintf("Learning Rate: %.6g", e.LearningRate),
	}
	if e.Classify {
		d.status.Rows = append(d.status.Rows, fmt.Sprintf("Accuracy: %.2f%%", 100*e.Accuracy))
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	elapsed := time.Since(d.start)
	var eta time.Duration
	if done > 0 && d.settings.Epochs > done {
		eta = elapsed / time.Duration(done) * time.Duration(d.settings.Epochs-done)
	}
	d.system.Rows = []string{
		fmt.Sprintf("Elapsed: %v", elapsed.Round(time.Second)),
		fmt.Sprintf("ETA: %v", eta.Round(time.Second)),
		fmt.Sprintf("Heap Alloc: %d MiB", mem.Alloc/1024/1024),
		fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()),
	}

	if d.settings.Epochs > 0 {
		d.gauge.Percent = min(100, done*100/d.settings.Epochs)
	}

	d.lossPlot.Data[0] = downsample(d.losses, d.lossPlot.Inner.Dx())
	d.accuracyPlot.Data[0] = downsample(d.accuracy, d.accuracyPlot.Inner.Dx())
	ui.Render(d.grid)
	return true
}

// Log replaces the event log text.
func (d *Dashboard) Log(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events.Text = message
	ui.Render(d.grid)
}

// Close restores the terminal.
func (d *Dashboard) Close() { ui.Close() }

// Loop blocks until the user presses q or Ctrl-C.
func (d *Dashboard) Loop() {
	events := ui.PollEvents()
	for e := range events {
		switch e.ID {
		case "q", "<C-c>":
			return
		case "<Resize>":
			payload := e.Payload.(ui.Resize)
			d.mu.Lock()
			d.grid.SetRect(0, 0, payload.Width, payload.Height)
			ui.Clear()
			ui.Render(d.grid)
			d.mu.Unlock()
		}
	}
}

// downsample averages data into width bins so long runs fit the plot.
func downsample(data []float64, width int) []float64 {
	if width <= 0 || len(data) <= width {
		return data
	}

	out := make([]float64, width)
	bin := float64(len(data)) / float64(width)
	for i := range out {
		start := int(float64(i) * bin)
		end := min(int(float64(i+1)*bin), len(data))

		if start >= end {
			if i > 0 {
				out[i] = out[i-1]
			}
			continue
		}
		var sum float64
		for _, v := range data[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

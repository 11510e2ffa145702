package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/drakos74/perceptron/infra/config"
	"github.com/drakos74/perceptron/internal/baseline"
	pmath "github.com/drakos74/perceptron/internal/math"
	"github.com/drakos74/perceptron/internal/trainer"
	"github.com/drakos74/perceptron/internal/view"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

const (
	plotHeight = 12
	plotWidth  = 72
)

// run trains a full session without a frame loop and writes the report.
func run(tr *trainer.Trainer, cfg *config.Config, w io.Writer) error {
	if _, ok := tr.Start(cfg.Iterations); !ok {
		return fmt.Errorf("session already running")
	}
	for tr.Running() {
		if _, err := tr.Tick(); err != nil {
			return err
		}
	}

	state := tr.State()
	forest := baseline.NewForest(cfg.Trees)
	if _, err := forest.Train(state.Dataset); err != nil {
		return fmt.Errorf("could not train baseline: %w", err)
	}
	reference, err := forest.Accuracy(state.Dataset)
	if err != nil {
		return fmt.Errorf("could not evaluate baseline: %w", err)
	}

	snapshot, err := view.Build(state.Input())
	if err != nil {
		return err
	}
	return report(w, snapshot, reference)
}

func report(w io.Writer, snapshot view.Snapshot, reference float64) error {
	costs := make([]float64, len(snapshot.Cost.Points))
	for i, p := range snapshot.Cost.Points {
		costs[i] = p.Cost
	}
	if len(costs) > 0 {
		plot := asciigraph.Plot(costs,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(snapshot.Cost.Label))
		if _, err := fmt.Fprintf(w, "%s\n\n", plot); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintf(w, "%s\n\n", snapshot.Cost.Label); err != nil {
		return err
	}

	boundary := "undefined"
	if snapshot.Scatter.Boundary != nil {
		boundary = snapshot.Scatter.Boundary.String()
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"property", "value"})
	for _, edge := range snapshot.Network.Edges {
		table.Append([]string{edge.Input, edge.Label})
	}
	table.Append([]string{"bias", snapshot.Network.BiasLabel})
	table.Append([]string{"activation", snapshot.Network.ActivationLabel})
	table.Append([]string{"learning rate", strconv.FormatFloat(snapshot.Controls.LearningRate, 'f', -1, 64)})
	table.Append([]string{"epochs", strconv.Itoa(snapshot.Progress.Iteration)})
	table.Append([]string{"boundary", boundary})
	table.Append([]string{"cost trend", pmath.FormatN(snapshot.Cost.Trend, 6)})
	table.Append([]string{"accuracy", pmath.Format(snapshot.Accuracy)})
	table.Append([]string{"forest accuracy", pmath.Format(reference)})
	table.Render()
	return nil
}

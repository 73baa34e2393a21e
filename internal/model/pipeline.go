package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Params configures gradient-boosted tree training.
type Params struct {
	Trees          int     `mapstructure:"trees" validate:"gte=1"`
	Leaves         int     `mapstructure:"leaves" validate:"gte=2"`
	MinLeafSamples int     `mapstructure:"min-leaf-samples" validate:"gte=1"`
	LearningRate   float64 `mapstructure:"learning-rate" validate:"gt=0,lte=1"`
}

func DefaultParams() Params {
	return Params{
		Trees:          100,
		Leaves:         20,
		MinLeafSamples: 10,
		LearningRate:   0.2,
	}
}

var (
	ErrNoSamples      = errors.New("no training samples")
	ErrColumnMismatch = errors.New("column mismatch")
)

// Pipeline is a trained regressor: min-max normalization followed by an
// additive ensemble of regression trees. A Pipeline is immutable once built.
type Pipeline struct {
	Columns      []string `json:"columns"`
	Normalizer   MinMax   `json:"normalizer"`
	Base         float64  `json:"base"`
	LearningRate float64  `json:"learning_rate"`
	Trees        []*Tree  `json:"trees"`
}

// Fit trains a pipeline on rows laid out in columns order.
func Fit(columns []string, rows [][]float64, labels []float64, p Params) (*Pipeline, error) {
	if len(rows) == 0 {
		return nil, ErrNoSamples
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("%d rows but %d labels", len(rows), len(labels))
	}
	if p.Trees < 1 || p.Leaves < 2 || p.MinLeafSamples < 1 || p.LearningRate <= 0 {
		return nil, fmt.Errorf("invalid training params: %+v", p)
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d: %w: expected %d values, got %d", i, ErrColumnMismatch, len(columns), len(row))
		}
		if err := finite(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if math.IsNaN(labels[i]) || math.IsInf(labels[i], 0) {
			return nil, fmt.Errorf("row %d: label is not a finite number", i)
		}
	}

	pl := &Pipeline{
		Columns:      slices.Clone(columns),
		Normalizer:   fitMinMax(rows, len(columns)),
		LearningRate: p.LearningRate,
		Trees:        make([]*Tree, 0, p.Trees),
	}

	x := make([][]float64, len(rows))
	for i, row := range rows {
		x[i] = pl.Normalizer.apply(row)
	}

	for _, l := range labels {
		pl.Base += l
	}
	pl.Base /= float64(len(labels))

	current := make([]float64, len(labels))
	for i := range current {
		current[i] = pl.Base
	}

	residuals := make([]float64, len(labels))
	for range p.Trees {
		for i := range residuals {
			residuals[i] = labels[i] - current[i]
		}

		t := growTree(x, residuals, p.Leaves, p.MinLeafSamples)
		pl.Trees = append(pl.Trees, t)

		for i := range current {
			current[i] += p.LearningRate * t.predict(x[i])
		}
	}

	return pl, nil
}

// Predict returns the regression output for a row in Columns order.
func (p *Pipeline) Predict(row []float64) (float64, error) {
	if p == nil {
		return 0, errors.New("model is not loaded")
	}
	if len(row) != len(p.Columns) {
		return 0, fmt.Errorf("%w: expected %d values, got %d", ErrColumnMismatch, len(p.Columns), len(row))
	}
	if err := finite(row); err != nil {
		return 0, err
	}

	x := p.Normalizer.apply(row)
	out := p.Base
	for _, t := range p.Trees {
		out += p.LearningRate * t.predict(x)
	}

	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("prediction is not a finite number: %v", out)
	}

	return out, nil
}

// Validate checks the structural integrity of a pipeline, typically one read
// back from disk, against the expected column layout.
func (p *Pipeline) Validate(columns []string) error {
	if p == nil {
		return errors.New("empty model")
	}
	if !slices.Equal(p.Columns, columns) {
		return fmt.Errorf("%w: model has %v, expected %v", ErrColumnMismatch, p.Columns, columns)
	}
	if len(p.Normalizer.Min) != len(columns) || len(p.Normalizer.Max) != len(columns) {
		return errors.New("normalizer does not match columns")
	}
	if err := finite(p.Normalizer.Min); err != nil {
		return fmt.Errorf("normalizer min: %w", err)
	}
	if err := finite(p.Normalizer.Max); err != nil {
		return fmt.Errorf("normalizer max: %w", err)
	}
	if err := finite([]float64{p.Base, p.LearningRate}); err != nil {
		return err
	}

	for i, t := range p.Trees {
		if err := t.validate(len(columns)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}

	return nil
}

func (t *Tree) validate(width int) error {
	if t == nil || len(t.Nodes) == 0 {
		return errors.New("no nodes")
	}

	for i, n := range t.Nodes {
		if n.leaf() {
			if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
				return fmt.Errorf("node %d: leaf value is not finite", i)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		// Children always follow their parent, which also rules out cycles.
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
	}

	return nil
}

func finite(values []float64) error {
	for j, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %d is not a finite number", j)
		}
	}
	return nil
}

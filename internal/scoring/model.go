package scoring

import (
	"errors"
	"fmt"

	"github.com/spigell/applicant-ranker/internal/features"
)

// Predictor is a trained regressor over features.Columns.
type Predictor interface {
	Predict(row []float64) (float64, error)
}

// ModelScorer scores with a trained model. The prediction is scaled by 100.
type ModelScorer struct {
	predictor Predictor
}

func NewModelScorer(p Predictor) (*ModelScorer, error) {
	if p == nil {
		return nil, errors.New("predictor is required")
	}
	return &ModelScorer{predictor: p}, nil
}

func (s *ModelScorer) Name() string { return NameModel }

func (s *ModelScorer) Score(candidateID string, v features.Vector) (Result, error) {
	prediction, err := s.predictor.Predict(v.Values())
	if err != nil {
		return Result{}, fmt.Errorf("predicting score for candidate %q: %w", candidateID, err)
	}

	return newResult(s.Name(), candidateID, prediction*100, v), nil
}

package shortlist

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ecodeclub/ekit/slice"
	"go.uber.org/zap"

	"github.com/spigell/applicant-ranker/internal/scoring"
)

// DefaultTop is the number of candidates kept when no limit is configured.
const DefaultTop = 10

// Filter represents a single shortlisting step applied to ranked results.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, results []scoring.Result) ([]scoring.Result, Step, error)
}

// Step describes the result of executing a shortlisting step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// Entry is a shortlisted candidate with its 1-based rank.
type Entry struct {
	Rank int `json:"rank" yaml:"rank"`

	scoring.Result `yaml:",inline"`
}

// Config contains the thresholds used to build the default pipeline.
type Config struct {
	Top           int     `mapstructure:"top" validate:"gte=0"`
	MinScore      float64 `mapstructure:"min-score" validate:"gte=0,lte=100"`
	MinEducation  float64 `mapstructure:"min-education" validate:"gte=0,lte=1"`
	MinExperience float64 `mapstructure:"min-experience" validate:"gte=0"`
}

// Steps returns the default pipeline: threshold filters first, then the top-N cut.
// Threshold filters with a zero value are disabled.
func Steps(cfg Config) []Filter {
	top := cfg.Top
	if top <= 0 {
		top = DefaultTop
	}

	steps := []Filter{
		NewMinScore(cfg.MinScore),
		NewMinEducation(cfg.MinEducation),
		NewMinExperience(cfg.MinExperience),
		NewTop(top),
	}

	for _, step := range steps[:3] {
		if t, ok := step.(*thresholdFilter); ok && t.min == 0 {
			step.Disable("no threshold configured")
		}
	}

	return steps
}

// Run executes the enabled steps in order over results that are already
// sorted by score and assigns ranks to the survivors.
func Run(ctx context.Context, log *zap.Logger, steps []Filter, results []scoring.Result) ([]Entry, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			if log != nil {
				log.Debug("shortlist filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, results)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if log != nil {
			log.Info("shortlist step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		results = next
	}

	return Rank(results), nil
}

// Rank numbers results from 1 in their current order.
func Rank(results []scoring.Result) []Entry {
	return slice.Map(results, func(idx int, src scoring.Result) Entry {
		return Entry{Rank: idx + 1, Result: src}
	})
}

type statusProvider interface {
	Status() Status
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

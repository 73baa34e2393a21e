package shortlist

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/ecodeclub/ekit/slice"

	"github.com/spigell/applicant-ranker/internal/scoring"
)

type thresholdFilter struct {
	name    string
	min     float64
	value   func(scoring.Result) float64
	enabled bool
	reason  string
}

func newThreshold(name string, threshold float64, value func(scoring.Result) float64) *thresholdFilter {
	return &thresholdFilter{name: name, min: threshold, value: value, enabled: true}
}

// NewMinScore creates a filter that drops candidates scoring below min.
func NewMinScore(threshold float64) Filter {
	return newThreshold("min-score", threshold, func(r scoring.Result) float64 { return r.Score })
}

// NewMinEducation creates a filter that drops candidates below an education level.
func NewMinEducation(threshold float64) Filter {
	return newThreshold("min-education", threshold, func(r scoring.Result) float64 { return r.Features.EducationLevel })
}

// NewMinExperience creates a filter that drops candidates with fewer years of experience.
func NewMinExperience(threshold float64) Filter {
	return newThreshold("min-experience", threshold, func(r scoring.Result) float64 { return r.Features.ExperienceYears })
}

func (f *thresholdFilter) Name() string { return f.name }

func (f *thresholdFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *thresholdFilter) IsEnabled() bool { return f.enabled }

func (f *thresholdFilter) Validate() error {
	if math.IsNaN(f.min) || f.min < 0 {
		return errors.New("threshold must be a non-negative number")
	}
	return nil
}

func (f *thresholdFilter) Apply(_ context.Context, results []scoring.Result) ([]scoring.Result, Step, error) {
	kept := slice.FindAll(results, func(src scoring.Result) bool {
		return f.value(src) >= f.min
	})

	return kept, Step{Initial: len(results), Dropped: len(results) - len(kept), Left: len(kept)}, nil
}

func (f *thresholdFilter) Status() Status {
	return Status{
		Name:    f.name,
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"min": formatFloat(f.min)},
	}
}

type topFilter struct {
	limit int
}

// NewTop creates a filter that keeps the first limit candidates.
func NewTop(limit int) Filter {
	return &topFilter{limit: limit}
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Disable(string) {}

func (f *topFilter) IsEnabled() bool { return true }

func (f *topFilter) Validate() error {
	if f.limit <= 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

func (f *topFilter) Apply(_ context.Context, results []scoring.Result) ([]scoring.Result, Step, error) {
	initial := len(results)
	if initial > f.limit {
		results = results[:f.limit]
	}

	return results, Step{Initial: initial, Dropped: initial - len(results), Left: len(results)}, nil
}

func (f *topFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"limit": strconv.Itoa(f.limit)},
	}
}

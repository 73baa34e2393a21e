package shortlist

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/spigell/applicant-ranker/internal/features"
	"github.com/spigell/applicant-ranker/internal/scoring"
)

func ranked(n int) []scoring.Result {
	results := make([]scoring.Result, n)
	for i := range results {
		results[i] = scoring.Result{
			CandidateID: fmt.Sprintf("c%d", i),
			Score:       float64(100 - i*5),
			Features: features.Vector{
				EducationLevel:  []float64{1.0, 0.8, 0.6, 0.4, 0.2}[i%5],
				ExperienceYears: float64(i % 7),
			},
		}
	}
	return results
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.CandidateID)
	}
	return out
}

func TestRunDefaultTop(t *testing.T) {
	t.Parallel()

	entries, err := Run(context.Background(), zap.NewNop(), Steps(Config{}), ranked(15))
	require.NoError(t, err)
	require.Len(t, entries, DefaultTop)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
		assert.Equal(t, fmt.Sprintf("c%d", i), e.CandidateID)
	}
}

func TestRunThresholds(t *testing.T) {
	t.Parallel()

	cfg := Config{Top: 2, MinEducation: 0.6, MinExperience: 1}
	entries, err := Run(context.Background(), nil, Steps(cfg), ranked(10))
	require.NoError(t, err)

	// c0 and c7 have no experience; c3, c4, c8 and c9 fall below the education level.
	assert.Equal(t, []string{"c1", "c2"}, ids(entries))
	assert.Equal(t, []int{1, 2}, []int{entries[0].Rank, entries[1].Rank})
}

func TestRunMinScore(t *testing.T) {
	t.Parallel()

	entries, err := Run(context.Background(), nil, Steps(Config{MinScore: 85}), ranked(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"c0", "c1", "c2", "c3"}, ids(entries))
}

func TestRunLogsSteps(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.InfoLevel)
	_, err := Run(context.Background(), zap.New(core), Steps(Config{Top: 3, MinScore: 60}), ranked(12))
	require.NoError(t, err)

	entries := observed.FilterMessage("shortlist step").All()
	require.Len(t, entries, 2)

	minScore := entries[0].ContextMap()
	assert.Equal(t, "min-score", minScore["name"])
	assert.EqualValues(t, 12, minScore["initial"])
	assert.EqualValues(t, 3, minScore["dropped"])
	assert.EqualValues(t, 9, minScore["left"])

	top := entries[1].ContextMap()
	assert.Equal(t, "top", top["name"])
	assert.EqualValues(t, 3, top["left"])
}

func TestRunValidation(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), nil, []Filter{NewTop(0)}, ranked(3))
	assert.ErrorContains(t, err, "top: limit must be positive")

	_, err = Run(context.Background(), nil, []Filter{NewMinScore(-1)}, ranked(3))
	assert.ErrorContains(t, err, "min-score")
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	entries, err := Run(context.Background(), nil, Steps(Config{}), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	statuses := Describe(Steps(Config{Top: 5, MinEducation: 0.8}))
	require.Len(t, statuses, 4)

	assert.Equal(t, "min-score", statuses[0].Name)
	assert.False(t, statuses[0].Enabled)
	assert.Equal(t, "no threshold configured", statuses[0].Reason)

	assert.True(t, statuses[1].Enabled)
	assert.Equal(t, "0.8", statuses[1].Details["min"])

	assert.Equal(t, "top", statuses[3].Name)
	assert.Equal(t, "5", statuses[3].Details["limit"])
}

func TestEntryEncoding(t *testing.T) {
	t.Parallel()

	entry := Entry{Rank: 1, Result: scoring.Result{CandidateID: "c0", Score: 91.5, Reasoning: "Strong skill match(3 matched)"}}

	raw, err := json.Marshal(entry)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.EqualValues(t, 1, flat["rank"])
	assert.Equal(t, "c0", flat["candidate_id"])
	assert.NotContains(t, flat, "Features")

	out, err := yaml.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "candidate_id: c0")
	assert.Contains(t, string(out), "rank: 1")
}

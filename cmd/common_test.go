package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/applicant-ranker/internal/model"
	"github.com/spigell/applicant-ranker/internal/scoring"
	"github.com/spigell/applicant-ranker/internal/shortlist"
)

func TestEncode(t *testing.T) {
	results := []scoring.Result{{CandidateID: "c1", Score: 87.5, Reasoning: "Strong skill match(3 matched)"}}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, "json", results))
	assert.Contains(t, buf.String(), `"candidate_id": "c1"`)
	assert.NotContains(t, buf.String(), "Features")

	buf.Reset()
	require.NoError(t, encode(&buf, "YAML", results))
	assert.Contains(t, buf.String(), "- candidate_id: c1")
	assert.Contains(t, buf.String(), "score: 87.5")

	assert.Error(t, encode(&buf, "csv", results))
}

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig()
	require.NoError(t, err)

	require.NotNil(t, config.Training)
	assert.Equal(t, model.DefaultParams(), *config.Training)
	require.NotNil(t, config.Shortlist)
	assert.Equal(t, shortlist.DefaultTop, config.Shortlist.Top)
}

func TestGetConfigValidation(t *testing.T) {
	viper.Set("training.learning-rate", 0.0)
	t.Cleanup(func() { viper.Set("training.learning-rate", model.DefaultParams().LearningRate) })

	_, err := getConfig()
	assert.ErrorContains(t, err, "LearningRate")
}

func TestNewEngineLexicon(t *testing.T) {
	params := model.DefaultParams()
	config := &Config{
		ModelDir: t.TempDir(),
		Lexicon:  &LexiconConfig{Skills: []string{"Go"}, Extra: []string{"Kafka", "go"}},
		Training: &params,
	}

	engine, err := newEngine(config, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kafka"}, engine.Lexicon().Skills())
	assert.Equal(t, scoring.NameRules, engine.Mode())
}

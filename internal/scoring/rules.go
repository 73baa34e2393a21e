package scoring

import (
	"github.com/spigell/applicant-ranker/internal/features"
)

// Weights of the rule-based score. They sum to 100.
const (
	skillWeight      = 40
	experienceWeight = 30
	educationWeight  = 15
	keywordWeight    = 10
	titleWeight      = 5
)

// RuleScorer is the deterministic fallback used when no model is loaded.
type RuleScorer struct{}

func NewRuleScorer() *RuleScorer {
	return &RuleScorer{}
}

func (s *RuleScorer) Name() string { return NameRules }

// Score never fails.
func (s *RuleScorer) Score(candidateID string, v features.Vector) (Result, error) {
	return newResult(s.Name(), candidateID, RuleScore(v), v), nil
}

// RuleScore is the weighted sum of the features, in [0, 100].
func RuleScore(v features.Vector) float64 {
	return v.SkillMatchRatio*skillWeight +
		ExperienceMatch(v.ExperienceYears)*experienceWeight +
		v.EducationLevel*educationWeight +
		v.KeywordDensity*keywordWeight +
		v.TitleMatchScore*titleWeight
}

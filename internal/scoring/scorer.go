package scoring

import (
	"github.com/spigell/applicant-ranker/internal/features"
)

const (
	NameRules = "rules"
	NameModel = "model"
)

// Result is the scored outcome for one candidate.
type Result struct {
	CandidateID     string   `json:"candidate_id" yaml:"candidate_id"`
	Score           float64  `json:"score" yaml:"score"`
	ExperienceMatch float64  `json:"experience_match" yaml:"experience_match"`
	MatchedSkills   []string `json:"matched_skills" yaml:"matched_skills"`
	MissingSkills   []string `json:"missing_skills" yaml:"missing_skills"`
	Reasoning       string   `json:"reasoning" yaml:"reasoning"`
	Scorer          string   `json:"scorer" yaml:"scorer"`

	// Features is kept for post-ranking filters and is not serialized.
	Features features.Vector `json:"-" yaml:"-"`
}

// Scorer turns a feature vector into a Result. Implementations must be safe
// for concurrent use.
type Scorer interface {
	Name() string
	Score(candidateID string, v features.Vector) (Result, error)
}

func newResult(name, candidateID string, score float64, v features.Vector) Result {
	return Result{
		CandidateID:     candidateID,
		Score:           score,
		ExperienceMatch: ExperienceMatch(v.ExperienceYears),
		MatchedSkills:   v.MatchedSkills,
		MissingSkills:   v.MissingSkills,
		Reasoning:       GenerateReasoning(v),
		Scorer:          name,
		Features:        v,
	}
}

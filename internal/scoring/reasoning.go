package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spigell/applicant-ranker/internal/features"
)

const (
	strongSkillRatio   = 0.8
	moderateSkillRatio = 0.5

	extensiveYears = 5
	relevantYears  = 2

	strongEducation = 0.8
	strongTitle     = 0.7

	fullExperienceYears = 10
)

// ExperienceMatch maps years of experience to [0, 1], saturating at ten years.
func ExperienceMatch(years float64) float64 {
	return math.Min(years/fullExperienceYears, 1)
}

// GenerateReasoning builds the human-readable justification for a vector.
// The skill clause is always present; the others appear when their
// threshold is met.
func GenerateReasoning(v features.Vector) string {
	matched := len(v.MatchedSkills)

	var clauses []string
	switch {
	case v.SkillMatchRatio >= strongSkillRatio:
		clauses = append(clauses, fmt.Sprintf("Strong skill match(%d matched)", matched))
	case v.SkillMatchRatio >= moderateSkillRatio:
		clauses = append(clauses, fmt.Sprintf("Moderate skill match(%d matched)", matched))
	default:
		clauses = append(clauses, fmt.Sprintf("Limited skill match(%d matched)", matched))
	}

	years := strconv.FormatFloat(v.ExperienceYears, 'f', -1, 64)
	switch {
	case v.ExperienceYears >= extensiveYears:
		clauses = append(clauses, fmt.Sprintf("Extensive experience (%s years)", years))
	case v.ExperienceYears >= relevantYears:
		clauses = append(clauses, fmt.Sprintf("Relevant experience (%s years)", years))
	}

	if v.EducationLevel >= strongEducation {
		clauses = append(clauses, "Strong educational background")
	}

	if v.TitleMatchScore >= strongTitle {
		clauses = append(clauses, "Relevant job match")
	}

	return strings.Join(clauses, ". ")
}

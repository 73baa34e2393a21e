package features

import "fmt"

const (
	ColumnSkillMatchRatio = "skillMatchRatio"
	ColumnExperienceYears = "experienceYears"
	ColumnEducationLevel  = "educationLevel"
	ColumnKeywordDensity  = "keywordDensity"
	ColumnTitleMatchScore = "titleMatchScore"
)

// Columns is the column order shared by training and inference.
var Columns = []string{
	ColumnSkillMatchRatio,
	ColumnExperienceYears,
	ColumnEducationLevel,
	ColumnKeywordDensity,
	ColumnTitleMatchScore,
}

// Vector holds the numeric features of one (job, resume) pair.
// Label is set only on training records.
type Vector struct {
	SkillMatchRatio float64 `json:"skillMatchRatio" yaml:"skillMatchRatio" mapstructure:"skillMatchRatio"`
	ExperienceYears float64 `json:"experienceYears" yaml:"experienceYears" mapstructure:"experienceYears"`
	EducationLevel  float64 `json:"educationLevel" yaml:"educationLevel" mapstructure:"educationLevel"`
	KeywordDensity  float64 `json:"keywordDensity" yaml:"keywordDensity" mapstructure:"keywordDensity"`
	TitleMatchScore float64 `json:"titleMatchScore" yaml:"titleMatchScore" mapstructure:"titleMatchScore"`

	MatchedSkills []string `json:"matchedSkills,omitempty" yaml:"matchedSkills,omitempty" mapstructure:"matchedSkills"`
	MissingSkills []string `json:"missingSkills,omitempty" yaml:"missingSkills,omitempty" mapstructure:"missingSkills"`

	Label *float64 `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
}

// Values returns the numeric features in Columns order.
func (v Vector) Values() []float64 {
	return []float64{
		v.SkillMatchRatio,
		v.ExperienceYears,
		v.EducationLevel,
		v.KeywordDensity,
		v.TitleMatchScore,
	}
}

// Labeled returns a copy of v with the label set.
func (v Vector) Labeled(label float64) Vector {
	v.Label = &label
	return v
}

func (v Vector) String() string {
	return fmt.Sprintf("skills=%.2f experience=%g education=%.1f density=%.2f title=%.2f",
		v.SkillMatchRatio, v.ExperienceYears, v.EducationLevel, v.KeywordDensity, v.TitleMatchScore)
}

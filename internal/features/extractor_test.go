package features

import (
	"testing"

	"github.com/spigell/applicant-ranker/internal/applicant"
	"github.com/spigell/applicant-ranker/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seniorJob    = "Senior Software Engineer\nRequires 5+ years experience with C#, SQL, and Azure. Bachelor's degree required."
	seniorResume = "8 years of experience with C#, SQL, Azure, Docker. Master's degree in Computer Science. Software Engineer at Acme."
)

func TestExtractSeniorEngineer(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	v := e.Extract(seniorJob, applicant.Resume{ID: "r1", Text: seniorResume})

	assert.InDelta(t, 1.0, v.SkillMatchRatio, 1e-9)
	assert.InDelta(t, 8.0, v.ExperienceYears, 1e-9)
	assert.InDelta(t, 0.8, v.EducationLevel, 1e-9)
	assert.InDelta(t, 7.0/11.0, v.KeywordDensity, 1e-9)
	assert.InDelta(t, 2.0/3.0, v.TitleMatchScore, 1e-9)
	assert.Equal(t, []string{"C#", "SQL", "Azure"}, v.MatchedSkills)
	assert.Empty(t, v.MissingSkills)
	assert.Nil(t, v.Label)
}

func TestExtractEmptyResume(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	v := e.Extract(seniorJob, applicant.Resume{ID: "empty"})

	assert.Zero(t, v.SkillMatchRatio)
	assert.Zero(t, v.ExperienceYears)
	assert.InDelta(t, 0.2, v.EducationLevel, 1e-9)
	assert.Zero(t, v.KeywordDensity)
	assert.Zero(t, v.TitleMatchScore)
	assert.Empty(t, v.MatchedSkills)
	assert.Equal(t, []string{"C#", "SQL", "Azure"}, v.MissingSkills)
}

func TestExtractEmptyInputs(t *testing.T) {
	t.Parallel()

	v := NewExtractor(nil).Extract("", applicant.Resume{})

	assert.Equal(t, []float64{0, 0, 0.2, 0, 0}, v.Values())
	assert.NotNil(t, v.MatchedSkills)
	assert.NotNil(t, v.MissingSkills)
}

func TestExtractIsDeterministic(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	resume := applicant.Resume{ID: "r1", Text: seniorResume}

	assert.Equal(t, e.Extract(seniorJob, resume), e.Extract(seniorJob, resume))
}

func TestExtractSkillsAreDisjoint(t *testing.T) {
	t.Parallel()

	e := NewExtractor(lexicon.New("Go", "Kafka", "Postgres", "Redis"))
	v := e.Extract("Go, Kafka, Postgres", applicant.Resume{Text: "golang and postgres, redis"})

	assert.Equal(t, []string{"Go", "Postgres"}, v.MatchedSkills)
	assert.Equal(t, []string{"Kafka"}, v.MissingSkills)
	assert.InDelta(t, 2.0/3.0, v.SkillMatchRatio, 1e-9)
}

func TestExperienceYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect float64
	}{
		{name: "none", text: "junior developer", expect: 0},
		{name: "plus and abbreviation", text: "3+ yrs in Go", expect: 3},
		{name: "maximum wins", text: "2 years at A, 11 years total, 4 yr at B", expect: 11},
		{name: "case insensitive", text: "7 YEARS", expect: 7},
		{name: "overflow ignored", text: "99999999999999999999999 years, 6 years", expect: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expect, ExperienceYears(tt.text), 1e-9)
		})
	}
}

func TestEducationLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect float64
	}{
		{name: "doctorate", text: "PhD in Physics", expect: 1.0},
		{name: "highest family wins", text: "Bachelor of Arts, then a Ph.D", expect: 1.0},
		{name: "master", text: "MBA graduate", expect: 0.8},
		{name: "bachelor", text: "bachelor degree", expect: 0.6},
		{name: "associate", text: "Associate degree", expect: 0.4},
		{name: "diploma", text: "college diploma", expect: 0.4},
		{name: "none", text: "self taught", expect: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expect, EducationLevel(tt.text), 1e-9)
		})
	}
}

func TestKeywordDensity(t *testing.T) {
	t.Parallel()

	assert.Zero(t, KeywordDensity("a an the", "anything"))
	assert.Zero(t, KeywordDensity("", "anything"))
	assert.InDelta(t, 0.5, KeywordDensity("build build services", "services"), 1e-9)
	assert.InDelta(t, 1.0, KeywordDensity("Kafka.Redis", "redis kafka"), 1e-9)
}

func TestJobTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Data Analyst", JobTitle("\n   \n  Data Analyst  \nmore"))
	assert.Equal(t, "", JobTitle(""))
	assert.Equal(t, "", JobTitle(" \n\t\n"))
}

func TestTitleMatch(t *testing.T) {
	t.Parallel()

	titles := CandidateTitles("Summary\nsenior data analyst at X\nBackend Developer\n")
	require.Equal(t, []string{"senior data analyst at X", "Backend Developer"}, titles)

	assert.InDelta(t, 1.0, TitleMatch("Data Analyst", titles), 1e-9)
	assert.InDelta(t, 0.5, TitleMatch("Frontend Developer", titles), 1e-9)
	assert.Zero(t, TitleMatch("", titles))
	assert.Zero(t, TitleMatch("Data Analyst", nil))
}

func TestCandidateTitlesIgnoreCase(t *testing.T) {
	t.Parallel()

	titles := CandidateTitles("I love software engineering\nPROJECT MANAGER\nHobbies: chess")
	assert.Equal(t, []string{"I love software engineering", "PROJECT MANAGER"}, titles)
	assert.InDelta(t, 0.5, TitleMatch("Software Engineer", titles), 1e-9)
}

func TestValuesOrder(t *testing.T) {
	t.Parallel()

	v := Vector{
		SkillMatchRatio: 1,
		ExperienceYears: 2,
		EducationLevel:  3,
		KeywordDensity:  4,
		TitleMatchScore: 5,
	}

	require.Len(t, Columns, 5)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, v.Values())

	labeled := v.Labeled(0.7)
	require.NotNil(t, labeled.Label)
	assert.InDelta(t, 0.7, *labeled.Label, 1e-9)
	assert.Nil(t, v.Label)
}

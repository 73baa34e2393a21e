package features

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spigell/applicant-ranker/internal/applicant"
	"github.com/spigell/applicant-ranker/internal/lexicon"
)

var experiencePattern = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)`)

type educationFamily struct {
	level    float64
	keywords []string
}

// Checked in order; the first family with a hit wins.
var educationFamilies = []educationFamily{
	{level: 1.0, keywords: []string{"phd", "ph.d", "doctorate"}},
	{level: 0.8, keywords: []string{"master", "mba", "m.s"}},
	{level: 0.6, keywords: []string{"bachelor", "b.s", "b.a"}},
	{level: 0.4, keywords: []string{"associate", "diploma"}},
}

const defaultEducationLevel = 0.2

var roleIndicators = []string{"engineer", "developer", "manager", "analyst"}

// Extractor turns a job description and a resume into a Vector.
// It is stateless apart from the read-only lexicon and safe for concurrent use.
type Extractor struct {
	lexicon *lexicon.Lexicon
}

// NewExtractor returns an extractor over the given lexicon, or the default
// lexicon when nil.
func NewExtractor(l *lexicon.Lexicon) *Extractor {
	if l == nil {
		l = lexicon.Default()
	}
	return &Extractor{lexicon: l}
}

func (e *Extractor) Lexicon() *lexicon.Lexicon {
	return e.lexicon
}

// Extract never fails: empty or unrecognised text yields zero-valued features
// and the lowest education level.
func (e *Extractor) Extract(job string, resume applicant.Resume) Vector {
	matched, missing, ratio := e.matchSkills(job, resume.Text)

	return Vector{
		SkillMatchRatio: ratio,
		ExperienceYears: ExperienceYears(resume.Text),
		EducationLevel:  EducationLevel(resume.Text),
		KeywordDensity:  KeywordDensity(job, resume.Text),
		TitleMatchScore: TitleMatch(JobTitle(job), CandidateTitles(resume.Text)),
		MatchedSkills:   matched,
		MissingSkills:   missing,
	}
}

func (e *Extractor) matchSkills(job, resume string) ([]string, []string, float64) {
	jobSkills := e.lexicon.Find(job)

	inResume := make(map[string]struct{})
	for _, skill := range e.lexicon.Find(resume) {
		inResume[skill] = struct{}{}
	}

	matched := make([]string, 0, len(jobSkills))
	missing := make([]string, 0, len(jobSkills))
	for _, skill := range jobSkills {
		if _, ok := inResume[skill]; ok {
			matched = append(matched, skill)
			continue
		}
		missing = append(missing, skill)
	}

	if len(jobSkills) == 0 {
		return matched, missing, 0
	}

	return matched, missing, float64(len(matched)) / float64(len(jobSkills))
}

// ExperienceYears returns the largest "<N> years" style figure in text.
func ExperienceYears(text string) float64 {
	best := 0
	for _, m := range experiencePattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > best {
			best = n
		}
	}

	return float64(best)
}

func EducationLevel(text string) float64 {
	lower := strings.ToLower(text)
	for _, family := range educationFamilies {
		for _, kw := range family.keywords {
			if strings.Contains(lower, kw) {
				return family.level
			}
		}
	}

	return defaultEducationLevel
}

func isKeywordDelimiter(r rune) bool {
	switch r {
	case ' ', ',', '.', ';', '\n':
		return true
	}
	return false
}

func keywordTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isKeywordDelimiter)
}

// KeywordDensity is the share of distinct job tokens longer than three
// characters that also appear among the resume tokens.
func KeywordDensity(job, resume string) float64 {
	var jobTokens []string
	seen := make(map[string]struct{})
	for _, token := range keywordTokens(job) {
		if utf8.RuneCountInString(token) <= 3 {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		jobTokens = append(jobTokens, token)
	}

	if len(jobTokens) == 0 {
		return 0
	}

	resumeTokens := make(map[string]struct{})
	for _, token := range keywordTokens(resume) {
		resumeTokens[token] = struct{}{}
	}

	hits := 0
	for _, token := range jobTokens {
		if _, ok := resumeTokens[token]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(jobTokens))
}

// JobTitle returns the first non-empty line of the job description, trimmed.
func JobTitle(job string) string {
	for _, line := range strings.Split(job, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}

	return ""
}

// CandidateTitles returns resume lines that mention a role such as engineer
// or analyst.
func CandidateTitles(resume string) []string {
	var titles []string
	for _, line := range strings.Split(resume, "\n") {
		lower := strings.ToLower(line)
		for _, role := range roleIndicators {
			if strings.Contains(lower, role) {
				titles = append(titles, strings.TrimSpace(line))
				break
			}
		}
	}

	return titles
}

// TitleMatch returns the best token overlap between the job title and any
// candidate title, relative to the job title length.
func TitleMatch(jobTitle string, titles []string) float64 {
	jobTokens := strings.Fields(strings.ToLower(jobTitle))
	if len(jobTokens) == 0 || len(titles) == 0 {
		return 0
	}

	best := 0.0
	for _, title := range titles {
		titleTokens := make(map[string]struct{})
		for _, token := range strings.Fields(strings.ToLower(title)) {
			titleTokens[token] = struct{}{}
		}

		shared := 0
		counted := make(map[string]struct{})
		for _, token := range jobTokens {
			if _, dup := counted[token]; dup {
				continue
			}
			counted[token] = struct{}{}
			if _, ok := titleTokens[token]; ok {
				shared++
			}
		}

		if score := float64(shared) / float64(len(jobTokens)); score > best {
			best = score
		}
	}

	return best
}

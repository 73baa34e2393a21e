package lexicon

import (
	"strings"
)

// DefaultSkills is the built-in skill vocabulary in match order.
var DefaultSkills = []string{
	"C#", ".NET", "ASP.NET", "SQL", "JavaScript", "React", "Angular",
	"Python", "Java", "Azure", "AWS", "Docker", "Kubernetes",
	"Machine Learning", "AI", "REST API", "Microservices",
	"Agile", "Scrum", "Git", "CI/CD", "DevOps", "TypeScript",
}

// Lexicon is an ordered, case-insensitively unique set of skill terms.
// It is read-only after construction and safe for concurrent use.
type Lexicon struct {
	skills []string
	lower  []string
}

// New builds a lexicon from the provided terms. Blank terms are skipped and
// duplicates (ignoring case) keep their first position.
func New(skills ...string) *Lexicon {
	l := &Lexicon{
		skills: make([]string, 0, len(skills)),
		lower:  make([]string, 0, len(skills)),
	}

	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}

		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		l.skills = append(l.skills, skill)
		l.lower = append(l.lower, key)
	}

	return l
}

// Default returns a lexicon with DefaultSkills.
func Default() *Lexicon {
	return New(DefaultSkills...)
}

// Extend returns a new lexicon with extra terms appended after the existing ones.
func (l *Lexicon) Extend(extra ...string) *Lexicon {
	all := make([]string, 0, len(l.skills)+len(extra))
	all = append(all, l.skills...)
	all = append(all, extra...)
	return New(all...)
}

func (l *Lexicon) Len() int {
	return len(l.skills)
}

// Skills returns a copy of the terms in lexicon order.
func (l *Lexicon) Skills() []string {
	out := make([]string, len(l.skills))
	copy(out, l.skills)
	return out
}

// Find returns the terms that occur in text as case-insensitive substrings,
// in lexicon order.
func (l *Lexicon) Find(text string) []string {
	if text == "" {
		return []string{}
	}

	haystack := strings.ToLower(text)
	found := make([]string, 0)
	for i, term := range l.lower {
		if strings.Contains(haystack, term) {
			found = append(found, l.skills[i])
		}
	}

	return found
}

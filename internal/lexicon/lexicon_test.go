package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeduplicatesIgnoringCase(t *testing.T) {
	t.Parallel()

	l := New("Go", "  ", "go", "Rust", "GO", "rust")

	assert.Equal(t, []string{"Go", "Rust"}, l.Skills())
	assert.Equal(t, 2, l.Len())
}

func TestDefaultLexicon(t *testing.T) {
	t.Parallel()

	l := Default()

	require.Equal(t, len(DefaultSkills), l.Len())
	assert.Contains(t, l.Skills(), "Kubernetes")
	assert.Equal(t, "C#", l.Skills()[0])
}

func TestFind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect []string
	}{
		{
			name:   "empty text",
			text:   "",
			expect: []string{},
		},
		{
			name:   "case insensitive in lexicon order",
			text:   "azure, sql and c# required",
			expect: []string{"C#", "SQL", "Azure"},
		},
		{
			name:   "substring match counts",
			text:   "JavaScript developer",
			expect: []string{"JavaScript", "Java"},
		},
	}

	l := New("C#", "SQL", "JavaScript", "Java", "Azure")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, l.Find(tt.text))
		})
	}
}

func TestExtendLeavesBaseUntouched(t *testing.T) {
	t.Parallel()

	base := New("Go")
	extended := base.Extend("Kafka", "go")

	assert.Equal(t, []string{"Go"}, base.Skills())
	assert.Equal(t, []string{"Go", "Kafka"}, extended.Skills())
}

func TestSkillsReturnsCopy(t *testing.T) {
	t.Parallel()

	l := New("Go")
	skills := l.Skills()
	skills[0] = "changed"

	assert.Equal(t, []string{"Go"}, l.Skills())
}

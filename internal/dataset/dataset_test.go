package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResumesJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "resumes.json", `[
		{"id": "alice", "text": "Software Engineer, 6 years of Go"},
		{"id": 42, "text": "Data Analyst"},
		{"text": "no id here"}
	]`)

	resumes, err := LoadResumes(path)
	require.NoError(t, err)
	require.Equal(t, 3, resumes.Len())

	assert.Equal(t, "alice", resumes.Items[0].ID)
	assert.Equal(t, "Software Engineer, 6 years of Go", resumes.Items[0].Text)
	assert.Equal(t, "42", resumes.Items[1].ID)

	_, err = uuid.Parse(resumes.Items[2].ID)
	assert.NoError(t, err, "generated id should be a uuid")
}

func TestLoadResumesYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "resumes.yaml", `
- id: bob
  text: |
    Backend Developer
    3 years with Python
- id: carol
  text: ""
`)

	resumes, err := LoadResumes(path)
	require.NoError(t, err)
	require.Equal(t, []string{"bob", "carol"}, resumes.IDs())
	assert.Equal(t, "Backend Developer\n3 years with Python\n", resumes.Items[0].Text)
	assert.Empty(t, resumes.Items[1].Text)
}

func TestLoadResumesDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b-dave.txt", "QA Engineer")
	writeFile(t, dir, "a-erin.html", "<p>Product Manager</p><p>MBA</p>")
	writeFile(t, dir, "notes.pdf", "binary")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755))

	resumes, err := LoadResumes(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a-erin", "b-dave"}, resumes.IDs())
	assert.Equal(t, "Product Manager\nMBA", resumes.Items[0].Text)
}

func TestLoadResumesErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadResumes(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadResumes(writeFile(t, dir, "resumes.csv", "id,text"))
	assert.ErrorContains(t, err, "unsupported file format")

	_, err = LoadResumes(writeFile(t, dir, "broken.json", `[{"id": "a"`))
	assert.ErrorContains(t, err, "parsing")

	_, err = LoadResumes(writeFile(t, dir, "notext.json", `[{"id": "a"}]`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)

	_, err = LoadResumes(writeFile(t, dir, "dups.json", `[{"id": "a", "text": "x"}, {"id": "a", "text": "y"}]`))
	assert.ErrorContains(t, err, `duplicate candidate id "a"`)
}

func TestLoadTraining(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "train.yaml", `
- skillMatchRatio: 1
  experienceYears: 8
  educationLevel: 0.8
  keywordDensity: 0.6
  titleMatchScore: 0.66
  label: 0.9
- skillMatchRatio: 0
  experienceYears: 0
  educationLevel: 0.2
  keywordDensity: 0
  titleMatchScore: 0
  label: 0
`)

	data, err := LoadTraining(path)
	require.NoError(t, err)
	require.Len(t, data, 2)

	assert.Equal(t, []float64{1, 8, 0.8, 0.6, 0.66}, data[0].Values())
	require.NotNil(t, data[0].Label)
	assert.InDelta(t, 0.9, *data[0].Label, 1e-9)
	require.NotNil(t, data[1].Label)
	assert.Zero(t, *data[1].Label)
}

func TestLoadTrainingRejectsMissingLabel(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "train.json", `[
		{"skillMatchRatio": 1, "experienceYears": 2, "educationLevel": 0.6, "keywordDensity": 0.1, "titleMatchScore": 0}
	]`)

	_, err := LoadTraining(path)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "label")
}

func TestLoadTrainingEmptyList(t *testing.T) {
	t.Parallel()

	data, err := LoadTraining(writeFile(t, t.TempDir(), "train.json", `[]`))
	require.NoError(t, err)
	assert.Empty(t, data)
}

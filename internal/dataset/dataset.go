package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/applicant-ranker/internal/applicant"
	"github.com/spigell/applicant-ranker/internal/features"
	"github.com/spigell/applicant-ranker/internal/source"
)

var resumeFileExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// LoadResumes reads a resume batch from a JSON or YAML list of {id, text}
// records, or from a directory with one text or HTML file per candidate.
// Records without an id get a random UUID.
func LoadResumes(path string) (*applicant.Resumes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var items []applicant.Resume
	if info.IsDir() {
		items, err = resumesFromDir(path)
	} else {
		items, err = resumesFromFile(path)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	for i := range items {
		if strings.TrimSpace(items[i].ID) == "" {
			items[i].ID = uuid.NewString()
		}
		if _, dup := seen[items[i].ID]; dup {
			return nil, fmt.Errorf("%s: duplicate candidate id %q", path, items[i].ID)
		}
		seen[items[i].ID] = struct{}{}
	}

	return applicant.NewResumes(items...), nil
}

func resumesFromFile(path string) ([]applicant.Resume, error) {
	doc, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	if err := validate(resumesSchema, path, doc); err != nil {
		return nil, err
	}

	var items []applicant.Resume
	if err := decode(doc, &items); err != nil {
		return nil, fmt.Errorf("decoding resumes from %s: %w", path, err)
	}

	return items, nil
}

func resumesFromDir(dir string) ([]applicant.Resume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	items := make([]applicant.Resume, 0, len(entries))
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !resumeFileExtensions[ext] {
			continue
		}

		text, err := source.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading resume %s: %w", entry.Name(), err)
		}

		items = append(items, applicant.Resume{
			ID:   strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Text: text,
		})
	}

	return items, nil
}

// LoadTraining reads labeled feature records from a JSON or YAML list.
func LoadTraining(path string) ([]features.Vector, error) {
	doc, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	if err := validate(trainingSchema, path, doc); err != nil {
		return nil, err
	}

	var data []features.Vector
	if err := decode(doc, &data); err != nil {
		return nil, fmt.Errorf("decoding training records from %s: %w", path, err)
	}

	return data, nil
}

func decodeFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(raw, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &doc)
	default:
		return nil, fmt.Errorf("%s: unsupported file format %q, expected .json, .yaml or .yml", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return doc, nil
}

func decode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

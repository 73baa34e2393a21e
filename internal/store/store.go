package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/spigell/applicant-ranker/internal/features"
	"github.com/spigell/applicant-ranker/internal/model"
)

const (
	// FileName is the artifact name inside the store directory.
	FileName = "applicant_ranking_model.json"

	lockSuffix = ".lock"
)

// Store persists a single model artifact in a directory.
type Store struct {
	dir string
}

// DefaultDir returns <user config dir>/ATS/Models, the platform application
// data location.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving application data directory: %w", err)
	}
	return filepath.Join(base, "ATS", "Models"), nil
}

// New opens a store in dir, or DefaultDir when dir is empty. The directory is
// created when missing.
func New(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating model directory %q: %w", dir, err)
	}

	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Exists reports whether an artifact is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.Path())
	return err == nil && !info.IsDir()
}

// Load reads the artifact. It returns ErrNotFound when there is none and a
// *LoadError when the file is unreadable, corrupt or built for other columns.
// A missing artifact is reported before the lock file is touched, so a
// read-only model directory still falls back to rule-based scoring.
func (s *Store) Load() (*model.Pipeline, error) {
	path := s.Path()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}

	lock := flock.New(path + lockSuffix)
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("locking %q: %w", path, err)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &LoadError{Path: path, Message: "reading file", Cause: err}
	}

	var p model.Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &LoadError{Path: path, Message: "decoding model", Cause: err}
	}

	if err := p.Validate(features.Columns); err != nil {
		return nil, &LoadError{Path: path, Message: "incompatible model", Cause: err}
	}

	return &p, nil
}

// Save atomically replaces the artifact with p.
func (s *Store) Save(p *model.Pipeline) error {
	if p == nil {
		return errors.New("nothing to save")
	}

	path := s.Path()

	lock := flock.New(path + lockSuffix)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking %q: %w", path, err)
	}
	defer lock.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %q: %w", path, err)
	}

	return nil
}

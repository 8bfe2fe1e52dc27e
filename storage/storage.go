package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"lifeos/domain"
)

// Store persists one JSON document per identity under a data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if missing.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("storage: data directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// fileFor maps an identity to a deterministic file name. Characters unsafe for
// file names are replaced so "a@x.com" and "a.x@com" cannot collide with paths.
func (s *Store) fileFor(email string) string {
	sanitized := strings.NewReplacer("@", "_", ".", "_", "/", "_", "\\", "_").Replace(email)
	return filepath.Join(s.dir, sanitized+".json")
}

// Load reads the identity's document. A missing or unparsable file yields the
// default empty skeleton, never an error.
func (s *Store) Load(ctx context.Context, email string) (*domain.UserData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.fileFor(email))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewSkeleton(email), nil
		}
		return nil, err
	}
	var data domain.UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.NewSkeleton(email), nil
	}
	return &data, nil
}

// Save overwrites the identity's document. The write goes through a temp file
// and rename so a crash mid-write never leaves a torn document behind.
func (s *Store) Save(ctx context.Context, email string, data *domain.UserData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	path := s.fileFor(email)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	if err := syncFile(tmp); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func syncFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

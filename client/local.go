package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"lifeos/domain"
)

const (
	aggregateFile = "aggregate.json"
	sessionFile   = "session.json"
)

// LocalStore is the client-local persistence fallback plus the small blob
// holding the last authenticated identity.
type LocalStore interface {
	ReadAggregate() *domain.UserData
	WriteAggregate(data *domain.UserData) error
	ReadSession() *domain.User
	WriteSession(user *domain.User) error
	ClearSession() error
}

// Local persists the last-known aggregate and session identity as JSON files
// under a fixed directory. Reads treat absent or unparsable content as "no
// data", never as an error.
type Local struct {
	dir string
}

// NewLocal creates a Local store rooted at dir, creating it if missing.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, errors.New("client: local storage directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Local{dir: dir}, nil
}

// ReadAggregate returns the last locally persisted document, or nil when none
// exists or the stored content fails to parse.
func (l *Local) ReadAggregate() *domain.UserData {
	var data domain.UserData
	if !l.readJSON(aggregateFile, &data) {
		return nil
	}
	return &data
}

// WriteAggregate replaces the stored document wholesale.
func (l *Local) WriteAggregate(data *domain.UserData) error {
	return l.writeJSON(aggregateFile, data)
}

// ReadSession returns the persisted identity, or nil when absent or corrupt.
func (l *Local) ReadSession() *domain.User {
	var user domain.User
	if !l.readJSON(sessionFile, &user) {
		return nil
	}
	if user.Email == "" {
		return nil
	}
	return &user
}

// WriteSession persists the authenticated identity.
func (l *Local) WriteSession(user *domain.User) error {
	return l.writeJSON(sessionFile, user)
}

// ClearSession removes the persisted identity.
func (l *Local) ClearSession() error {
	err := os.Remove(filepath.Join(l.dir, sessionFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) readJSON(name string, v any) bool {
	raw, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false
	}
	return true
}

func (l *Local) writeJSON(name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	path := filepath.Join(l.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

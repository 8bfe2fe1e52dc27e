package api

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"lifeos/domain"
)

var (
	// ErrIdentityExists is returned when registering an already-known identity.
	ErrIdentityExists = errors.New("identity exists")
	// ErrInvalidCredentials is returned on login with an unknown identity or a
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type credentialRecord struct {
	name string
	hash []byte
}

// MemoryCredentials is a process-lifetime credential table. Registered
// identities survive until the server exits; nothing is written to disk.
type MemoryCredentials struct {
	mu    sync.RWMutex
	users map[string]credentialRecord
}

// NewMemoryCredentials creates an empty credential store.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{users: make(map[string]credentialRecord)}
}

func (m *MemoryCredentials) Create(email, password, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[email]; ok {
		return ErrIdentityExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.users[email] = credentialRecord{name: name, hash: hash}
	return nil
}

func (m *MemoryCredentials) Verify(email, password string) (domain.User, error) {
	m.mu.RLock()
	rec, ok := m.users[email]
	m.mu.RUnlock()

	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return domain.User{Email: email, Name: rec.name}, nil
}

func (m *MemoryCredentials) Exists(email string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[email]
	return ok
}

func (m *MemoryCredentials) Profile(email string) (domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.users[email]
	if !ok {
		return domain.User{}, false
	}
	return domain.User{Email: email, Name: rec.name}, true
}

package client

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"lifeos/domain"
)

const (
	defaultSaveDelay   = 1200 * time.Millisecond
	defaultSaveTimeout = 10 * time.Second
)

// Saver collapses rapid successive state changes into a single persisted write
// after an idle window. Only the most recently scheduled document is ever
// written; superseded snapshots are discarded silently. When the debounce
// fires, the write goes to the backend if it is live and falls back to local
// storage on any remote failure.
//
// Known gap, inherited by design: a crash between an optimistic in-memory
// update and the debounced flush loses that update, and two sessions writing
// the same identity resolve by last-write-wins at the store.
type Saver struct {
	remote RemoteService
	local  LocalStore
	delay  time.Duration
	logger *log.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *domain.UserData
}

// NewSaver creates a coordinator with the given idle delay. A non-positive
// delay selects the default.
func NewSaver(remote RemoteService, local LocalStore, delay time.Duration, logger *log.Logger) *Saver {
	if delay <= 0 {
		delay = defaultSaveDelay
	}
	if logger == nil {
		logger = log.New()
	}
	return &Saver{remote: remote, local: local, delay: delay, logger: logger}
}

// Schedule cancels any pending write and arms a new one for the document.
// Fire-and-forget: callers never wait on the outcome.
func (s *Saver) Schedule(data *domain.UserData) {
	if data == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = data
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Flush persists a pending document immediately instead of waiting out the
// idle delay. No-op when nothing is pending.
func (s *Saver) Flush() {
	s.fire()
}

// Cancel drops a pending write without persisting it.
func (s *Saver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

func (s *Saver) fire() {
	s.mu.Lock()
	data := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if data == nil {
		return
	}
	s.persist(data)
}

func (s *Saver) persist(data *domain.UserData) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSaveTimeout)
	defer cancel()

	if s.remote.Alive(ctx) {
		err := s.remote.Save(ctx, data)
		if err == nil {
			return
		}
		s.logger.WithError(err).Warn("remote save failed, falling back to local")
	}

	if err := s.local.WriteAggregate(data); err != nil {
		s.logger.WithError(err).Error("local fallback save failed")
	}
}

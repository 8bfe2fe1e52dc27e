package client

import (
	"context"
	"sync"

	"lifeos/domain"
)

type fakeRemote struct {
	mu       sync.Mutex
	alive    bool
	doc      *domain.UserData
	saveErr  error
	demoErr  error
	saved    []*domain.UserData
	saveCh   chan *domain.UserData
	demoed   int
	demoHook func(email string)
}

func newFakeRemote(alive bool) *fakeRemote {
	return &fakeRemote{alive: alive, saveCh: make(chan *domain.UserData, 16)}
}

func (f *fakeRemote) Alive(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alive
}

func (f *fakeRemote) Load(ctx context.Context, email string) *domain.UserData {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.alive {
		return nil
	}
	return f.doc.Clone()
}

func (f *fakeRemote) Save(ctx context.Context, data *domain.UserData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, data.Clone())
	select {
	case f.saveCh <- data.Clone():
	default:
	}
	return nil
}

func (f *fakeRemote) GenerateDemo(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.demoErr != nil {
		return f.demoErr
	}
	f.demoed++
	if f.demoHook != nil {
		f.demoHook(email)
	}
	return nil
}

func (f *fakeRemote) savedDocs() []*domain.UserData {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.UserData, len(f.saved))
	copy(out, f.saved)
	return out
}

type fakeLocal struct {
	mu       sync.Mutex
	doc      *domain.UserData
	user     *domain.User
	writes   int
	writeErr error
	writeCh  chan *domain.UserData
}

func newFakeLocal() *fakeLocal {
	return &fakeLocal{writeCh: make(chan *domain.UserData, 16)}
}

func (f *fakeLocal) ReadAggregate() *domain.UserData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.Clone()
}

func (f *fakeLocal) WriteAggregate(data *domain.UserData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.doc = data.Clone()
	f.writes++
	select {
	case f.writeCh <- data.Clone():
	default:
	}
	return nil
}

func (f *fakeLocal) ReadSession() *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil
	}
	u := *f.user
	return &u
}

func (f *fakeLocal) WriteSession(user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *user
	f.user = &u
	return nil
}

func (f *fakeLocal) ClearSession() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = nil
	return nil
}

func (f *fakeLocal) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *fakeLocal) stored() *domain.UserData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.Clone()
}

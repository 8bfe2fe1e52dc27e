package client

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"lifeos/domain"
)

var (
	// ErrUnauthenticated is returned by mutations invoked without an identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNoDataLoaded is returned when a task mutation runs before any
	// aggregate has been loaded.
	ErrNoDataLoaded = errors.New("no data loaded")
)

// State describes the data context lifecycle within one session.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateReadyEmpty
)

// DataContext is the single in-memory source of truth for the current user's
// aggregate and the only place allowed to mutate it. Mutations update the
// in-memory copy immediately and schedule a debounced save; the durable write
// may land remotely or in the local fallback.
type DataContext struct {
	remote  RemoteService
	local   LocalStore
	saver   *Saver
	session *Session
	logger  *log.Logger

	mu    sync.RWMutex
	data  *domain.UserData
	state State
}

// NewDataContext wires the data context to its persistence collaborators.
func NewDataContext(remote RemoteService, local LocalStore, saver *Saver, session *Session, logger *log.Logger) *DataContext {
	if logger == nil {
		logger = log.New()
	}
	return &DataContext{
		remote:  remote,
		local:   local,
		saver:   saver,
		session: session,
		logger:  logger,
		state:   StateUninitialized,
	}
}

// State returns the current lifecycle state.
func (d *DataContext) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Snapshot returns a deep copy of the current aggregate, or nil before load.
func (d *DataContext) Snapshot() *domain.UserData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data.Clone()
}

// Tasks returns a copy of the in-memory task list.
func (d *DataContext) Tasks() []domain.Task {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.data == nil {
		return nil
	}
	return append([]domain.Task(nil), d.data.Tasks...)
}

// Refresh replaces the in-memory aggregate for the current identity:
// remote-first, then local fallback, then an empty skeleton. Without an
// identity it clears the context instead of erroring.
func (d *DataContext) Refresh(ctx context.Context) error {
	user, ok := d.session.Current()
	if !ok {
		d.Clear()
		return nil
	}

	d.mu.Lock()
	d.state = StateLoading
	d.mu.Unlock()

	data := d.remote.Load(ctx, user.Email)
	if data == nil {
		data = d.local.ReadAggregate()
		if data != nil {
			d.logger.Debug("refresh served from local fallback")
		}
	}

	state := StateReady
	if data == nil {
		data = domain.NewSkeleton(user.Email)
		if user.Name != "" {
			data.Name = user.Name
		}
		state = StateReadyEmpty
	}
	data.ComputeOverview()

	d.mu.Lock()
	d.data = data
	d.state = state
	d.mu.Unlock()
	return nil
}

// Clear drops the in-memory aggregate, returning to the uninitialized state.
// Called on logout.
func (d *DataContext) Clear() {
	d.saver.Cancel()
	d.mu.Lock()
	d.data = nil
	d.state = StateUninitialized
	d.mu.Unlock()
}

// CreateTask materializes the draft with a generated id and timestamp and
// prepends it, so newest-first display falls out of storage order.
func (d *DataContext) CreateTask(draft domain.TaskDraft) (domain.Task, error) {
	user, ok := d.session.Current()
	if !ok {
		return domain.Task{}, ErrUnauthenticated
	}

	task := domain.NewTask(draft)

	d.mu.Lock()
	if d.data == nil {
		d.data = domain.NewSkeleton(user.Email)
		if user.Name != "" {
			d.data.Name = user.Name
		}
	}
	d.data.Tasks = append([]domain.Task{task}, d.data.Tasks...)
	d.data.ComputeOverview()
	d.state = StateReady
	snapshot := d.data.Clone()
	d.mu.Unlock()

	d.saver.Schedule(snapshot)
	return task, nil
}

// EditTask merges the patch into the matching task. Only provided fields
// change; an unknown id is a no-op.
func (d *DataContext) EditTask(id string, patch domain.TaskPatch) (domain.Task, error) {
	if _, ok := d.session.Current(); !ok {
		return domain.Task{}, ErrUnauthenticated
	}

	d.mu.Lock()
	if d.data == nil {
		d.mu.Unlock()
		return domain.Task{}, ErrNoDataLoaded
	}
	var updated domain.Task
	for i := range d.data.Tasks {
		if d.data.Tasks[i].ID == id {
			patch.Apply(&d.data.Tasks[i])
			updated = d.data.Tasks[i]
			break
		}
	}
	snapshot := d.data.Clone()
	d.mu.Unlock()

	d.saver.Schedule(snapshot)
	return updated, nil
}

// RemoveTask deletes the matching task by id.
func (d *DataContext) RemoveTask(id string) error {
	if _, ok := d.session.Current(); !ok {
		return ErrUnauthenticated
	}

	d.mu.Lock()
	if d.data == nil {
		d.mu.Unlock()
		return ErrNoDataLoaded
	}
	tasks := d.data.Tasks[:0]
	for _, t := range d.data.Tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	d.data.Tasks = tasks
	d.data.ComputeOverview()
	snapshot := d.data.Clone()
	d.mu.Unlock()

	d.saver.Schedule(snapshot)
	return nil
}

// SaveReview upserts the review by date; at most one review exists per day.
func (d *DataContext) SaveReview(review domain.DailyReview) error {
	user, ok := d.session.Current()
	if !ok {
		return ErrUnauthenticated
	}

	d.mu.Lock()
	if d.data == nil {
		d.data = domain.NewSkeleton(user.Email)
	}
	d.data.UpsertReview(review)
	d.data.ComputeOverview()
	snapshot := d.data.Clone()
	d.mu.Unlock()

	d.saver.Schedule(snapshot)
	return nil
}

// ToggleHabit flips the habit's completion for the given day.
func (d *DataContext) ToggleHabit(id, date string) error {
	if _, ok := d.session.Current(); !ok {
		return ErrUnauthenticated
	}

	d.mu.Lock()
	if d.data == nil {
		d.mu.Unlock()
		return ErrNoDataLoaded
	}
	for i := range d.data.Habits {
		if d.data.Habits[i].ID == id {
			d.data.Habits[i].ToggleDate(date)
			break
		}
	}
	snapshot := d.data.Clone()
	d.mu.Unlock()

	d.saver.Schedule(snapshot)
	return nil
}

// InitDemo triggers demo-data generation remotely, then refreshes to observe
// the regenerated aggregate.
func (d *DataContext) InitDemo(ctx context.Context) error {
	user, ok := d.session.Current()
	if !ok {
		return ErrUnauthenticated
	}
	if err := d.remote.GenerateDemo(ctx, user.Email); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

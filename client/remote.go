package client

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"lifeos/domain"
)

// IdentityHeader mirrors the header the backend resolves identities from.
const IdentityHeader = "X-User-Email"

const (
	defaultLivenessTTL  = 3 * time.Second
	defaultProbeTimeout = 2 * time.Second
)

// RemoteService is the remote side of the persistence split. Load returns nil
// instead of an error so callers can fall back to local storage.
type RemoteService interface {
	Alive(ctx context.Context) bool
	Load(ctx context.Context, email string) *domain.UserData
	Save(ctx context.Context, data *domain.UserData) error
	GenerateDemo(ctx context.Context, email string) error
}

// Remote wraps HTTP calls to the backend. A liveness probe result is cached
// for a short window so not every operation pays for a health check.
type Remote struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Logger

	mu          sync.Mutex
	alive       bool
	checkedAt   time.Time
	livenessTTL time.Duration
}

// NewRemote creates a client for the backend at baseURL.
func NewRemote(baseURL string, logger *log.Logger) *Remote {
	if logger == nil {
		logger = log.New()
	}
	return &Remote{
		baseURL:     baseURL,
		httpc:       &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
		livenessTTL: defaultLivenessTTL,
	}
}

// Alive reports whether the backend responded to a recent health probe. The
// result is cached for the liveness window.
func (r *Remote) Alive(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if time.Since(r.checkedAt) < r.livenessTTL {
		return r.alive
	}

	r.alive = r.probe(ctx)
	r.checkedAt = time.Now()
	return r.alive
}

func (r *Remote) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		r.logger.WithError(err).Debug("health probe failed")
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// markDown flips the cached liveness to false so subsequent operations within
// the window fall back to local storage without probing again.
func (r *Remote) markDown() {
	r.mu.Lock()
	r.alive = false
	r.checkedAt = time.Now()
	r.mu.Unlock()
}

// Load fetches the identity's aggregate. It returns nil when the backend is
// not live or on any transport, status, or decode failure; the caller treats
// nil as "fall back to local".
func (r *Remote) Load(ctx context.Context, email string) *domain.UserData {
	if !r.Alive(ctx) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/data", nil)
	if err != nil {
		return nil
	}
	req.Header.Set(IdentityHeader, email)

	resp, err := r.httpc.Do(req)
	if err != nil {
		r.logger.WithError(err).Warn("remote load failed")
		r.markDown()
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		r.logger.WithField("status", resp.StatusCode).Warn("remote load rejected")
		return nil
	}

	var data domain.UserData
	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(&data); err != nil {
		r.logger.WithError(err).Warn("remote load returned malformed data")
		return nil
	}
	return &data
}

// Save writes the full aggregate. The document carries the owning identity so
// the backend can route it.
func (r *Remote) Save(ctx context.Context, data *domain.UserData) error {
	payload, err := sonic.ConfigStd.Marshal(data)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/data", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(IdentityHeader, data.Email)

	resp, err := r.httpc.Do(req)
	if err != nil {
		r.markDown()
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &statusError{status: resp.StatusCode}
	}
	return nil
}

// GenerateDemo asks the backend to regenerate the identity's dataset. It is a
// side-effecting trigger; callers re-load to observe the new aggregate.
func (r *Remote) GenerateDemo(ctx context.Context, email string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/data/generate-demo", nil)
	if err != nil {
		return err
	}
	req.Header.Set(IdentityHeader, email)

	resp, err := r.httpc.Do(req)
	if err != nil {
		r.markDown()
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &statusError{status: resp.StatusCode}
	}
	return nil
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return "unexpected status " + strconv.Itoa(e.status)
}

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lifeos/domain"
)

func TestAliveCachesProbeResult(t *testing.T) {
	var probes atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			probes.Add(1)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	remote := NewRemote(srv.URL, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if !remote.Alive(ctx) {
			t.Fatal("expected live backend")
		}
	}
	if got := probes.Load(); got != 1 {
		t.Fatalf("expected a single probe within the window, got %d", got)
	}
}

func TestAliveReprobesAfterWindow(t *testing.T) {
	var probes atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	remote := NewRemote(srv.URL, nil)
	remote.livenessTTL = 30 * time.Millisecond
	ctx := context.Background()

	remote.Alive(ctx)
	time.Sleep(50 * time.Millisecond)
	remote.Alive(ctx)

	if got := probes.Load(); got != 2 {
		t.Fatalf("expected reprobe after window, got %d probes", got)
	}
}

func TestLoadReturnsNilWhenNotLive(t *testing.T) {
	var dataCalls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		dataCalls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	remote := NewRemote(srv.URL, nil)
	if got := remote.Load(context.Background(), "a@x.com"); got != nil {
		t.Fatalf("expected nil load when not live, got %+v", got)
	}
	if dataCalls.Load() != 0 {
		t.Fatal("expected no data request when liveness is false")
	}
}

func TestLoadReturnsNilOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	remote := NewRemote(srv.URL, nil)
	if got := remote.Load(context.Background(), "a@x.com"); got != nil {
		t.Fatalf("expected nil on server error, got %+v", got)
	}
}

func TestLoadReturnsNilOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write([]byte("{not json"))
	}))
	t.Cleanup(srv.Close)

	remote := NewRemote(srv.URL, nil)
	if got := remote.Load(context.Background(), "a@x.com"); got != nil {
		t.Fatalf("expected nil on malformed body, got %+v", got)
	}
}

func TestSaveSendsIdentityHeader(t *testing.T) {
	var gotIdentity atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		gotIdentity.Store(r.Header.Get(IdentityHeader))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	remote := NewRemote(srv.URL, nil)
	data := domain.NewSkeleton("a@x.com")
	if err := remote.Save(context.Background(), data); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, _ := gotIdentity.Load().(string); got != "a@x.com" {
		t.Fatalf("expected identity header, got %q", got)
	}
}

func TestSaveFailureMarksDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	remote := NewRemote(srv.URL, nil)

	if !remote.Alive(context.Background()) {
		t.Fatal("expected live backend")
	}

	// Transport failures flip the cached liveness without a fresh probe.
	srv.Close()
	if err := remote.Save(context.Background(), domain.NewSkeleton("a@x.com")); err == nil {
		t.Fatal("expected save error after shutdown")
	}
	if remote.Alive(context.Background()) {
		t.Fatal("expected cached liveness to be false after transport failure")
	}
}

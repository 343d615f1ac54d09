package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeIngester struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (f *fakeIngester) Ingest(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return f.err
}

func (f *fakeIngester) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(25 * time.Millisecond)
	}
	return cond()
}

func TestWatcherIngestsNewImage(t *testing.T) {
	dir := t.TempDir()
	ing := &fakeIngester{}

	results := make(chan Result, 8)
	w, err := New(dir, ing, func(r Result) { results <- r })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "shelf.jpg")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF}, 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-results:
		if r.Path != path {
			t.Errorf("Result.Path = %q, want %q", r.Path, path)
		}
		if r.Err != nil {
			t.Errorf("Result.Err = %v, want nil", r.Err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no ingest result within deadline")
	}

	if got := ing.seen(); len(got) != 1 || got[0] != path {
		t.Errorf("ingested paths = %v, want [%s]", got, path)
	}
}

func TestWatcherIgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	ing := &fakeIngester{}

	w, err := New(dir, ing, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, func() bool { return w.Snapshot().EventsSeen > 0 }) {
		t.Fatal("watcher saw no events")
	}
	if got := len(ing.seen()); got != 0 {
		t.Errorf("non-image files must not be ingested, got %d ingests", got)
	}
}

func TestStartMissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "absent"), &fakeIngester{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = w.fsw.Close() }()

	if err := w.Start(context.Background()); err == nil {
		t.Error("Start on a missing directory must fail")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, &fakeIngester{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
}

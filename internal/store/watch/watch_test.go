package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "items.json")
	if err := os.WriteFile(p, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(p, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err != ErrAlreadyStarted {
		t.Fatalf("second start: got %v", err)
	}

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changed():
		t.Fatal("change reported for unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(p, []byte(`[{"title":"Chair"}]`), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-w.Changed():
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

package state

import (
	"path/filepath"
	"testing"
)

func TestResumeLogRoundTrip(t *testing.T) {
	root := t.TempDir()
	r, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(root, "input.geojson")
	if n, err := r.Lines(src); err != nil || n != 0 {
		t.Fatalf("Expected zero lines for unknown path, got %d, %v", n, err)
	}
	if err := r.SetLines(src, 12345); err != nil {
		t.Fatal(err)
	}
	if n, _ := r.Lines(src); n != 12345 {
		t.Errorf("Expected 12345, got %d", n)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	// Survives reopen.
	r, err = Open(root)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if n, _ := r.Lines(src); n != 12345 {
		t.Errorf("Expected 12345 after reopen, got %d", n)
	}
}

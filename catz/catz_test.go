package catz

import (
	"io"
	"path/filepath"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	for _, name := range []string{"plain.geojson", "zipped.geojson.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			w, err := NewWriter(path)
			if err != nil {
				t.Fatal(err)
			}
			want := "{\"type\":\"Feature\"}\n"
			if _, err := w.Write([]byte(want)); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}

			r, err := NewReader(path)
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != want {
				t.Errorf("Expected %q, got %q", want, got)
			}
		})
	}
}

// Package catz opens dataset files with transparent gzip by extension,
// treating "-" as the standard streams.
package catz

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotblauer/polysplit/params"
)

type Reader struct {
	f   *os.File
	gzr *gzip.Reader
	r   io.Reader
}

func NewReader(path string) (*Reader, error) {
	if path == "" || path == "-" {
		return &Reader{r: os.Stdin}, nil
	}
	fi, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	g := &Reader{f: fi, r: fi}
	if strings.HasSuffix(path, ".gz") {
		gzr, err := gzip.NewReader(fi)
		if err != nil {
			fi.Close()
			return nil, err
		}
		g.gzr = gzr
		g.r = gzr
	}
	return g, nil
}

func (g *Reader) Read(p []byte) (int, error) {
	return g.r.Read(p)
}

func (g *Reader) Close() error {
	if g.gzr != nil {
		if err := g.gzr.Close(); err != nil {
			return err
		}
	}
	if g.f != nil {
		return g.f.Close()
	}
	return nil
}

type Writer struct {
	f   *os.File
	gzw *gzip.Writer
	bw  *bufio.Writer
	w   io.Writer
}

func NewWriter(path string) (*Writer, error) {
	if path == "" || path == "-" {
		bw := bufio.NewWriter(os.Stdout)
		return &Writer{bw: bw, w: bw}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return nil, err
	}
	fi, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0660)
	if err != nil {
		return nil, err
	}
	g := &Writer{f: fi}
	if strings.HasSuffix(path, ".gz") {
		gzw, err := gzip.NewWriterLevel(fi, params.DefaultGZipCompressionLevel)
		if err != nil {
			fi.Close()
			return nil, err
		}
		g.gzw = gzw
		g.w = gzw
	} else {
		g.bw = bufio.NewWriter(fi)
		g.w = g.bw
	}
	return g, nil
}

func (g *Writer) Write(p []byte) (int, error) {
	return g.w.Write(p)
}

func (g *Writer) Close() error {
	if g.gzw != nil {
		if err := g.gzw.Close(); err != nil {
			return err
		}
	}
	if g.bw != nil {
		if err := g.bw.Flush(); err != nil {
			return err
		}
	}
	if g.f != nil {
		return g.f.Close()
	}
	return nil
}

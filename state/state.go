// Package state persists a small resume log so re-running a split
// against the same (append-only) source can skip features already
// processed. The record is keyed by absolute source path; changing the
// source behind a recorded path will produce unreasonable outcomes.
package state

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

const dbName = "state.db"

var resumeBucket = []byte("resume")

type ResumeLog struct {
	DB *bbolt.DB
}

// Open opens (creating if needed) the resume database under root.
// The writable conn holds a file lock; concurrent split runs against
// the same datadir will block here.
func Open(root string) (*ResumeLog, error) {
	if err := os.MkdirAll(root, 0770); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(root, dbName), 0600, nil)
	if err != nil {
		return nil, err
	}
	return &ResumeLog{DB: db}, nil
}

func (r *ResumeLog) Close() error {
	return r.DB.Close()
}

// Lines returns the number of input lines recorded as consumed for path.
// An unknown path is zero lines.
func (r *ResumeLog) Lines(path string) (uint64, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	var n uint64
	err = r.DB.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(resumeBucket)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(key)); len(v) == 8 {
			n = binary.BigEndian.Uint64(v)
		}
		return nil
	})
	return n, err
}

// SetLines records n consumed lines for path.
func (r *ResumeLog) SetLines(path string, n uint64) error {
	key, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return r.DB.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(resumeBucket)
		if err != nil {
			return err
		}
		v := make([]byte, 8)
		binary.BigEndian.PutUint64(v, n)
		return bucket.Put([]byte(key), v)
	})
}

// Package recording stores an uploaded answer on local disk for the duration
// of one request.
package recording

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Extension matches the container the browser recorder produces.
const Extension = ".webm"

// File is a request-scoped temporary copy of an uploaded recording.
// Callers must defer Remove as soon as Save returns successfully.
type File struct {
	path string
	size int64
}

// Save copies src into a new uniquely named file under dir. An empty dir
// means os.TempDir(). On error nothing is left behind.
func Save(dir string, src io.Reader) (*File, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, "recording-"+uuid.NewString()+Extension)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "create temp file")
	}

	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, errors.Wrap(err, "write temp file")
	}

	return &File{path: path, size: n}, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Size() int64 { return f.size }

// Remove deletes the file. It is safe to call more than once.
func (f *File) Remove() {
	if f == nil {
		return
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		log.Printf("❌ failed to remove %s: %v", f.path, err)
	}
}

package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// staticFiles serves the recorder page and its assets from one directory.
// Directory listings are never produced.
type staticFiles struct {
	root  string
	index string
}

func newStaticFiles(root, index string) (*staticFiles, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve static dir %s", root)
	}
	if index == "" {
		index = "index.html"
	}
	return &staticFiles{root: abs, index: index}, nil
}

func (s *staticFiles) serveIndex(c *fiber.Ctx) error {
	return s.send(c, filepath.Join(s.root, s.index))
}

func (s *staticFiles) serve(c *fiber.Ctx) error {
	path, ok := s.resolve(c.Params("*"))
	if !ok {
		return fiber.ErrNotFound
	}
	return s.send(c, path)
}

func (s *staticFiles) send(c *fiber.Ctx, path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fiber.ErrNotFound
	}
	return c.SendFile(path)
}

// resolve maps a request path onto the static root. Paths with ".."
// segments, or that land outside the root after cleaning, are refused.
func (s *staticFiles) resolve(rel string) (string, bool) {
	if rel == "" || strings.ContainsRune(rel, 0) {
		return "", false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == ".." {
			return "", false
		}
	}

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	r, err := filepath.Rel(s.root, full)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

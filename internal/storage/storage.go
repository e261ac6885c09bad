// Package storage keeps uploaded recipe images on local disk and hands
// out /uploads/... reference paths for the database.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the reserved path prefix identifying locally stored
// assets, as opposed to external image URLs.
const URLPrefix = "/uploads/"

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"webp": {},
	"avif": {},
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// AllowedFile reports whether the filename carries an allowed image
// extension.
func AllowedFile(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[ext]
	return ok
}

// Store writes and removes image assets under a single directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory assets are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a collision-resistant name and
// returns its /uploads/... reference path. Concurrent uploads of the
// same filename never clash because of the random prefix.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	name := sanitizeFilename(fh.Filename)
	unique := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + name

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, unique))
	if err != nil {
		return "", fmt.Errorf("create asset: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return URLPrefix + unique, nil
}

// Remove best-effort deletes the asset a recipe image references. Only
// /uploads/... paths are touched; external URLs and removal failures
// are ignored.
func (s *Store) Remove(imageURL string) {
	if !strings.HasPrefix(imageURL, URLPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(imageURL, URLPrefix))
	_ = os.Remove(filepath.Join(s.dir, name))
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskboard/internal/domain"

	"github.com/google/uuid"
)

// MaxFileSize caps a single attachment upload.
const MaxFileSize = 10 << 20 // 10MB

// images, PDFs and common document types only
var allowedExts = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".txt": {}, ".zip": {},
}

// FileStore keeps attachment files on local disk under one directory,
// renamed to random names so uploads can never collide or traverse paths.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Accept validates an upload before anything is written.
func (s *FileStore) Accept(originalName string, size int64) error {
	if size > MaxFileSize {
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, MaxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExts[ext]; !ok {
		return fmt.Errorf("%w: file type %q not allowed", domain.ErrValidation, ext)
	}
	return nil
}

// NewPath picks a stored filename for originalName and returns it together
// with the full path to write to.
func (s *FileStore) NewPath(originalName string) (filename, fullPath string) {
	filename = uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	return filename, filepath.Join(s.dir, filename)
}

// Remove deletes a stored file. Paths outside the store directory are
// refused; a missing file is not an error.
func (s *FileStore) Remove(storagePath string) error {
	rel, err := filepath.Rel(s.dir, storagePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("path %q is outside the upload dir", storagePath)
	}
	if err := os.Remove(storagePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

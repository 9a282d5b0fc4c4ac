package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskboard/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func TestAccept(t *testing.T) {
	s := newTestStore(t)

	cases := []struct {
		name string
		size int64
		ok   bool
	}{
		{"report.pdf", 100, true},
		{"photo.JPG", 100, true},
		{"archive.zip", MaxFileSize, true},
		{"huge.pdf", MaxFileSize + 1, false},
		{"script.sh", 100, false},
		{"noext", 100, false},
	}
	for _, tc := range cases {
		err := s.Accept(tc.name, tc.size)
		if tc.ok && err != nil {
			t.Errorf("Accept(%q, %d) = %v; want nil", tc.name, tc.size, err)
		}
		if !tc.ok {
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Accept(%q, %d) = %v; want ErrValidation", tc.name, tc.size, err)
			}
		}
	}
}

func TestNewPathRandomizesName(t *testing.T) {
	s := newTestStore(t)

	name1, path1 := s.NewPath("report.PDF")
	name2, _ := s.NewPath("report.PDF")

	if name1 == name2 {
		t.Fatal("two uploads of the same name got the same stored filename")
	}
	if !strings.HasSuffix(name1, ".pdf") {
		t.Errorf("stored name %q lost its extension", name1)
	}
	if filepath.Dir(path1) != s.Dir() {
		t.Errorf("path %q not under %q", path1, s.Dir())
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	_, path := s.NewPath("note.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file still exists")
	}

	// missing file is tolerated
	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove of missing file: %v", err)
	}

	// escaping the store directory is not
	if err := s.Remove(filepath.Join(s.Dir(), "..", "passwd")); err == nil {
		t.Fatal("Remove accepted a path outside the upload dir")
	}
}

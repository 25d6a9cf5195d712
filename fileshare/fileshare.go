// Package fileshare stores contract documents on a mounted file share.
//
// The share is exposed to the process as a plain directory (an NFS/EFS
// mount in deployment, a temp dir in tests), so operations are ordinary
// filesystem I/O against a flat namespace. Path separators in file names
// are rejected to keep writes inside the share root.
package fileshare

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrBadFileName is returned for empty names or names that escape the
// share's flat namespace.
var ErrBadFileName = errors.New("fileshare: invalid file name")

// Share is a flat directory of contract files.
type Share struct {
	root string
}

// New creates a Share rooted at dir, creating the directory if needed.
func New(dir string) (*Share, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create share root: %w", err)
	}
	return &Share{root: dir}, nil
}

// Save writes the file under its given name, replacing any previous
// content.
func (s *Share) Save(fileName string, body io.Reader) error {
	path, err := s.filePath(fileName)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create share file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("write share file: %w", err)
	}
	return nil
}

// Open returns a reader over the named file. The caller closes it.
func (s *Share) Open(fileName string) (io.ReadCloser, error) {
	path, err := s.filePath(fileName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("open share file: %w", err)
	}
	return f, nil
}

// List returns the names of all files in the share, sorted.
func (s *Share) List() ([]string, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list share: %w", err)
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named file, reporting false when it did not exist.
func (s *Share) Delete(fileName string) (bool, error) {
	path, err := s.filePath(fileName)
	if err != nil {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete share file: %w", err)
	}
	return true, nil
}

// Exists reports whether the named file is present.
func (s *Share) Exists(fileName string) (bool, error) {
	path, err := s.filePath(fileName)
	if err != nil {
		return false, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Share) filePath(fileName string) (string, error) {
	if fileName == "" || fileName != filepath.Base(fileName) || strings.HasPrefix(fileName, ".") {
		return "", ErrBadFileName
	}
	return filepath.Join(s.root, fileName), nil
}

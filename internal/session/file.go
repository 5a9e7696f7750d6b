package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each key in its own file inside a directory.
// The directory is created with mode 0700 and files with mode 0600.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file backing key.
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.dir, key)
}

// Load implements Persister.
func (f *FileStore) Load(key string) (string, bool, error) {
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Save implements Persister.
func (f *FileStore) Save(key, value string) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", f.dir, err)
	}
	if err := os.WriteFile(f.Path(key), []byte(value), 0600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete implements Persister. Deleting a missing key is not an error.
func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

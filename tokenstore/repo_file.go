package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var _ Repo = (*FileRepo)(nil)

// FileRepo keeps the token in a JSON key/value file, the on-disk equivalent
// of browser local storage. Keys other than its own are left untouched.
type FileRepo struct {
	mu   sync.Mutex
	path string
	key  string
}

// NewFileRepo creates a file-backed repo. The file and its directory are
// created on the first Set.
func NewFileRepo(path, key string) (*FileRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}
	return &FileRepo{path: path, key: key}, nil
}

func (r *FileRepo) Get() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return "", err
	}
	return values[r.key], nil
}

func (r *FileRepo) Set(token string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return err
	}
	values[r.key] = token
	return r.write(values)
}

func (r *FileRepo) Delete() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := values[r.key]; !ok {
		return nil
	}
	delete(values, r.key)
	return r.write(values)
}

func (r *FileRepo) read() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read token store: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse token store %s: %w", r.path, err)
	}
	return values, nil
}

// write replaces the file atomically so a crash never leaves half a token.
func (r *FileRepo) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("create token store directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".storage-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp token store: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write token store: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod token store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close token store: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace token store: %w", err)
	}
	return nil
}

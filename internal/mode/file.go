package mode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileState struct {
	Mock      bool      `json:"mock"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore keeps the override in a small JSON file. A missing file means
// the override is off.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Get(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	var st fileState
	if err := json.Unmarshal(raw, &st); err != nil {
		return false, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return st.Mock, nil
}

// Set writes through a temp file and rename so readers never see a partial
// file.
func (f *FileStore) Set(_ context.Context, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(fileState{Mock: on, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".mode-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists credentials as a JSON object in a single file. Every write
// replaces the whole file through a rename so a crash never leaves it half written.
type FileStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	values map[Key]string
}

// NewFileStore returns a store backed by path. The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get(_ context.Context, key Key) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadLocked(); err != nil {
		return "", false, err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *FileStore) Set(ctx context.Context, key Key, value string) error {
	return f.SetMany(ctx, map[Key]string{key: value})
}

func (f *FileStore) SetMany(_ context.Context, values map[Key]string) error {
	return f.update(func(m map[Key]string) {
		for k, v := range values {
			m[k] = v
		}
	})
}

func (f *FileStore) Remove(_ context.Context, keys ...Key) error {
	return f.update(func(m map[Key]string) {
		for _, k := range keys {
			delete(m, k)
		}
	})
}

func (f *FileStore) Clear(ctx context.Context) error {
	return f.Remove(ctx, SessionKeys...)
}

func (f *FileStore) update(mutate func(map[Key]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadLocked(); err != nil {
		return err
	}

	next := make(map[Key]string, len(f.values))
	for k, v := range f.values {
		next[k] = v
	}
	mutate(next)

	if err := f.writeLocked(next); err != nil {
		return err
	}
	f.values = next
	return nil
}

func (f *FileStore) loadLocked() error {
	if f.loaded {
		return nil
	}
	f.values = make(map[Key]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.loaded = true
			return nil
		}
		return fmt.Errorf("read credential file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &f.values); err != nil {
			return fmt.Errorf("decode credential file: %w", err)
		}
	}
	f.loaded = true
	return nil
}

func (f *FileStore) writeLocked(values map[Key]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod credentials: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}

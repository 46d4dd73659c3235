// Package store persists the selection in a durable key/value store and
// loads the tool's configuration.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// KV is a string key/value store.
type KV interface {
	// Get returns the value for key; ok is false when nothing is stored.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// DiskKV is a KV where every key is one file under the base path.
type DiskKV struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDiskKV opens (creating if needed) a store rooted at basePath.
func OpenDiskKV(basePath string) (*DiskKV, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &DiskKV{
		d: diskv.New(diskv.Options{
			BasePath: basePath,
			TempDir:  filepath.Join(basePath, tempDirName),
			// No read cache: another process may rewrite keys under us.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

const tempDirName = ".tmp"

// Get implements KV.
func (k *DiskKV) Get(key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	if !k.d.Has(key) {
		return "", false, nil
	}
	val, err := k.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return string(val), true, nil
}

// Set implements KV. Writes go through a temp file and a rename.
func (k *DiskKV) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := k.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Path returns the file backing key.
func (k *DiskKV) Path(key string) string {
	return filepath.Join(k.basePath, key)
}

// BasePath returns the store directory.
func (k *DiskKV) BasePath() string {
	return k.basePath
}

func validKey(key string) error {
	if key == "" || key == tempDirName || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("store: invalid key %q", key)
	}
	return nil
}

// MemoryKV is an in-process KV, for tests and throwaway sessions.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

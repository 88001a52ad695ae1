package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"skillora/internal/market"
)

const fileExt = ".json"

// FileSystemStore is a filesystem-based implementation of the market.Store interface.
// Each key is a file in the root directory:
//
//	<root>/
//	  <key>.json
//
// Writes are atomic (temp file + rename), so a crash never leaves a torn value.
type FileSystemStore struct {
	root string
	mu   sync.RWMutex
}

// NewFileSystemStore creates a store rooted at root, creating the directory if needed.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileSystemStore{root: root}, nil
}

func (f *FileSystemStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key: %q", key)
	}
	return filepath.Join(f.root, key+fileExt), nil
}

// Get returns the value stored under key, or nil if the file does not exist.
func (f *FileSystemStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put writes value to the key's file.
func (f *FileSystemStore) Put(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return writeFileAtomic(p, value)
}

// Delete removes the key's file. A missing file is not an error.
func (f *FileSystemStore) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every key file in the root directory.
func (f *FileSystemStore) Clear(ctx context.Context) error {
	keys, err := f.Keys(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, k := range keys {
		if err := os.Remove(filepath.Join(f.root, k+fileExt)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", k, err)
		}
	}
	return nil
}

// Keys lists the keys present in the root directory in lexical order.
func (f *FileSystemStore) Keys(_ context.Context) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := os.ReadDir(f.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list store directory: %w", err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op for the filesystem store.
func (f *FileSystemStore) Close() error {
	return nil
}

// writeFileAtomic writes data to destPath using a temp file in the same
// directory followed by a rename.
func writeFileAtomic(destPath string, data []byte) error {
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemStore implements market.Store interface
var _ market.Store = (*FileSystemStore)(nil)

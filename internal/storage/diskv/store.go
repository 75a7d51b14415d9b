// Package diskv stores each key as its own file under a base directory.
package diskv

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/arise/internal/storage"
)

const markerFile = ".arise-store"

type Store struct {
	basePath string
	d        *diskv.Diskv
}

func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.basePath, markerFile), nil, 0600); err != nil {
		return fmt.Errorf("failed to mark store directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	if _, err := os.Stat(filepath.Join(s.basePath, markerFile)); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Get(key string) (string, bool, error) {
	if s.d == nil {
		return "", false, storage.ErrNotLoaded
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	v, err := s.d.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(v), true, nil
}

func (s *Store) Set(key, value string) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	if s.d == nil {
		return nil, storage.ErrNotLoaded
	}
	var keys []string
	for k := range s.d.Keys(nil) {
		if k == markerFile {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return s.basePath
}

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/frame"
)

// FileStore is a file-based assembly store for CLI applications.
// Each assembly is one JSON file named <ID>.json in a base directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/framewright/assemblies/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "framewright", "assemblies")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create assembly dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) assemblyPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Save writes the assembly atomically: a temp file is renamed into
// place so a crash mid-write never leaves a truncated assembly.
func (s *FileStore) Save(ctx context.Context, a *frame.Assembly) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !frame.ValidAssemblyID(a.ID) {
		return errors.New(errors.ErrCodeInvalidAssemblyID, "cannot save assembly with id %q", a.ID)
	}

	data, err := frame.Marshal(a)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "marshal assembly %s", a.ID)
	}

	path := s.assemblyPath(a.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "write assembly %s", a.ID)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "commit assembly %s", a.ID)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, id string) (*frame.Assembly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.assemblyPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "read assembly %s", id)
	}

	a, err := frame.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "parse assembly %s", id)
	}
	return a, nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreRead, err, "read assembly dir")
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		if frame.ValidAssemblyID(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.assemblyPath(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStoreWrite, err, "remove assembly %s", id)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for assembly files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

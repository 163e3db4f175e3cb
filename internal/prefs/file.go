package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// StateDirEnv overrides the state directory (used by tests).
	StateDirEnv = "SELLERCONSOLE_STATE_DIR"
	// FileName is the preferences document inside the state directory.
	FileName = "prefs.yaml"
)

// StateDir returns SELLERCONSOLE_STATE_DIR if set, otherwise the XDG state
// directory for sellerconsole.
func StateDir() string {
	if dir := os.Getenv(StateDirEnv); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "sellerconsole")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "sellerconsole")
}

// FileStore keeps preferences in a single YAML mapping on disk.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by dir/prefs.yaml. An empty dir means StateDir().
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = StateDir()
	}
	if dir == "" {
		return nil, fmt.Errorf("cannot determine state directory")
	}
	return &FileStore{path: filepath.Join(dir, FileName)}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		// corrupt file: start over
		m = map[string]string{}
	}
	m[key] = value
	return s.write(m)
}

func (s *FileStore) SetMany(_ context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.read()
	if err != nil {
		m = map[string]string{}
	}
	for k, v := range values {
		m[k] = v
	}
	return s.write(m)
}

func (s *FileStore) read() (map[string]string, error) {
	m := map[string]string{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing preferences: %w", err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (s *FileStore) write(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return os.Rename(tmp, s.path)
}

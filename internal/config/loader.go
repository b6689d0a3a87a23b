package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem is the file access the loader needs. Tests use MemFS.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MemFS is an in-memory FileSystem.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// WriteFile stores data at path.
func (m *MemFS) WriteFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
}

// ReadFile returns the data stored at path or an fs.ErrNotExist error.
func (m *MemFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// Loader reads a Config from a TOML file.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader on the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}}
}

// NewLoaderWithFS creates a loader on a custom file system.
func NewLoaderWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Load reads path over Default and validates the result. An empty path or
// a missing file returns Default.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode("<data>", data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode fills cfg from data, rejecting unknown keys.
func decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) {
		keys := make([]string, 0, len(serr.Errors))
		for _, e := range serr.Errors {
			keys = append(keys, strings.Join(e.Key(), "."))
			if perr.Line == 0 {
				perr.Line, perr.Column = e.Position()
			}
		}
		perr.Message = "unknown keys: " + strings.Join(keys, ", ")
	}
	return perr
}

// Marshal encodes cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

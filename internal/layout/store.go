package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

// DefaultName is used when no layout name is configured.
const DefaultName = "default"

// Store reads and writes named layouts as TOML files in one directory.
type Store struct {
	dir string
	log *log.Logger
}

// DefaultDir returns the XDG state directory used for layouts.
func DefaultDir() (string, error) {
	// xdg.StateFile creates parent directories; ask for a placeholder file
	// and keep only the directory.
	p, err := xdg.StateFile(filepath.Join("tuidock", "layouts", ".keep"))
	if err != nil {
		return "", fmt.Errorf("resolve layout dir: %w", err)
	}
	return filepath.Dir(p), nil
}

// NewStore returns a store rooted at dir, creating it when needed.
func NewStore(dir string, logger *log.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("layout directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(os.Stderr)
		logger.SetLevel(log.WarnLevel)
	}
	return &Store{dir: dir, log: logger.With("layout_dir", dir)}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file used for the named layout.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, sanitize(name)+".toml")
}

// Load reads a layout. The boolean is false when no file exists yet.
func (s *Store) Load(name string) (*Layout, bool, error) {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("layout load miss", "name", name)
			return nil, false, nil
		}
		s.log.Warn("layout load failed", "name", name, "err", err)
		return nil, false, err
	}
	l, err := DecodeTOML(data)
	if err != nil {
		s.log.Warn("layout decode failed", "name", name, "err", err)
		return nil, false, err
	}
	return l, true, nil
}

// Save writes a layout atomically.
func (s *Store) Save(l *Layout) error {
	if l == nil {
		return errors.New("nil layout")
	}
	if l.Name == "" {
		l.Name = DefaultName
	}
	if err := l.Validate(); err != nil {
		return err
	}
	data, err := l.EncodeTOML()
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	path := s.Path(l.Name)
	tmp, err := os.CreateTemp(s.dir, ".layout-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	s.log.Debug("layout saved", "name", l.Name, "areas", len(l.Areas))
	return nil
}

// Delete removes a saved layout. Missing files are not an error.
func (s *Store) Delete(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// List returns the names of all saved layouts.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".toml"))
	}
	return names, nil
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

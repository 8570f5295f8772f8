// Package workspace manages the staging area shared by all plugins over
// one report run. Each plugin receives a Scope keyed by its identifier so
// intermediate artifacts from different plugins cannot collide.
package workspace

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".genoscribe.lock"

var userHomeDir = os.UserHomeDir

// Workspace is a handle on the staging directory for one run. It is owned
// by the orchestrator and handed to every plugin instance as a Scope.
type Workspace struct {
	root string
	lock *flock.Flock
}

// Prepare ensures the workspace root exists and returns a handle on it.
// An empty root falls back to GENOSCRIBE_WORKSPACE, then XDG_DATA_HOME,
// then ~/.local/share/genoscribe.
func Prepare(root string) (*Workspace, error) {
	if root == "" {
		var err error
		root, err = defaultRoot()
		if err != nil {
			return nil, err
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace path: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0o750); err != nil {
		return nil, fmt.Errorf("create workspace root: %w", err)
	}

	return &Workspace{
		root: absRoot,
		lock: flock.New(filepath.Join(absRoot, lockFileName)),
	}, nil
}

func defaultRoot() (string, error) {
	if dir := os.Getenv("GENOSCRIBE_WORKSPACE"); dir != "" {
		return dir, nil
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "genoscribe"), nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if home == "" {
		return "", errors.New("cannot determine workspace directory")
	}
	return filepath.Join(home, ".local", "share", "genoscribe"), nil
}

// Root returns the absolute workspace root path.
func (w *Workspace) Root() string { return w.root }

// Acquire takes the run lock. A workspace is exclusive to one orchestrator
// run; a second concurrent run on the same root fails here instead of
// silently clobbering artifacts.
func (w *Workspace) Acquire() error {
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock workspace %q: %w", w.root, err)
	}
	if !ok {
		return fmt.Errorf("workspace %q is in use by another run", w.root)
	}
	return nil
}

// Release drops the run lock. Safe to call when the lock was never taken.
func (w *Workspace) Release() error {
	return w.lock.Unlock()
}

// Scope returns the staging area namespaced to one plugin identifier,
// creating its directory on first use.
func (w *Workspace) Scope(identifier string) (*Scope, error) {
	dir := filepath.Join(w.root, identifier)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create workspace scope %q: %w", identifier, err)
	}
	return &Scope{identifier: identifier, dir: dir}, nil
}

// Scope is the slice of the workspace a single plugin reads and writes.
type Scope struct {
	identifier string
	dir        string
}

// Identifier returns the plugin identifier the scope is keyed by.
func (s *Scope) Identifier() string { return s.identifier }

// Dir returns the absolute path of the scope directory.
func (s *Scope) Dir() string { return s.dir }

// Path resolves a file name inside the scope.
func (s *Scope) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Has reports whether a named artifact exists in the scope.
func (s *Scope) Has(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && !info.IsDir()
}

// WriteString writes a text artifact into the scope.
func (s *Scope) WriteString(name, content string) error {
	if err := os.WriteFile(s.Path(name), []byte(content), 0o640); err != nil {
		return fmt.Errorf("write workspace artifact %q: %w", name, err)
	}
	return nil
}

// ReadString reads a text artifact from the scope.
func (s *Scope) ReadString(name string) (string, error) {
	b, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", fmt.Errorf("read workspace artifact %q: %w", name, err)
	}
	return string(b), nil
}

// WriteJSON marshals v into a JSON artifact in the scope.
func (s *Scope) WriteJSON(name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode workspace artifact %q: %w", name, err)
	}
	return s.WriteString(name, string(b))
}

// ReadJSON unmarshals a JSON artifact from the scope into v.
func (s *Scope) ReadJSON(name string, v any) error {
	b, err := os.ReadFile(s.Path(name))
	if err != nil {
		return fmt.Errorf("read workspace artifact %q: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode workspace artifact %q: %w", name, err)
	}
	return nil
}

// WriteCSV writes rows as a CSV artifact in the scope and returns its path.
func (s *Scope) WriteCSV(name string, rows [][]string) (string, error) {
	path := s.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write workspace artifact %q: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write workspace artifact %q: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write workspace artifact %q: %w", name, err)
	}
	return path, nil
}

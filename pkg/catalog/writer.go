package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialized form of a catalog file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a user-supplied format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown catalog format %q (must be json/yaml)", ErrConfiguration, s)
	}
}

// FormatForPath returns override when set, otherwise infers the format from
// the file extension (.yaml/.yml -> YAML, anything else -> JSON).
func FormatForPath(path string, override Format) Format {
	if override != "" {
		return override
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serializes v with 2-space indentation and a trailing newline.
// JSON output does not HTML-escape, so labels stay readable.
func Encode(v any, format Format) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// CheckDestination verifies that path's directory exists and is a directory.
func CheckDestination(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: destination directory %s: %v", ErrIO, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: destination %s is not a directory", ErrIO, dir)
	}
	return nil
}

// WriteFile serializes the catalog and atomically replaces path with it.
// Returns the number of items written.
func WriteFile(path string, v Countable, format Format) (int, error) {
	data, err := Encode(v, FormatForPath(path, format))
	if err != nil {
		return 0, err
	}
	if err := AtomicWrite(path, data, 0644); err != nil {
		return 0, err
	}
	return v.ItemCount(), nil
}

// AtomicWrite replaces path with data. The data is written to a temporary
// file in the destination directory, synced and renamed into place, so
// readers never observe a partial file.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	staged, err := Stage(path, data, perm)
	if err != nil {
		return err
	}
	return staged.Commit()
}

// Staged is a synced temporary file waiting to replace its destination.
// Callers must either Commit or Discard it.
type Staged struct {
	path string
	tmp  string
	done bool
}

// Stage writes data to a temporary file next to path without touching path.
func Stage(path string, data []byte, perm os.FileMode) (*Staged, error) {
	if err := CheckDestination(path); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp file: %v", ErrIO, err)
	}
	staged := &Staged{path: path, tmp: tmp.Name()}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		staged.Discard()
		return nil, fmt.Errorf("%w: write %s: %v", ErrIO, staged.tmp, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		staged.Discard()
		return nil, fmt.Errorf("%w: sync %s: %v", ErrIO, staged.tmp, err)
	}
	if err := tmp.Close(); err != nil {
		staged.Discard()
		return nil, fmt.Errorf("%w: close %s: %v", ErrIO, staged.tmp, err)
	}
	if err := os.Chmod(staged.tmp, perm); err != nil {
		staged.Discard()
		return nil, fmt.Errorf("%w: chmod %s: %v", ErrIO, staged.tmp, err)
	}
	return staged, nil
}

// Path returns the destination the file will replace.
func (s *Staged) Path() string {
	return s.path
}

// Commit renames the temporary file into place.
func (s *Staged) Commit() error {
	if s.done {
		return fmt.Errorf("%w: %s already committed or discarded", ErrIO, s.path)
	}
	s.done = true
	if err := os.Rename(s.tmp, s.path); err != nil {
		os.Remove(s.tmp)
		return fmt.Errorf("%w: rename into %s: %v", ErrIO, s.path, err)
	}
	return nil
}

// Discard removes the temporary file. It is a no-op after Commit.
func (s *Staged) Discard() {
	if s.done {
		return
	}
	s.done = true
	os.Remove(s.tmp)
}

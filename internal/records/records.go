// Package records keeps track of where optional libraries and headers were
// found, so a later session can tell whether an installation changed.
package records

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is a located file and its modification time.
type Record struct {
	Path    string    `yaml:"path"`
	ModTime time.Time `yaml:"mtime"`
}

// Stat builds a Record for an existing file.
func Stat(path string) (Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Record{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Record{Path: path, ModTime: info.ModTime().UTC()}, nil
}

// Equal reports whether two records point at the same unmodified file.
func (r Record) Equal(o Record) bool {
	return r.Path == o.Path && r.ModTime.Equal(o.ModTime)
}

// Set holds the records of one session, keyed by dependency name.
type Set struct {
	Libraries map[string]Record `yaml:"libraries"`
	Headers   map[string]Record `yaml:"headers"`
}

// NewSet returns an empty set.
func NewSet() Set {
	return Set{
		Libraries: make(map[string]Record),
		Headers:   make(map[string]Record),
	}
}

// Changed lists the entries (prefixed "lib:" or "header:") that differ
// between s and prev, including additions and removals. Sorted.
func (s Set) Changed(prev Set) []string {
	var out []string
	out = append(out, diff("lib:", s.Libraries, prev.Libraries)...)
	out = append(out, diff("header:", s.Headers, prev.Headers)...)
	slices.Sort(out)
	return out
}

func diff(prefix string, cur, prev map[string]Record) []string {
	var out []string
	for name, r := range cur {
		if p, ok := prev[name]; !ok || !p.Equal(r) {
			out = append(out, prefix+name)
		}
	}
	for name := range prev {
		if _, ok := cur[name]; !ok {
			out = append(out, prefix+name)
		}
	}
	return out
}

// Load reads a set from path. A missing file yields an empty set.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSet(), nil
	}
	if err != nil {
		return Set{}, fmt.Errorf("read records: %w", err)
	}

	s := NewSet()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("parse records %s: %w", path, err)
	}
	if s.Libraries == nil {
		s.Libraries = make(map[string]Record)
	}
	if s.Headers == nil {
		s.Headers = make(map[string]Record)
	}
	return s, nil
}

// Save writes the set to path, creating parent directories.
func Save(path string, s Set) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create records dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

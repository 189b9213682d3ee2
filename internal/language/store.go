package language

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store persists user defined languages.
type Store interface {
	// Save stores def, replacing any definition with the same name.
	Save(ctx context.Context, def Definition) error
	// Delete removes the definition named name. Deleting a missing
	// definition is not an error.
	Delete(ctx context.Context, name string) error
	// LoadAll returns every readable definition. Definitions that cannot be
	// parsed are skipped and reported in the returned error.
	LoadAll(ctx context.Context) ([]Definition, error)
}

// DirStore keeps one "<name>.json" file per language in a directory.
// LoadAll also picks up hand written .yaml, .yml and .lua definitions.
type DirStore struct {
	dir string
}

// NewDirStore returns a store rooted at dir. The directory is created on
// the first Save.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the store directory.
func (s *DirStore) Dir() string {
	return s.dir
}

// Path returns the file a definition named name is saved to.
func (s *DirStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes def as canonical JSON. The write goes through a temporary
// file so a crash never leaves a truncated definition behind.
func (s *DirStore) Save(ctx context.Context, def Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(def.Name); err != nil {
		return fmt.Errorf("save %q: %w", def.Name, ErrInvalidName)
	}

	data, err := def.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create language dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+def.Name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save %q: %w", def.Name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save %q: %w", def.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %q: %w", def.Name, err)
	}
	if err := os.Rename(tmpName, s.Path(def.Name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save %q: %w", def.Name, err)
	}
	return nil
}

// Delete removes the stored definition for name in every known format.
func (s *DirStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return fmt.Errorf("delete %q: %w", name, ErrInvalidName)
	}

	var errs []error
	for _, ext := range definitionExts {
		err := os.Remove(filepath.Join(s.dir, name+ext))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var definitionExts = []string{".json", ".yaml", ".yml", ".lua"}

// LoadAll reads every definition file in the directory in name order.
// A missing directory yields no definitions.
func (s *DirStore) LoadAll(ctx context.Context) ([]Definition, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read language dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, known := range definitionExts {
			if ext == known {
				names = append(names, e.Name())
				break
			}
		}
	}
	sort.Strings(names)

	var (
		defs []Definition
		errs []error
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return defs, err
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		def, err := ParseFile(name, data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, def)
	}

	return defs, errors.Join(errs...)
}

// MemoryStore is a Store held in memory.
type MemoryStore struct {
	defs map[string]Definition
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{defs: make(map[string]Definition)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, def Definition) error {
	s.defs[def.Name] = def
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, name string) error {
	delete(s.defs, name)
	return nil
}

// LoadAll implements Store.
func (s *MemoryStore) LoadAll(_ context.Context) ([]Definition, error) {
	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		defs = append(defs, s.defs[name])
	}
	return defs, nil
}

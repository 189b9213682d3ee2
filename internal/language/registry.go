package language

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/PasinduAnjana/TextEditor/internal/logging"
	"github.com/PasinduAnjana/TextEditor/internal/renderer/highlight"
)

// Registry maps language names to rule sets. The built-in languages are
// always present and cannot be removed or replaced.
type Registry struct {
	mu     sync.RWMutex
	rules  map[string]*highlight.RuleSet
	custom map[string]Definition
	store  Store
	logger *logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithStore persists added and removed languages to s.
func WithStore(s Store) Option {
	return func(r *Registry) {
		r.store = s
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates a registry holding the built-in languages.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		rules:  make(map[string]*highlight.RuleSet),
		custom: make(map[string]Definition),
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, name := range highlight.BuiltinNames {
		rs, _ := highlight.Builtin(name)
		r.rules[name] = rs
	}
	return r
}

// Load registers every definition found in the store. Definitions that fail
// to load are logged and skipped; the combined error is returned.
func (r *Registry) Load(ctx context.Context) error {
	if r.store == nil {
		return nil
	}

	defs, loadErr := r.store.LoadAll(ctx)
	if loadErr != nil {
		r.logger.Warn("skipped language definitions: %v", loadErr)
	}

	var errs []error
	if loadErr != nil {
		errs = append(errs, loadErr)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, def := range defs {
		if highlight.IsBuiltin(def.Name) {
			r.logger.Warn("stored definition %q shadows a built-in language, ignored", def.Name)
			errs = append(errs, fmt.Errorf("%s: %w", def.Name, ErrBuiltin))
			continue
		}
		rs, err := def.Compile()
		if err != nil {
			r.logger.Warn("stored definition %q: %v", def.Name, err)
			errs = append(errs, err)
			continue
		}
		r.rules[def.Name] = rs
		r.custom[def.Name] = def
		r.logger.Debug("loaded language %q", def.Name)
	}

	return errors.Join(errs...)
}

// Get returns the rule set for name.
func (r *Registry) Get(name string) (*highlight.RuleSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.rules[name]
	return rs, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the built-in languages followed by the custom languages in
// alphabetical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	custom := make([]string, 0, len(r.custom))
	for name := range r.custom {
		custom = append(custom, name)
	}
	sort.Strings(custom)

	return append(append([]string{}, highlight.BuiltinNames...), custom...)
}

// Definition returns the stored form of a custom language.
func (r *Registry) Definition(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.custom[name]
	return def, ok
}

// Add registers def, replacing a custom language of the same name, and
// saves it to the store. Built-in names are rejected with ErrBuiltin.
func (r *Registry) Add(ctx context.Context, def Definition) (*highlight.RuleSet, error) {
	if highlight.IsBuiltin(def.Name) {
		return nil, fmt.Errorf("add %q: %w", def.Name, ErrBuiltin)
	}
	if err := checkName(def.Name); err != nil {
		return nil, fieldError("name", err)
	}
	rs, err := def.Compile()
	if err != nil {
		return nil, err
	}

	if r.store != nil {
		if err := r.store.Save(ctx, def); err != nil {
			return nil, fmt.Errorf("add %q: %w", def.Name, err)
		}
	}

	r.mu.Lock()
	r.rules[def.Name] = rs
	r.custom[def.Name] = def
	r.mu.Unlock()

	r.logger.Info("added language %q (%d keywords)", def.Name, len(def.Keywords))
	return rs, nil
}

// Import parses a definition file and adds it.
func (r *Registry) Import(ctx context.Context, filename string, data []byte) (Definition, error) {
	def, err := ParseFile(filename, data)
	if err != nil {
		return Definition{}, err
	}
	if _, err := r.Add(ctx, def); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Remove unregisters a custom language and deletes it from the store.
func (r *Registry) Remove(ctx context.Context, name string) error {
	if highlight.IsBuiltin(name) {
		return fmt.Errorf("remove %q: %w", name, ErrBuiltin)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.custom[name]; !ok {
		return fmt.Errorf("remove %q: %w", name, ErrNotFound)
	}

	if r.store != nil {
		if err := r.store.Delete(ctx, name); err != nil {
			return fmt.Errorf("remove %q: %w", name, err)
		}
	}

	delete(r.rules, name)
	delete(r.custom, name)
	r.logger.Info("removed language %q", name)
	return nil
}

// Package library holds the symbol libraries a schematic is drawn from.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/OpenTraceLab/OpenTraceSchema/pkg/kicad/legacy"
)

// ErrNotFound is returned when a library or symbol is not known.
var ErrNotFound = errors.New("library: not found")

// Resolver maps the symbol name stored on a placed component to its
// library definition.
type Resolver interface {
	Resolve(name string) (*legacy.Component, bool)
}

// Libraries maps library names to their symbols. It is safe for
// concurrent use.
type Libraries struct {
	mu     sync.RWMutex
	libs   map[string]map[string]*legacy.Component
	logger *slog.Logger
}

// New creates an empty set. A nil logger uses slog.Default.
func New(logger *slog.Logger) *Libraries {
	if logger == nil {
		logger = slog.Default()
	}
	return &Libraries{
		libs:   make(map[string]map[string]*legacy.Component),
		logger: logger,
	}
}

// Add registers every symbol of lib under name, replacing a library of
// the same name. Aliases resolve to their parent symbol.
func (l *Libraries) Add(name string, lib *legacy.Library) {
	symbols := make(map[string]*legacy.Component)
	for _, c := range lib.Components {
		symbols[c.Name] = c
		for _, alias := range c.Aliases {
			if _, ok := symbols[alias]; !ok {
				symbols[alias] = c
			}
		}
	}

	l.mu.Lock()
	l.libs[name] = symbols
	l.mu.Unlock()

	l.logger.Debug("library added", "library", name, "symbols", len(lib.Components))
}

// LoadFiles parses each path and adds it under its base name without
// extension.
func (l *Libraries) LoadFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	parser, err := legacy.NewParser()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := l.load(parser, path); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir recursively loads all .lib files under root.
func (l *Libraries) LoadDir(root string) error {
	parser, err := legacy.NewParser()
	if err != nil {
		return err
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".lib") {
			return nil
		}
		return l.load(parser, path)
	})
}

func (l *Libraries) load(parser *legacy.Parser, path string) error {
	lib, err := parser.ParseLibraryFile(path)
	if err != nil {
		return fmt.Errorf("library: parse %s: %w", path, err)
	}
	l.Add(Name(path), lib)
	return nil
}

// Name derives a library name from its file path.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Component looks up a symbol in one library.
func (l *Libraries) Component(lib, name string) (*legacy.Component, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	symbols, ok := l.libs[lib]
	if !ok {
		return nil, fmt.Errorf("%w: library %q", ErrNotFound, lib)
	}
	c, ok := symbols[name]
	if !ok {
		return nil, fmt.Errorf("%w: symbol %q in library %q", ErrNotFound, name, lib)
	}
	return c, nil
}

// ComponentByName searches every library in name order and returns the
// first match.
func (l *Libraries) ComponentByName(name string) (*legacy.Component, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, lib := range l.sortedNames() {
		if c, ok := l.libs[lib][name]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: symbol %q", ErrNotFound, name)
}

// Resolve implements Resolver. Names of the form "lib:name" are looked
// up in that library first, then by bare name everywhere.
func (l *Libraries) Resolve(name string) (*legacy.Component, bool) {
	if lib, sym, ok := strings.Cut(name, ":"); ok {
		if c, err := l.Component(lib, sym); err == nil {
			return c, true
		}
		name = sym
	}
	c, err := l.ComponentByName(name)
	return c, err == nil
}

// Names returns the registered library names, sorted.
func (l *Libraries) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortedNames()
}

// Len returns the number of distinct symbols across all libraries,
// aliases excluded.
func (l *Libraries) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, symbols := range l.libs {
		seen := make(map[*legacy.Component]struct{}, len(symbols))
		for _, c := range symbols {
			seen[c] = struct{}{}
		}
		n += len(seen)
	}
	return n
}

func (l *Libraries) sortedNames() []string {
	names := make([]string, 0, len(l.libs))
	for name := range l.libs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package fibonacci

import (
	"fmt"
	"sort"
	"sync"
)

// CalculatorFactory hands out calculators by short name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every registered calculator keyed by name.
	GetAll() map[string]Calculator
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() coreCalculator{}
)

// RegisterCalculator makes a backend available to factories created
// afterwards. Backends register themselves from init functions; the gmp
// backend only does so when built with the gmp tag.
func RegisterCalculator(name string, creator func() coreCalculator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = creator
}

// DefaultFactory is the CalculatorFactory backed by the backend registry.
// Calculators are created lazily and cached.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() coreCalculator
	cache    map[string]Calculator
}

// NewDefaultFactory snapshots the registry into a new factory.
func NewDefaultFactory() *DefaultFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	creators := make(map[string]func() coreCalculator, len(registry))
	for k, v := range registry {
		creators[k] = v
	}
	return &DefaultFactory{creators: creators, cache: make(map[string]Calculator)}
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns a process-wide factory.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() { globalFactory = NewDefaultFactory() })
	return globalFactory
}

// Get returns the calculator registered under name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	if calc, ok := f.cache[name]; ok {
		f.mu.RUnlock()
		return calc, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if calc, ok := f.cache[name]; ok {
		return calc, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown calculator %q (available: %v)", name, f.listLocked())
	}
	calc := NewCalculator(creator())
	f.cache[name] = calc
	return calc, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

func (f *DefaultFactory) listLocked() []string {
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered calculator keyed by name.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	all := make(map[string]Calculator)
	for _, name := range f.List() {
		if calc, err := f.Get(name); err == nil {
			all[name] = calc
		}
	}
	return all
}

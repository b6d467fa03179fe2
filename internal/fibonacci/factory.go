package fibonacci

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

// CalculatorFactory resolves registry keys to calculator instances.
type CalculatorFactory interface {
	// List returns the registered keys in sorted order, for help text and
	// completion.
	List() []string

	// DefaultOrder returns the keys in canonical comparison order: the
	// order a full comparison run executes them.
	DefaultOrder() []string

	// Get returns a calculator for the key, or an error naming the valid
	// keys. Every call returns a fresh instance with its own memo table.
	Get(name string) (Calculator, error)
}

// defaultBuilders maps registry keys to constructors. Build-tagged strategy
// files extend it from init.
var defaultBuilders = map[string]func() Calculator{
	KeyIterative: func() Calculator { return NewCalculator(&IterativeAddition{}) },
	KeyNaive:     func() Calculator { return NewCalculator(&NaiveRecursive{}) },
	KeyMemoized:  func() Calculator { return NewCalculator(&MemoizedRecursive{}) },
	KeyBottomUp:  func() Calculator { return NewCalculator(&BottomUpTable{}) },
}

// defaultOrder is the canonical comparison order: the O(1)-space baseline
// first, the exponential demonstration second, then the two table fills.
// Strategies registered from build-tagged files run after these.
var defaultOrder = []string{KeyIterative, KeyNaive, KeyMemoized, KeyBottomUp}

// registerDefault adds a strategy to the default factory. Called from init
// in build-tagged files; not safe for use after init.
func registerDefault(key string, build func() Calculator) {
	defaultBuilders[key] = build
	defaultOrder = append(defaultOrder, key)
}

// DefaultFactory is the standard CalculatorFactory over the built-in
// strategies.
type DefaultFactory struct {
	builders map[string]func() Calculator
	order    []string
}

var _ CalculatorFactory = (*DefaultFactory)(nil)

// NewDefaultFactory returns a factory over the registered strategies.
func NewDefaultFactory() *DefaultFactory {
	builders := make(map[string]func() Calculator, len(defaultBuilders))
	for k, b := range defaultBuilders {
		builders[k] = b
	}
	order := make([]string, len(defaultOrder))
	copy(order, defaultOrder)
	return &DefaultFactory{builders: builders, order: order}
}

// Register adds or replaces a strategy under the given key. The comparison
// order gains unknown keys at the end.
func (f *DefaultFactory) Register(key string, build func() Calculator) {
	if _, known := f.builders[key]; !known {
		f.order = append(f.order, key)
	}
	f.builders[key] = build
}

// List returns the registered keys in sorted order.
func (f *DefaultFactory) List() []string {
	keys := make([]string, 0, len(f.builders))
	for k := range f.builders {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefaultOrder returns the keys in canonical comparison order.
func (f *DefaultFactory) DefaultOrder() []string {
	order := make([]string, len(f.order))
	copy(order, f.order)
	return order
}

// Get returns a fresh calculator for the key. Fresh instances are what make
// parallel comparison runs safe; two Get calls never share a memo table.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	build, ok := f.builders[name]
	if !ok {
		return nil, apperrors.ValidationError{
			Field:   "algo",
			Message: fmt.Sprintf("unknown strategy %q (choose from %s)", name, strings.Join(f.List(), ", ")),
		}
	}
	return build(), nil
}

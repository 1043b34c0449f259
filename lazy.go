package strata

import (
	"fmt"
	"sync"
)

// Lazy wraps a value that is produced on first access and cached.
type Lazy[T any] struct {
	name     string
	get      func() (T, error)
	once     sync.Once
	value    T
	err      error
	resolved bool
	mu       sync.RWMutex
}

// NewLazy creates a lazy dependency resolved from r on first Get.
func NewLazy[T any](r Resolver, key Key[T]) *Lazy[T] {
	return &Lazy[T]{
		name: key.String(),
		get: func() (T, error) {
			return ResolveKey(r, key)
		},
	}
}

// NewLazyFunc creates a lazy value produced by fn on first Get.
func NewLazyFunc[T any](name string, fn func() (T, error)) *Lazy[T] {
	return &Lazy[T]{name: name, get: fn}
}

// Get produces the value on first call; later calls return the cached
// value or error.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		value, err := l.get()

		l.mu.Lock()
		l.value, l.err, l.resolved = value, err, true
		l.mu.Unlock()
	})

	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.value, l.err
}

// MustGet returns the value, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.name, err))
	}

	return value
}

// IsResolved returns true once Get has run.
func (l *Lazy[T]) IsResolved() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.resolved
}

// Name returns the name of the dependency.
func (l *Lazy[T]) Name() string {
	return l.name
}

package module

import (
	"fmt"
	"sync"
)

var (
	mu    sync.RWMutex
	ports = map[string]any{}
)

// Register publishes a module's ports under its name; a later call replaces them
func Register(name string, p any) {
	mu.Lock()
	defer mu.Unlock()
	ports[name] = p
}

// Lookup returns the ports registered under name as T
func Lookup[T any](name string) (T, error) {
	mu.RLock()
	p, ok := ports[name]
	mu.RUnlock()
	v, typed := p.(T)
	switch {
	case !ok:
		return v, fmt.Errorf("module %s: not registered", name)
	case !typed:
		return v, fmt.Errorf("module %s: ports are %T", name, p)
	}
	return v, nil
}

// Reset forgets every registration
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ports = map[string]any{}
}

package sanitize

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps sanitizer names to functions.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// NewDefaultRegistry returns a registry holding the built-in sanitizers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(NameText, Text)
	r.MustRegister(NameTextarea, Textarea)
	r.MustRegister(NameEmail, Email)
	r.MustRegister(NameURL, URL)
	r.MustRegister(NameKey, Key)
	r.MustRegister(NameInt, Int)
	r.MustRegister(NameFloat, Float)
	r.MustRegister(NameBool, Bool)
	r.MustRegister(NameHTML, HTML)
	r.MustRegister(NameColor, Color)
	r.MustRegister(NameDate, Date)
	r.MustRegister(NameRaw, Raw)
	return r
}

// Register adds or replaces a sanitizer.
func (r *Registry) Register(name string, fn Func) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("sanitize: name is required")
	}
	if fn == nil {
		return fmt.Errorf("sanitize: function for %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Get returns the sanitizer registered under name.
func (r *Registry) Get(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/model"
	rendertemplate "github.com/goliatone/go-formfields/pkg/render/template"
	"github.com/goliatone/go-formfields/pkg/schema"
)

// Renderer writes the control markup for one field into buf. Label,
// description and error chrome are added around it by the HTML renderer.
type Renderer func(buf *bytes.Buffer, field model.Field, data ComponentData) error

// ComponentData carries what component renderers need beyond the field.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// Control holds precomputed template values: escaped attribute string,
	// aria wiring and option state.
	Control map[string]any
}

// Descriptor bundles a renderer with its registry name.
type Descriptor struct {
	Name     string
	Renderer Renderer
	// Chrome is false for controls that render bare, like hidden inputs.
	Chrome bool
	// Group renders the chrome as a fieldset with a legend.
	Group bool
}

// Registry maps component names to descriptors.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Clone returns a copy that can be changed without affecting r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates descriptor with name, replacing any existing entry.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = descriptor
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	return descriptor, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ForType returns the component name a field type renders with. A component
// registered under the type name itself takes precedence.
func (r *Registry) ForType(fieldType schema.FieldType) string {
	if _, ok := r.Descriptor(string(fieldType)); ok {
		return string(fieldType)
	}
	switch fieldType {
	case schema.FieldTypeMultiselect:
		return NameSelect
	default:
		return NameInput
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package tools

import (
	"sync"

	"planpilot/internal/logging"
)

// Catalog holds the ordered set of available tool specs.
// It is thread-safe and supports registration at runtime.
type Catalog struct {
	mu    sync.RWMutex
	specs map[string]*Spec
	order []string
}

// NewCatalog creates a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		specs: make(map[string]*Spec),
	}
}

// Register adds a tool spec to the catalog, preserving registration order.
// Returns an error if a spec with the same name already exists.
func (c *Catalog) Register(spec *Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.specs[spec.Name]; exists {
		return ErrToolAlreadyRegistered
	}

	c.specs[spec.Name] = spec
	c.order = append(c.order, spec.Name)

	logging.Get(logging.CategoryTools).Debugf("registered tool %s", spec.Name)
	return nil
}

// MustRegister registers a spec and panics on error.
// Use for static catalog construction at startup.
func (c *Catalog) MustRegister(spec *Spec) {
	if err := c.Register(spec); err != nil {
		panic("failed to register tool " + spec.Name + ": " + err.Error())
	}
}

// Get returns a spec by name, or nil if not found.
func (c *Catalog) Get(name string) *Spec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.specs[name]
}

// Has reports whether a tool with the given name is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.specs[name]
	return ok
}

// Names returns tool names in registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Specs returns all specs in registration order.
func (c *Catalog) Specs() []*Spec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	specs := make([]*Spec, 0, len(c.order))
	for _, name := range c.order {
		specs = append(specs, c.specs[name])
	}
	return specs
}

// Count returns the number of registered tools.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.specs)
}

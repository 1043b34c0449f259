package demo

import (
	"sync"

	"github.com/xraph/strata/resources"
)

// ApplicationContext is the process-wide resource lookup.
type ApplicationContext struct {
	resources.Lookup
}

// NewApplicationContext binds the application to a locale of bundle.
func NewApplicationContext(bundle *resources.Bundle, locale string) *ApplicationContext {
	return &ApplicationContext{Lookup: bundle.Localizer(locale)}
}

// ScreenContext is one screen instance's view of resources, seeded into
// its activity scope.
type ScreenContext struct {
	resources.Lookup

	name        string
	viewModels  *ViewModelStore
	contentView string
	mu          sync.Mutex
}

// NewScreenContext creates the context of the screen called name.
func NewScreenContext(name string, lookup resources.Lookup, viewModels *ViewModelStore) *ScreenContext {
	return &ScreenContext{Lookup: lookup, name: name, viewModels: viewModels}
}

// Name returns the screen name, which also owns its view models.
func (c *ScreenContext) Name() string {
	return c.name
}

// SetContentView records the layout the screen displays.
func (c *ScreenContext) SetContentView(layout string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contentView = layout
}

// ContentView returns the layout set by the screen, if any.
func (c *ScreenContext) ContentView() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contentView
}

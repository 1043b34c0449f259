package demo

import (
	"fmt"
	"sync"

	"github.com/xraph/go-utils/errs"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/xraph/strata"
	"github.com/xraph/strata/logsink"
	"github.com/xraph/strata/resources"
)

const (
	// CodeScreenNotFound indicates a screen name that is not launched
	CodeScreenNotFound = "SCREEN_NOT_FOUND"

	// CodeScreenAlreadyLaunched indicates a screen name that is already launched
	CodeScreenAlreadyLaunched = "SCREEN_ALREADY_LAUNCHED"

	// CodeLayoutNotFound indicates a screen set a layout the host does not supply
	CodeLayoutNotFound = "LAYOUT_NOT_FOUND"

	// CodeHostClosed indicates use of a closed host
	CodeHostClosed = "HOST_CLOSED"
)

// ErrScreenNotFoundSentinel matches any screen-not-found error.
var ErrScreenNotFoundSentinel = errs.NewError(CodeScreenNotFound, "screen not found", nil)

// ErrScreenAlreadyLaunchedSentinel matches any already-launched error.
var ErrScreenAlreadyLaunchedSentinel = errs.NewError(CodeScreenAlreadyLaunched, "screen already launched", nil)

// ErrLayoutNotFoundSentinel matches any layout-not-found error.
var ErrLayoutNotFoundSentinel = errs.NewError(CodeLayoutNotFound, "layout not found", nil)

// ErrHostClosed is returned by every operation of a closed host.
var ErrHostClosed = errs.NewError(CodeHostClosed, "host is closed", nil)

func errScreenNotFound(name string) *errs.Error {
	return errs.NewError(CodeScreenNotFound, fmt.Sprintf("screen '%s' is not launched", name), nil).
		WithContext("screen", name).(*errs.Error)
}

func errScreenAlreadyLaunched(name string) *errs.Error {
	return errs.NewError(CodeScreenAlreadyLaunched, fmt.Sprintf("screen '%s' is already launched", name), nil).
		WithContext("screen", name).(*errs.Error)
}

func errLayoutNotFound(name, layout string) *errs.Error {
	return errs.NewError(CodeLayoutNotFound, fmt.Sprintf("screen '%s' set unknown layout '%s'", name, layout), nil).
		WithContext("screen", name).
		WithContext("layout", layout).(*errs.Error)
}

// Options configures a Host.
type Options struct {
	// Bundle defaults to resources.Default().
	Bundle *resources.Bundle
	// Locale of the application context.
	Locale string
	// ScreenLocale of every screen context. Defaults to Locale.
	ScreenLocale string
	// Sink defaults to a no-op zap sink.
	Sink logsink.Sink
	// Layouts the host supplies. Defaults to LayoutActivityMain.
	Layouts    []string
	Middleware []strata.Middleware
	// Modules are installed after the built-in modules.
	Modules []strata.Module
}

// Host drives the screen lifecycle: it opens an activity scope per
// launched screen and keeps view models across configuration changes.
type Host struct {
	container    strata.Container
	bundle       *resources.Bundle
	screenLocale string
	viewModels   *ViewModelStore
	layouts      map[string]bool
	screens      map[string]*screenRecord
	order        []string
	closed       bool
	mu           sync.Mutex
}

type screenRecord struct {
	scope  strata.Scope
	screen *MainScreen
}

// NewHost creates the container and validates its bindings.
func NewHost(opts Options) (*Host, error) {
	if opts.Bundle == nil {
		opts.Bundle = resources.Default()
	}

	if opts.ScreenLocale == "" {
		opts.ScreenLocale = opts.Locale
	}

	if opts.Sink == nil {
		opts.Sink = logsink.New(zap.NewNop())
	}

	if len(opts.Layouts) == 0 {
		opts.Layouts = []string{LayoutActivityMain}
	}

	app := NewApplicationContext(opts.Bundle, opts.Locale)

	c, err := NewContainer(app, opts.Sink, opts.Middleware...)
	if err != nil {
		return nil, err
	}

	if len(opts.Modules) > 0 {
		if err := strata.Install(c, opts.Modules...); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	layouts := make(map[string]bool, len(opts.Layouts))
	for _, l := range opts.Layouts {
		layouts[l] = true
	}

	return &Host{
		container:    c,
		bundle:       opts.Bundle,
		screenLocale: opts.ScreenLocale,
		viewModels:   NewViewModelStore(c),
		layouts:      layouts,
		screens:      make(map[string]*screenRecord),
	}, nil
}

// Container returns the host's container.
func (h *Host) Container() strata.Container {
	return h.container
}

// ViewModels returns the view-model store.
func (h *Host) ViewModels() *ViewModelStore {
	return h.viewModels
}

// Screen returns the live screen called name.
func (h *Host) Screen(name string) (*MainScreen, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, ok := h.screens[name]
	if !ok {
		return nil, false
	}

	return rec.screen, true
}

// ScreenScope returns the activity scope of the screen called name.
func (h *Host) ScreenScope(name string) (strata.Scope, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, ok := h.screens[name]
	if !ok {
		return nil, false
	}

	return rec.scope, true
}

// Launch opens an activity scope for name, builds the screen and runs
// OnCreate. On failure the scope is ended and nothing stays registered.
func (h *Host) Launch(name string) (*MainScreen, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}

	if _, ok := h.screens[name]; ok {
		return nil, errScreenAlreadyLaunched(name)
	}

	rec, err := h.create(name)
	if err != nil {
		return nil, multierr.Append(err, h.viewModels.Clear(name))
	}

	h.screens[name] = rec
	h.order = append(h.order, name)

	return rec.screen, nil
}

// Recreate replaces the screen after a configuration change. The activity
// scope is ended and a new one opened; view models are kept. An error from
// ending the old scope is returned together with the new screen.
func (h *Host) Recreate(name string) (*MainScreen, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}

	rec, ok := h.screens[name]
	if !ok {
		return nil, errScreenNotFound(name)
	}

	endErr := rec.scope.End()

	next, err := h.create(name)
	if err != nil {
		h.forget(name)
		return nil, multierr.Combine(endErr, err, h.viewModels.Clear(name))
	}

	h.screens[name] = next

	return next.screen, endErr
}

// Finish ends the activity scope of name and clears its view models.
func (h *Host) Finish(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	return h.finish(name)
}

// Close finishes every screen, newest first, and ends the root scope.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}

	names := append([]string(nil), h.order...)

	var err error
	for i := len(names) - 1; i >= 0; i-- {
		err = multierr.Append(err, h.finish(names[i]))
	}

	h.closed = true

	return multierr.Append(err, h.container.End())
}

func (h *Host) finish(name string) error {
	rec, ok := h.screens[name]
	if !ok {
		return errScreenNotFound(name)
	}

	h.forget(name)

	return multierr.Append(rec.scope.End(), h.viewModels.Clear(name))
}

func (h *Host) forget(name string) {
	delete(h.screens, name)

	for i, n := range h.order {
		if n == name {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

func (h *Host) create(name string) (*screenRecord, error) {
	ctx := NewScreenContext(name, h.bundle.Localizer(h.screenLocale), h.viewModels)

	scope, err := h.container.BeginScope(ActivityScope, strata.SeedValue("", ctx))
	if err != nil {
		return nil, err
	}

	screen, err := strata.Resolve[*MainScreen](scope, "")
	if err == nil {
		err = screen.OnCreate()
	}

	if err == nil && !h.layouts[ctx.ContentView()] {
		err = errLayoutNotFound(name, ctx.ContentView())
	}

	if err != nil {
		return nil, multierr.Append(err, scope.End())
	}

	return &screenRecord{scope: scope, screen: screen}, nil
}

package demo

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/strata"
	"github.com/xraph/strata/logsink/logsinktest"
	"github.com/xraph/strata/resources"
)

func newTestHost(t *testing.T, opts Options) (*Host, *logsinktest.Recorder) {
	t.Helper()

	rec := logsinktest.NewRecorder()
	opts.Sink = rec

	h, err := NewHost(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	return h, rec
}

func TestHost_Launch(t *testing.T) {
	h, rec := newTestHost(t, Options{Locale: "en"})

	screen, err := h.Launch("main")
	require.NoError(t, err)

	assert.Equal(t, LayoutActivityMain, screen.Context().ContentView())
	assert.Equal(t, "This is a named test string", screen.StringFromModule())
	assert.Equal(t, "Injected - This is a named test string", screen.StringFromMainModule())

	assert.Equal(t, []string{
		"onCreate: Injected string: This is a named test string",
		"onCreate: Injected string: Injected - This is a named test string",
	}, rec.Tagged(ScreenTag))
	assert.Equal(t, []string{
		"init: Message in the string: This is another named test string",
		"init: Message in the string: ViewModel - This is a named test string",
	}, rec.Tagged(ViewModelTag))

	vm, err := screen.ViewModel()
	require.NoError(t, err)
	assert.Equal(t, "ViewModel - This is a named test string", vm.TestString2())
	assert.Equal(t, 1, h.ViewModels().Len("main"))

	got, ok := h.Screen("main")
	assert.True(t, ok)
	assert.Same(t, screen, got)
}

func TestHost_LogOrder(t *testing.T) {
	h, rec := newTestHost(t, Options{Locale: "en"})

	_, err := h.Launch("main")
	require.NoError(t, err)

	var tags []string
	for _, e := range rec.Entries() {
		tags = append(tags, e.Tag)
	}

	assert.Equal(t, []string{ScreenTag, ScreenTag, ViewModelTag, ViewModelTag}, tags)
}

func TestHost_Recreate(t *testing.T) {
	built := 0
	h, rec := newTestHost(t, Options{
		Locale: "en",
		Middleware: []strata.Middleware{&strata.FuncMiddleware{
			ConstructedFunc: func(_ context.Context, _ strata.Resolver, key strata.BindingKey) {
				if key == MainActivityString1.Binding() {
					built++
				}
			},
		}},
	})

	first, err := h.Launch("main")
	require.NoError(t, err)
	firstScope, _ := h.ScreenScope("main")
	firstVM, err := first.ViewModel()
	require.NoError(t, err)

	second, err := h.Recreate("main")
	require.NoError(t, err)
	secondScope, _ := h.ScreenScope("main")
	secondVM, err := second.ViewModel()
	require.NoError(t, err)

	assert.True(t, first.Destroyed())
	assert.True(t, firstScope.Ended())
	assert.NotEqual(t, firstScope.ID(), secondScope.ID())
	assert.NotSame(t, first, second)

	assert.Equal(t, first.StringFromMainModule(), second.StringFromMainModule())
	assert.Equal(t, 2, built)

	assert.Same(t, firstVM, secondVM)
	assert.False(t, secondVM.Cleared())
	assert.Len(t, rec.Tagged(ViewModelTag), 2)
	assert.Len(t, rec.Tagged(ScreenTag), 4)
}

func TestHost_FinishClearsViewModel(t *testing.T) {
	h, rec := newTestHost(t, Options{Locale: "en"})

	first, err := h.Launch("main")
	require.NoError(t, err)
	firstVM, err := first.ViewModel()
	require.NoError(t, err)

	require.NoError(t, h.Finish("main"))
	assert.True(t, first.Destroyed())
	assert.True(t, firstVM.Cleared())
	assert.Equal(t, 0, h.ViewModels().Len("main"))
	assert.Contains(t, rec.Tagged(ViewModelTag), "onCleared")

	_, ok := h.Screen("main")
	assert.False(t, ok)

	second, err := h.Launch("main")
	require.NoError(t, err)
	secondVM, err := second.ViewModel()
	require.NoError(t, err)

	assert.NotSame(t, firstVM, secondVM)
	assert.Equal(t, firstVM.TestString2(), secondVM.TestString2())
}

func TestHost_ScreensAreIndependent(t *testing.T) {
	h, _ := newTestHost(t, Options{Locale: "en"})

	a, err := h.Launch("a")
	require.NoError(t, err)
	b, err := h.Launch("b")
	require.NoError(t, err)

	vmA, _ := a.ViewModel()
	vmB, _ := b.ViewModel()
	assert.NotSame(t, vmA, vmB)

	require.NoError(t, h.Finish("a"))
	assert.True(t, vmA.Cleared())
	assert.False(t, vmB.Cleared())
	assert.False(t, b.Destroyed())
}

func TestHost_ScreenLocale(t *testing.T) {
	h, _ := newTestHost(t, Options{Locale: "en", ScreenLocale: "de"})

	screen, err := h.Launch("main")
	require.NoError(t, err)

	assert.Equal(t, "Injiziert - This is a named test string", screen.StringFromMainModule())

	vm, err := screen.ViewModel()
	require.NoError(t, err)
	assert.Equal(t, "ViewModel - This is a named test string", vm.TestString2())
}

func TestHost_Errors(t *testing.T) {
	h, _ := newTestHost(t, Options{Locale: "en"})

	_, err := h.Recreate("main")
	assert.ErrorIs(t, err, ErrScreenNotFoundSentinel)
	assert.ErrorIs(t, h.Finish("main"), ErrScreenNotFoundSentinel)

	_, err = h.Launch("main")
	require.NoError(t, err)

	_, err = h.Launch("main")
	assert.ErrorIs(t, err, ErrScreenAlreadyLaunchedSentinel)
}

func TestHost_UnknownLayout(t *testing.T) {
	h, _ := newTestHost(t, Options{Locale: "en", Layouts: []string{"activity_other"}})

	_, err := h.Launch("main")
	assert.ErrorIs(t, err, ErrLayoutNotFoundSentinel)

	_, ok := h.Screen("main")
	assert.False(t, ok)
	assert.Equal(t, 0, h.ViewModels().Len("main"))
}

func TestHost_MissingResource(t *testing.T) {
	bundle, err := resources.Load(fstest.MapFS{
		"values/en.yaml": {Data: []byte("view_model_string: ViewModel\n")},
	}, "values", "en")
	require.NoError(t, err)

	h, rec := newTestHost(t, Options{Locale: "en", Bundle: bundle})

	_, err = h.Launch("main")
	assert.ErrorIs(t, err, strata.ErrConstructionFailedSentinel)
	assert.Empty(t, rec.Tagged(ScreenTag))

	_, ok := h.Screen("main")
	assert.False(t, ok)
}

func TestHost_Close(t *testing.T) {
	h, rec := newTestHost(t, Options{Locale: "en"})

	a, err := h.Launch("a")
	require.NoError(t, err)
	b, err := h.Launch("b")
	require.NoError(t, err)

	require.NoError(t, h.Close())
	assert.True(t, a.Destroyed())
	assert.True(t, b.Destroyed())
	assert.True(t, h.Container().Ended())
	assert.Equal(t, 2, countOf(rec.Tagged(ViewModelTag), "onCleared"))

	_, err = h.Launch("c")
	assert.ErrorIs(t, err, ErrHostClosed)
	_, err = h.Recreate("a")
	assert.ErrorIs(t, err, ErrHostClosed)
	assert.ErrorIs(t, h.Finish("a"), ErrHostClosed)
	assert.NoError(t, h.Close())
}

func countOf(values []string, want string) int {
	n := 0
	for _, v := range values {
		if v == want {
			n++
		}
	}
	return n
}

type brokenResource struct{}

func (brokenResource) Dispose() error { return errors.New("release failed") }

func TestHost_RecreateAfterDisposeError(t *testing.T) {
	h, _ := newTestHost(t, Options{
		Locale: "en",
		Modules: []strata.Module{strata.NewModule("Broken", ActivityScope,
			func(c strata.Container) error {
				return strata.ProvideValue(c, "", &brokenResource{})
			},
		)},
	})

	first, err := h.Launch("main")
	require.NoError(t, err)

	scope, ok := h.ScreenScope("main")
	require.True(t, ok)
	_, err = strata.Resolve[*brokenResource](scope, "")
	require.NoError(t, err)

	second, err := h.Recreate("main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release failed")
	require.NotNil(t, second)
	assert.True(t, first.Destroyed())

	current, ok := h.Screen("main")
	require.True(t, ok)
	assert.Same(t, second, current)

	_, err = h.Recreate("main")
	assert.NoError(t, err)
	assert.NoError(t, h.Finish("main"))
}

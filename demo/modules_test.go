package demo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xraph/strata"
	"github.com/xraph/strata/logsink/logsinktest"
	"github.com/xraph/strata/resources"
)

func newTestContainer(t *testing.T, locale string, mw ...strata.Middleware) (strata.Container, *logsinktest.Recorder) {
	t.Helper()

	rec := logsinktest.NewRecorder()
	c, err := NewContainer(NewApplicationContext(resources.Default(), locale), rec, mw...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.End() })

	return c, rec
}

func beginActivity(t *testing.T, c strata.Container, locale string) strata.Scope {
	t.Helper()

	ctx := NewScreenContext("MainActivity", resources.Default().Localizer(locale), NewViewModelStore(c))
	act, err := c.BeginScope(ActivityScope, strata.SeedValue("", ctx))
	require.NoError(t, err)

	return act
}

func TestAppModule_Constants(t *testing.T) {
	c, _ := newTestContainer(t, "en")

	assert.Equal(t, "This string has been injected from the AppModule", strata.MustKey(c, TestString))
	assert.Equal(t, "This is a named test string", strata.MustKey(c, FirstNamedTestString))
	assert.Equal(t, "This is another named test string", strata.MustKey(c, SecondNamedTestString))
}

func TestAppModule_ConstructedOnce(t *testing.T) {
	counts := map[string]int{}
	c, _ := newTestContainer(t, "en", &strata.FuncMiddleware{
		ConstructedFunc: func(_ context.Context, _ strata.Resolver, key strata.BindingKey) {
			counts[key.String()]++
		},
	})

	act := beginActivity(t, c, "en")
	for i := 0; i < 3; i++ {
		assert.Equal(t, strata.MustKey(c, FirstNamedTestString), strata.MustKey(act, FirstNamedTestString))
	}

	assert.Equal(t, 1, counts[FirstNamedTestString.String()])
}

func TestMainModule_Strings(t *testing.T) {
	c, _ := newTestContainer(t, "en")
	act := beginActivity(t, c, "en")

	assert.Equal(t, "Injected - This is a named test string", strata.MustKey(act, MainActivityString1))
	assert.Equal(t, "ViewModel - This is another named test string", strata.MustKey(act, MainActivityString2))
}

func TestMainModule_ScreenLocale(t *testing.T) {
	c, _ := newTestContainer(t, "en")
	act := beginActivity(t, c, "de")

	assert.Equal(t, "Injiziert - This is a named test string", strata.MustKey(act, MainActivityString1))
}

func TestMainModule_NotVisibleOutsideActivity(t *testing.T) {
	c, _ := newTestContainer(t, "en")

	_, err := strata.ResolveKey(c, MainActivityString1)
	assert.ErrorIs(t, err, strata.ErrScopeViolationSentinel)

	vm, err := c.BeginScope(ViewModelScope)
	require.NoError(t, err)

	_, err = strata.ResolveKey(vm, MainActivityString1)
	assert.ErrorIs(t, err, strata.ErrScopeViolationSentinel)
}

func TestMainModule_ActivityWithoutScreenContext(t *testing.T) {
	c, _ := newTestContainer(t, "en")

	act, err := c.BeginScope(ActivityScope)
	require.NoError(t, err)

	_, err = strata.ResolveKey(act, MainActivityString1)
	assert.ErrorIs(t, err, strata.ErrConstructionFailedSentinel)
}

func TestViewModelModule_String(t *testing.T) {
	c, _ := newTestContainer(t, "de")

	vm, err := c.BeginScope(ViewModelScope)
	require.NoError(t, err)

	assert.Equal(t, "ViewModel - This is a named test string", strata.MustKey(vm, TestViewModelString1))
}

func TestViewModelModule_ViewModel(t *testing.T) {
	c, rec := newTestContainer(t, "en")

	vm, err := c.BeginScope(ViewModelScope)
	require.NoError(t, err)

	model, err := strata.Resolve[*TestViewModel](vm, "")
	require.NoError(t, err)

	assert.Equal(t, "This is another named test string", model.TestString())
	assert.Equal(t, "ViewModel - This is a named test string", model.TestString2())
	assert.Equal(t, []string{
		"init: Message in the string: This is another named test string",
		"init: Message in the string: ViewModel - This is a named test string",
	}, rec.Tagged(ViewModelTag))

	require.NoError(t, vm.End())
	assert.True(t, model.Cleared())
	assert.Equal(t, "onCleared", rec.Tagged(ViewModelTag)[2])
}

func TestNewContainer_Bindings(t *testing.T) {
	c, _ := newTestContainer(t, "en")

	assert.Len(t, strata.FindByModule(c, "AppModule"), 3)
	assert.Len(t, strata.FindByModule(c, "MainModule"), 2)
	assert.Len(t, strata.FindByModule(c, "TestViewModelModule"), 2)

	info := strata.InspectKey(c, MainActivityString1)
	assert.Equal(t, ActivityScope, info.Scope)
	require.Len(t, info.Dependencies, 2)
	assert.Equal(t, FirstNamedTestString.Binding(), info.Dependencies[1].Key)
}

type fixedLookup map[resources.ID]string

func (f fixedLookup) String(id resources.ID) (string, error) {
	s, ok := f[id]
	if !ok {
		return "", resources.ErrResourceNotFound(id, "test")
	}
	return s, nil
}

func (f fixedLookup) Locale() string { return "test" }

func TestCompose_Concatenation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		res := rapid.String().Draw(t, "res")
		value := rapid.String().Draw(t, "value")
		lookup := fixedLookup{resources.InjectedString: res}

		first, err := Compose(lookup, resources.InjectedString, value)
		if err != nil {
			t.Fatalf("compose: %v", err)
		}

		second, _ := Compose(lookup, resources.InjectedString, value)
		if first != res+Separator+value || first != second {
			t.Fatalf("compose(%q, %q) = %q, %q", res, value, first, second)
		}
	})
}

func TestCompose_MissingResource(t *testing.T) {
	_, err := Compose(fixedLookup{}, resources.InjectedString, "x")
	assert.ErrorIs(t, err, resources.ErrResourceNotFoundSentinel)
}

package strata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall_DefaultsToModuleScope(t *testing.T) {
	c := newTestContainer()

	appModule := NewModule("AppModule", Singleton,
		func(c Container) error { return ProvideValue(c, "app", "a") },
	)
	mainModule := NewModule("MainModule", activity,
		func(c Container) error {
			return Provide[string](c, "act",
				Inject[string]("app"),
				func(a string) string { return a + "!" },
			)
		},
		func(c Container) error { return ProvideValue(c, "pinned", "p", In(Singleton)) },
	)

	require.NoError(t, Install(c, appModule, mainModule))

	assert.Equal(t, Singleton, c.Inspect(key("app")).Scope)
	assert.Equal(t, activity, c.Inspect(key("act")).Scope)
	assert.Equal(t, Singleton, c.Inspect(key("pinned")).Scope)
	assert.Equal(t, "MainModule", c.Inspect(key("act")).Metadata["module"])

	act, err := c.BeginScope(activity)
	require.NoError(t, err)
	defer func() { _ = act.End() }()

	v, err := Resolve[string](act, "act")
	require.NoError(t, err)
	assert.Equal(t, "a!", v)
}

func TestInstall_Error(t *testing.T) {
	c := newTestContainer()
	expectedErr := errors.New("bad provider")

	err := Install(c, NewModule("Broken", Singleton,
		func(Container) error { return expectedErr },
	))

	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), "Broken")
}

func TestQuery(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, Install(c,
		NewModule("AppModule", Singleton,
			func(c Container) error { return ProvideValue(c, "a", "a", WithGroup("g")) },
			func(c Container) error { return ProvideValue(c, "b", "b") },
		),
		NewModule("MainModule", activity,
			func(c Container) error { return ProvideValue(c, "c", "c", WithGroup("g"), Unscoped()) },
		),
	))

	names := func(infos []BindingInfo) []string {
		var out []string
		for _, info := range infos {
			out = append(out, info.Key.Name)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b"}, names(FindByScope(c, Singleton)))
	assert.Equal(t, []string{"a", "c"}, names(FindByGroup(c, "g")))
	assert.Equal(t, []string{"c"}, names(FindByModule(c, "MainModule")))

	unscoped := true
	assert.Equal(t, []string{"c"}, names(Query(c, BindingQuery{Unscoped: &unscoped})))
	assert.Empty(t, Query(c, BindingQuery{Scope: viewModel}))
}

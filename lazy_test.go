package strata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazy_Get(t *testing.T) {
	c := newTestContainer()
	calls := 0

	require.NoError(t, RegisterKey(c, NewKey[string]("slow"), func(Resolver) (string, error) {
		calls++
		return "built", nil
	}))

	lazy := NewLazy(c, NewKey[string]("slow"))
	assert.False(t, lazy.IsResolved())
	assert.Equal(t, 0, calls)
	assert.Equal(t, "string[name=slow]", lazy.Name())

	v, err := lazy.Get()
	require.NoError(t, err)
	assert.Equal(t, "built", v)
	assert.True(t, lazy.IsResolved())

	_, _ = lazy.Get()
	assert.Equal(t, 1, calls)
}

func TestLazy_ErrorCached(t *testing.T) {
	calls := 0
	expectedErr := errors.New("nope")

	lazy := NewLazyFunc("flaky", func() (int, error) {
		calls++
		return 0, expectedErr
	})

	_, err := lazy.Get()
	assert.ErrorIs(t, err, expectedErr)
	_, err = lazy.Get()
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 1, calls)
}

func TestLazy_MustGet_Panic(t *testing.T) {
	c := newTestContainer()

	lazy := NewLazy(c, NewKey[string]("missing"))
	assert.Panics(t, func() { lazy.MustGet() })
}

func TestLazyInject(t *testing.T) {
	c := newTestContainer()
	built := false

	require.NoError(t, RegisterKey(c, NewKey[string]("expensive"), func(Resolver) (string, error) {
		built = true
		return "expensive", nil
	}, In(activity)))
	require.NoError(t, Provide[*Lazy[string]](c, "holder",
		In(activity),
		LazyInject[string]("expensive"),
		func(l *Lazy[string]) *Lazy[string] { return l },
	))

	act, err := c.BeginScope(activity)
	require.NoError(t, err)
	defer func() { _ = act.End() }()

	holder, err := Resolve[*Lazy[string]](act, "holder")
	require.NoError(t, err)
	assert.False(t, built)

	assert.Equal(t, "expensive", holder.MustGet())
	assert.True(t, built)
}

func TestLazyInject_BreaksCycle(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, Provide[string](c, "a",
		LazyInject[string]("b"),
		func(b *Lazy[string]) string { return "a" },
	))
	require.NoError(t, Provide[string](c, "b",
		Inject[string]("a"),
		func(a string) string { return a + "b" },
	))

	assert.NoError(t, c.Validate())

	v, err := Resolve[string](c, "b")
	require.NoError(t, err)
	assert.Equal(t, "ab", v)
}

func TestLazyInject_ResolvesAfterOwnerBuilt(t *testing.T) {
	c := newTestContainer()

	require.NoError(t, Provide[*Lazy[string]](c, "a",
		Unscoped(),
		LazyInject[string]("b"),
		func(b *Lazy[string]) *Lazy[string] { return b },
	))
	require.NoError(t, Provide[string](c, "b",
		Unscoped(),
		Inject[*Lazy[string]]("a"),
		func(*Lazy[string]) string { return "b" },
	))

	lazy, err := Resolve[*Lazy[string]](c, "a")
	require.NoError(t, err)

	v, err := lazy.Get()
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

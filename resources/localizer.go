package resources

import (
	"github.com/patrickmn/go-cache"
)

// Localizer is a Lookup bound to one locale. Resolved strings are memoized.
type Localizer struct {
	bundle *Bundle
	locale string
	memo   *cache.Cache
}

// Localizer returns a Lookup for locale. An empty locale uses the bundle's
// fallback.
func (b *Bundle) Localizer(locale string) *Localizer {
	if locale == "" {
		locale = b.fallback
	}

	return &Localizer{
		bundle: b,
		locale: normalize(locale),
		memo:   cache.New(cache.NoExpiration, 0),
	}
}

// Locale returns the locale this lookup is bound to.
func (l *Localizer) Locale() string {
	return l.locale
}

// String returns the resource for id.
func (l *Localizer) String(id ID) (string, error) {
	if v, ok := l.memo.Get(string(id)); ok {
		return v.(string), nil
	}

	v, err := l.bundle.lookup(l.locale, id)
	if err != nil {
		return "", err
	}

	l.memo.Set(string(id), v, cache.NoExpiration)

	return v, nil
}

// MustString returns the resource for id and panics if it is missing.
func (l *Localizer) MustString(id ID) string {
	v, err := l.String(id)
	if err != nil {
		panic(err)
	}
	return v
}

// Cached returns the number of memoized strings.
func (l *Localizer) Cached() int {
	return l.memo.ItemCount()
}

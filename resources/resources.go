// Package resources provides locale-aware string lookup backed by YAML
// bundles, one file per locale.
//
// A bundle directory holds files named after their locale:
//
//	values/en.yaml
//	values/de.yaml
//	values/de-AT.yaml
//
// Each file is a flat map of resource id to string. Lookups fall back from
// "de-AT" to "de" to the bundle's default locale.
package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/xraph/go-utils/errs"
	"gopkg.in/yaml.v3"
)

// ID identifies a string resource.
type ID string

// String resources used by the demo.
const (
	AppName         ID = "app_name"
	InjectedString  ID = "injected_string"
	ViewModelString ID = "view_model_string"
)

// DefaultLocale is used when a bundle does not name one.
const DefaultLocale = "en"

// CodeResourceNotFound indicates no locale in the fallback chain defines an id.
const CodeResourceNotFound = "RESOURCE_NOT_FOUND"

// ErrResourceNotFoundSentinel matches any missing resource error.
var ErrResourceNotFoundSentinel = errs.NewError(CodeResourceNotFound, "resource not found", nil)

// ErrResourceNotFound creates an error for an id missing from every locale
// in the fallback chain.
func ErrResourceNotFound(id ID, locale string) *errs.Error {
	return errs.NewError(
		CodeResourceNotFound,
		fmt.Sprintf("resource '%s' not found for locale '%s'", id, locale),
		nil,
	).WithContext("resource", string(id)).
		WithContext("locale", locale).(*errs.Error)
}

// Lookup resolves string resources for one locale.
type Lookup interface {
	String(id ID) (string, error)
	Locale() string
}

//go:embed values/*.yaml
var embedded embed.FS

// Bundle holds the strings of every locale loaded from one directory.
type Bundle struct {
	locales  map[string]map[ID]string
	fallback string
}

// Default returns the bundle compiled into the binary.
func Default() *Bundle {
	b, err := Load(embedded, "values", DefaultLocale)
	if err != nil {
		panic(fmt.Sprintf("embedded resources: %v", err))
	}
	return b
}

// LoadDir loads a bundle from a directory on disk.
func LoadDir(dir, fallback string) (*Bundle, error) {
	return Load(os.DirFS(dir), ".", fallback)
}

// Load reads every *.yaml file under root in fsys. The fallback locale must
// be among them.
func Load(fsys fs.FS, root, fallback string) (*Bundle, error) {
	if fallback == "" {
		fallback = DefaultLocale
	}

	matches, err := fs.Glob(fsys, path.Join(root, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing resource files: %w", err)
	}

	b := &Bundle{
		locales:  make(map[string]map[ID]string, len(matches)),
		fallback: normalize(fallback),
	}

	for _, file := range matches {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		var values map[string]string
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}

		strs := make(map[ID]string, len(values))
		for k, v := range values {
			strs[ID(k)] = v
		}

		b.locales[normalize(strings.TrimSuffix(path.Base(file), ".yaml"))] = strs
	}

	if _, ok := b.locales[b.fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q has no resource file under %s", fallback, root)
	}

	return b, nil
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for l := range b.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the bundle's default locale.
func (b *Bundle) Fallback() string {
	return b.fallback
}

// chain returns the locales consulted for locale, most specific first.
func (b *Bundle) chain(locale string) []string {
	locale = normalize(locale)

	var out []string
	for locale != "" {
		out = append(out, locale)
		i := strings.LastIndex(locale, "-")
		if i < 0 {
			break
		}
		locale = locale[:i]
	}

	if len(out) == 0 || out[len(out)-1] != b.fallback {
		out = append(out, b.fallback)
	}

	return out
}

// lookup resolves id through the fallback chain of locale.
func (b *Bundle) lookup(locale string, id ID) (string, error) {
	for _, l := range b.chain(locale) {
		if v, ok := b.locales[l][id]; ok {
			return v, nil
		}
	}
	return "", ErrResourceNotFound(id, locale)
}

// normalize lower-cases the language and upper-cases the region, accepting
// "_" as a separator: "de_at" becomes "de-AT".
func normalize(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	parts := strings.Split(locale, "-")
	for i, p := range parts {
		if i == 0 {
			parts[i] = strings.ToLower(p)
		} else {
			parts[i] = strings.ToUpper(p)
		}
	}
	return strings.Join(parts, "-")
}

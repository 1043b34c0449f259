package resources

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"values/en.yaml":    {Data: []byte("injected_string: Injected\nview_model_string: ViewModel\nonly_en: English\n")},
		"values/de.yaml":    {Data: []byte("injected_string: Injiziert\nview_model_string: ViewModel\n")},
		"values/de-AT.yaml": {Data: []byte("injected_string: Eingespritzt\n")},
		"values/notes.txt":  {Data: []byte("ignored")},
	}
}

func TestDefault(t *testing.T) {
	b := Default()

	assert.Equal(t, "en", b.Fallback())
	assert.Equal(t, []string{"de", "en"}, b.Locales())

	l := b.Localizer("")
	assert.Equal(t, "en", l.Locale())
	assert.Equal(t, "Injected", l.MustString(InjectedString))
	assert.Equal(t, "ViewModel", l.MustString(ViewModelString))
}

func TestLoad(t *testing.T) {
	b, err := Load(testFS(), "values", "en")
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "de-AT", "en"}, b.Locales())
}

func TestLoad_MissingFallback(t *testing.T) {
	_, err := Load(testFS(), "values", "fr")
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"values/en.yaml": {Data: []byte("injected_string: [unclosed\n")},
	}

	_, err := Load(fsys, "values", "en")
	assert.Error(t, err)
}

func TestLocalizer_FallbackChain(t *testing.T) {
	b, err := Load(testFS(), "values", "en")
	require.NoError(t, err)

	tests := []struct {
		locale string
		id     ID
		want   string
	}{
		{"de-AT", InjectedString, "Eingespritzt"},
		{"de_at", InjectedString, "Eingespritzt"},
		{"de-AT", ViewModelString, "ViewModel"},
		{"de-CH", InjectedString, "Injiziert"},
		{"DE", InjectedString, "Injiziert"},
		{"de-AT", "only_en", "English"},
		{"fr-FR", InjectedString, "Injected"},
		{"", InjectedString, "Injected"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+string(tt.id), func(t *testing.T) {
			got, err := b.Localizer(tt.locale).String(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalizer_NotFound(t *testing.T) {
	b, err := Load(testFS(), "values", "en")
	require.NoError(t, err)

	l := b.Localizer("de")
	_, err = l.String("nope")
	assert.ErrorIs(t, err, ErrResourceNotFoundSentinel)
	assert.Panics(t, func() { l.MustString("nope") })
	assert.Equal(t, 0, l.Cached())
}

func TestLocalizer_Memoizes(t *testing.T) {
	l := Default().Localizer("de")

	assert.Equal(t, 0, l.Cached())
	assert.Equal(t, "Injiziert", l.MustString(InjectedString))
	assert.Equal(t, "Injiziert", l.MustString(InjectedString))
	assert.Equal(t, 1, l.Cached())
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("injected_string: From disk\n"), 0o644))

	b, err := LoadDir(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "From disk", b.Localizer("en-GB").MustString(InjectedString))
}

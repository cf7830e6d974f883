package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MissingFileUsesDefault(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, s.Theme())
}

func TestSetTheme_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetTheme(ThemeCyberpunk))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeCyberpunk, reopened.Theme())
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.yaml"))
	require.NoError(t, err)

	err = s.SetTheme("theme-neon")
	assert.ErrorIs(t, err, ErrUnknownTheme)
	assert.Equal(t, DefaultTheme, s.Theme())
}

func TestTheme_UnknownStoredValueFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: theme-neon\n"), 0600))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, s.Theme())
}

func TestOpen_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated\n"), 0600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"theme-dark", ThemeDark, false},
		{"dark", ThemeDark, false},
		{"high-contrast", ThemeHighContrast, false},
		{"neon", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTheme(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTheme)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestThemes(t *testing.T) {
	assert.Len(t, Themes(), 8)
	for _, th := range Themes() {
		assert.True(t, th.IsValid())
		assert.NotNil(t, HuhTheme(th))
	}
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom-prefs.yaml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-prefs.yaml", p)
}

package handlers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/prefs"
	testutil "github.com/imamik/akswiz/internal/testing"
)

func tempPrefs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	orig := openPrefs
	openPrefs = func() (*prefs.Store, error) { return prefs.Open(path) }
	t.Cleanup(func() { openPrefs = orig })
	return path
}

func TestTheme_List(t *testing.T) {
	tempPrefs(t)

	var err error
	out := captureOutput(func() { err = Theme(testutil.TestContext(t), "") })
	require.NoError(t, err)

	for _, th := range prefs.Themes() {
		assert.Contains(t, out, string(th))
	}
	assert.Contains(t, out, "* "+string(prefs.DefaultTheme))
}

func TestTheme_Set(t *testing.T) {
	path := tempPrefs(t)

	var err error
	out := captureOutput(func() { err = Theme(testutil.TestContext(t), "dark") })
	require.NoError(t, err)
	assert.Contains(t, out, "Theme set to theme-dark")

	store, err := prefs.Open(path)
	require.NoError(t, err)
	assert.Equal(t, prefs.ThemeDark, store.Theme())

	out = captureOutput(func() { err = Theme(testutil.TestContext(t), "") })
	require.NoError(t, err)
	assert.Contains(t, out, "* theme-dark")
}

func TestTheme_Unknown(t *testing.T) {
	tempPrefs(t)

	err := Theme(testutil.TestContext(t), "sepia")
	require.ErrorIs(t, err, prefs.ErrUnknownTheme)
}

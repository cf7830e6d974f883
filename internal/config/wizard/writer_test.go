package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/config"
	testutil "github.com/imamik/akswiz/internal/testing"
)

func fixClock(t *testing.T) {
	t.Helper()
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
}

func TestWriteConfig(t *testing.T) {
	fixClock(t)
	path := filepath.Join(t.TempDir(), "akswiz.yaml")
	cfg := testutil.FullConfig()

	require.NoError(t, WriteConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# akswiz cluster configuration\n"))
	assert.Contains(t, content, "# Generated at: 2026-01-02T03:04:05Z")
	assert.Contains(t, content, "akswiz generate -c "+path)

	loaded, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteConfig_BadPath(t *testing.T) {
	err := WriteConfig(config.Default(), filepath.Join(t.TempDir(), "missing", "akswiz.yaml"))
	assert.ErrorContains(t, err, "failed to write file")
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "akswiz.yaml")
	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	assert.True(t, FileExists(path))
}

func TestConfirmOverwrite_UsesInjectedPrompt(t *testing.T) {
	orig := confirmOverwrite
	t.Cleanup(func() { confirmOverwrite = orig })

	var asked string
	confirmOverwrite = func(path string) (bool, error) {
		asked = path
		return true, nil
	}

	ok, err := ConfirmOverwrite("akswiz.yaml")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "akswiz.yaml", asked)
}

package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/config"
	testutil "github.com/imamik/akswiz/internal/testing"
)

func TestBundle_Order(t *testing.T) {
	t.Parallel()

	files := Bundle(testutil.DemoConfig())
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
		assert.NotEmpty(t, f.Content, f.Name)
	}
	assert.Equal(t, []string{
		"main.tf",
		"main.bicep",
		"azuredeploy.json",
		".github/workflows/deploy-aks.yml",
		"resources.yaml",
	}, names)
	assert.Equal(t, names, Names())
}

func TestBundle_Deterministic(t *testing.T) {
	t.Parallel()

	for _, cfg := range []config.Config{testutil.EmptyConfig(), testutil.DemoConfig(), testutil.FullConfig()} {
		assert.Equal(t, Bundle(cfg), Bundle(cfg))
	}
}

func TestBundle_GeneratorsAgree(t *testing.T) {
	t.Parallel()

	cfg := testutil.DemoConfig()
	for _, out := range []string{Terraform(cfg), Bicep(cfg), Manifest(cfg)} {
		assert.Contains(t, out, "demo")
		assert.Contains(t, out, "Standard_D4s_v3")
	}
}

func TestBundle_DoesNotMutateConfig(t *testing.T) {
	t.Parallel()

	cfg := testutil.FullConfig()
	_ = Bundle(cfg)
	assert.Equal(t, testutil.FullConfig(), cfg)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	files := Bundle(testutil.DemoConfig())

	all, err := Select(files)
	require.NoError(t, err)
	assert.Len(t, all, len(files))

	picked, err := Select(files, ManifestFile, TerraformFile)
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, TerraformFile, picked[0].Name)
	assert.Equal(t, ManifestFile, picked[1].Name)

	_, err = Select(files, "nope.txt")
	assert.ErrorIs(t, err, ErrUnknownFile)
}

func TestWriteBundle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := Bundle(testutil.DemoConfig())
	require.NoError(t, WriteBundle(dir, files))

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Name)))
		require.NoError(t, err, f.Name)
		assert.Equal(t, f.Content, string(data))
	}

	info, err := os.Stat(filepath.Join(dir, ".github", "workflows"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteBundle_Error(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := WriteBundle(blocker, []File{{Name: "a/b.txt", Content: "c"}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "a/b.txt"))
}

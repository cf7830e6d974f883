package handlers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/config"
)

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = old
	return <-done
}

// writeTestConfig stores cfg in a temp dir and returns the path.
func writeTestConfig(t *testing.T, cfg config.Config) string {
	t.Helper()
	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "akswiz.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// noDefaultConfig hides any akswiz.yaml in the working directory.
func noDefaultConfig(t *testing.T) {
	t.Helper()
	orig := fileExists
	fileExists = func(string) bool { return false }
	t.Cleanup(func() { fileExists = orig })
}

func setTTY(t *testing.T, interactive bool) {
	t.Helper()
	orig := isInteractiveTTY
	isInteractiveTTY = func() bool { return interactive }
	t.Cleanup(func() { isInteractiveTTY = orig })
}

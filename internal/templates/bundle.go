package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/akswiz/internal/config"
)

// File is one generated artifact.
type File struct {
	Name    string
	Content string
}

// generator renders one bundle file.
type generator struct {
	name   string
	render func(config.Config) string
}

var generators = []generator{
	{TerraformFile, Terraform},
	{BicepFile, Bicep},
	{ARMFile, ARM},
	{WorkflowFile, Workflow},
	{ManifestFile, Manifest},
}

// Names returns the bundle file names in bundle order.
func Names() []string {
	names := make([]string, len(generators))
	for i, g := range generators {
		names[i] = g.name
	}
	return names
}

// Bundle renders every generator in a fixed order.
func Bundle(cfg config.Config) []File {
	files := make([]File, len(generators))
	for i, g := range generators {
		files[i] = File{Name: g.name, Content: g.render(cfg.Clone())}
	}
	return files
}

// Select returns the files whose name is in names, keeping bundle order.
// An empty names list selects everything.
func Select(files []File, names ...string) ([]File, error) {
	if len(names) == 0 {
		return files, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []File
	for _, f := range files {
		if want[f.Name] {
			out = append(out, f)
			delete(want, f.Name)
		}
	}
	for _, n := range names {
		if want[n] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFile, n)
		}
	}
	return out, nil
}

// WriteBundle writes files below dir, creating parent directories.
func WriteBundle(dir string, files []File) error {
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", f.Name, err)
		}
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	return nil
}

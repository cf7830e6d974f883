package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/spf13/viper"
)

// EnvPath overrides the location of the preferences file.
const EnvPath = "AKSWIZ_PREFS"

const themeKey = "theme"

// ErrUnknownTheme is returned when a theme name is not one of Themes().
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is the name of a visual theme.
type Theme string

const (
	ThemeClassic      Theme = "theme-classic"
	ThemeWin95        Theme = "theme-win95"
	ThemeCyberpunk    Theme = "theme-cyberpunk"
	ThemeNature       Theme = "theme-nature"
	ThemeDark         Theme = "theme-dark"
	ThemeHighContrast Theme = "theme-high-contrast"
	ThemeFluent       Theme = "theme-fluent"
	ThemePaleontology Theme = "theme-paleontology"
)

// DefaultTheme is used when no preference is stored.
const DefaultTheme = ThemeClassic

// Themes returns every theme in display order.
func Themes() []Theme {
	return []Theme{
		ThemeClassic, ThemeWin95, ThemeCyberpunk, ThemeNature,
		ThemeDark, ThemeHighContrast, ThemeFluent, ThemePaleontology,
	}
}

// IsValid returns true if the theme is known.
func (t Theme) IsValid() bool { return slices.Contains(Themes(), t) }

// ParseTheme accepts a theme name with or without the "theme-" prefix.
func ParseTheme(name string) (Theme, error) {
	t := Theme(name)
	if !t.IsValid() {
		t = Theme("theme-" + name)
	}
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// HuhTheme maps a theme to the form theme used by the interactive wizard.
func HuhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeWin95, ThemeHighContrast:
		return huh.ThemeBase16()
	case ThemeCyberpunk:
		return huh.ThemeDracula()
	case ThemeNature, ThemePaleontology:
		return huh.ThemeCatppuccin()
	case ThemeDark, ThemeFluent:
		return huh.ThemeCharm()
	default:
		return huh.ThemeBase()
	}
}

// DefaultPath returns the preferences file location: $AKSWIZ_PREFS, or
// akswiz/prefs.yaml under the user config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "akswiz", "prefs.yaml"), nil
}

// Store reads and writes the preferences file.
type Store struct {
	v    *viper.Viper
	path string
}

// Open loads the preferences at path. A missing file is not an error.
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault(themeKey, string(DefaultTheme))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read preferences: %w", err)
		}
	}
	return &Store{v: v, path: path}, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Theme returns the stored theme, or DefaultTheme when the stored value
// is missing or unknown.
func (s *Store) Theme() Theme {
	t := Theme(s.v.GetString(themeKey))
	if !t.IsValid() {
		return DefaultTheme
	}
	return t
}

// SetTheme validates and persists the theme.
func (s *Store) SetTheme(t Theme) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, t)
	}
	s.v.Set(themeKey, string(t))

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create preferences dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

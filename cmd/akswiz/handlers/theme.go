package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/akswiz/internal/prefs"
)

// Theme shows the stored theme and the available ones, or stores name.
func Theme(_ context.Context, name string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}

	if name == "" {
		current := store.Theme()
		for _, t := range prefs.Themes() {
			marker := "  "
			if t == current {
				marker = greenStyle.Render("* ")
			}
			fmt.Printf("%s%s\n", marker, t)
		}
		return nil
	}

	theme, err := prefs.ParseTheme(name)
	if err != nil {
		return err
	}
	if err := store.SetTheme(theme); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s (%s)\n", theme, store.Path())
	return nil
}

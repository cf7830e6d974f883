package handlers

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isInteractiveTTY reports whether stdout is a terminal.
var isInteractiveTTY = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

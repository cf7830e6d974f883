// Package logging builds the logr.Logger used across commands and carries
// it through context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logger writing one line per entry to w. Entries logged
// with V(n) are emitted only when n <= verbosity.
func New(verbosity int, w io.Writer) logr.Logger {
	if w == nil {
		w = os.Stderr
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		Verbosity: verbosity,
		LogCaller: funcr.None,
	})
}

// WithLogger stores a logger in context.
func WithLogger(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}

// FromContext retrieves a logger from context and falls back to a
// discarding logger when none is set.
func FromContext(ctx context.Context) logr.Logger {
	if ctx == nil {
		return logr.Discard()
	}
	l, err := logr.FromContext(ctx)
	if err != nil {
		return logr.Discard()
	}
	return l
}

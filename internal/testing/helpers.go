package testing

import (
	"context"
	"strings"
	"testing"
	"time"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// CountOccurrences returns how many times substr appears in s.
func CountOccurrences(s, substr string) int {
	return strings.Count(s, substr)
}

// IndexOrder reports whether every needle appears in s, in the given order.
func IndexOrder(s string, needles ...string) bool {
	pos := 0
	for _, n := range needles {
		i := strings.Index(s[pos:], n)
		if i < 0 {
			return false
		}
		pos += i + len(n)
	}
	return true
}

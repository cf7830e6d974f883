package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
)

func TestNew_Verbosity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		verbosity int
		wantDebug bool
	}{
		{"default hides V(1)", 0, false},
		{"verbose shows V(1)", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := New(tt.verbosity, &buf)

			l.Info("generated", "files", 5)
			l.V(1).Info("rendering", "file", "main.tf")

			out := buf.String()
			assert.Contains(t, out, `"msg"="generated"`)
			assert.Contains(t, out, `"files"=5`)
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("main.tf")))
		})
	}
}

func TestNew_Name(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(0, &buf).WithName("publish").Info("saved")
	assert.Contains(t, buf.String(), "publish: ")
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(0, &buf))
	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestFromContext_Fallback(t *testing.T) {
	t.Parallel()

	l := FromContext(context.Background())
	assert.Equal(t, logr.Discard().GetSink(), l.GetSink())
	assert.NotPanics(t, func() { l.Info("dropped") })
}

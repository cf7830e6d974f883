package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/prefs"
)

func TestNew(t *testing.T) {
	s := New(prefs.ThemeDark)
	assert.Equal(t, StepWelcome, s.Current())
	assert.Equal(t, prefs.ThemeDark, s.Theme())
	assert.True(t, s.IsFirst())

	pos, total := s.Progress()
	assert.Equal(t, 1, pos)
	assert.Equal(t, len(Steps), total)
}

func TestNew_InvalidThemeFallsBack(t *testing.T) {
	assert.Equal(t, prefs.DefaultTheme, New("theme-neon").Theme())
}

func TestNavigation(t *testing.T) {
	s := New(prefs.DefaultTheme)

	assert.False(t, s.Back(), "cannot go before first step")
	assert.Equal(t, 0, s.Index())

	require.True(t, s.Next())
	assert.Equal(t, StepAssessment, s.Current())

	for s.Next() {
	}
	assert.True(t, s.IsLast())
	assert.Equal(t, StepGitHub, s.Current())
	assert.False(t, s.Next())

	require.True(t, s.Back())
	assert.Equal(t, StepDeploy, s.Current())
}

func TestGoTo_Clamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 0},
		{0, 0},
		{4, 4},
		{len(Steps) - 1, len(Steps) - 1},
		{99, len(Steps) - 1},
	}
	for _, tt := range tests {
		s := New(prefs.DefaultTheme)
		s.GoTo(tt.in)
		assert.Equal(t, tt.want, s.Index())
	}
}

func TestGoToStep(t *testing.T) {
	s := New(prefs.DefaultTheme)
	require.NoError(t, s.GoToStep(StepReview))
	assert.Equal(t, StepReview, s.Current())
	assert.Error(t, s.GoToStep("diagram"))
	assert.Equal(t, StepReview, s.Current())
}

func TestSetTheme(t *testing.T) {
	s := New(prefs.DefaultTheme)
	require.NoError(t, s.SetTheme(prefs.ThemeNature))
	assert.Equal(t, prefs.ThemeNature, s.Theme())

	err := s.SetTheme("theme-neon")
	assert.ErrorIs(t, err, prefs.ErrUnknownTheme)
	assert.Equal(t, prefs.ThemeNature, s.Theme())
}

func TestSessionsAreIndependent(t *testing.T) {
	a := New(prefs.DefaultTheme)
	b := New(prefs.DefaultTheme)
	a.Next()
	assert.Equal(t, 0, b.Index())
}

func TestStepTitles(t *testing.T) {
	for _, st := range Steps {
		assert.NotEqual(t, string(st), st.Title(), "step %q has no title", st)
	}
}

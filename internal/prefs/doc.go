// Package prefs persists the single user preference that survives between
// runs: the visual theme.
package prefs

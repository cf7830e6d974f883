// Package wizard provides the interactive configuration wizard for akswiz.
//
// The wizard walks the steps of a session.Session, showing one
// charmbracelet/huh form per step. Form values are collected in Answers
// and turned into a config.Patch per step, so every edit goes through
// config.Apply. Use WriteConfig to save the result as YAML.
package wizard

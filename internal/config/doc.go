// Package config defines the configuration model shared by every generator,
// the estimator, and the CLI.
//
// [Config] is a value type created by [Default] and replaced on every edit.
// Edits go through [Apply] with a [Patch], or through [AddUserPool] and
// [RemoveUserPool]; each returns a fresh deep copy. [Checks] evaluates the
// fixed, ordered list of validation rules that gates generation.
package config

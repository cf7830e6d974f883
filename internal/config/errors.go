package config

import "errors"

// Errors returned by configuration edits and loading.
var (
	ErrPoolIndexOutOfRange = errors.New("user node pool index out of range")
	ErrInvalidSetFlag      = errors.New("invalid --set value (expected key=value)")
	ErrEmptyPatchKey       = errors.New("patch key must not be empty")
	ErrSetFlagConflict     = errors.New("--set key conflicts with an earlier value")
	ErrInvalidValue        = errors.New("invalid value")
)

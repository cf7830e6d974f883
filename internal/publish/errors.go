package publish

import "errors"

var (
	// ErrMissingToken is returned when no GitHub token is available.
	ErrMissingToken = errors.New("GitHub token is required (set GITHUB_TOKEN or pass --token)")

	// ErrMissingRepository is returned when owner or repo is empty.
	ErrMissingRepository = errors.New("repository owner and name are required")
)

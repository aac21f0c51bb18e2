package resolver

import "errors"

var (
	// ErrProjectRepositoryRequired is returned when a project repository is not provided.
	ErrProjectRepositoryRequired = errors.New("project repository required")
)

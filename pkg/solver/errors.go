package solver

import "errors"

// Sentinel errors for session and resolve failures.
var (
	// ErrEmptyTransaction is returned when a resolve succeeds but selects
	// zero packages despite a non-empty request. A resolver that picks
	// nothing for a real request is an error state, not an empty result.
	ErrEmptyTransaction = errors.New("resolved transaction is empty")

	// ErrNoRepos is returned when repository configuration leaves no
	// usable repositories to register.
	ErrNoRepos = errors.New("no usable repositories configured")
)

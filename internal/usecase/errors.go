package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrNoCoverage means no usable slate covers the requested date.
	ErrNoCoverage = errors.New("no slate coverage")
	// ErrUndecodable means a lineup payload survived none of the
	// decoding strategies.
	ErrUndecodable = errors.New("lineup payload undecodable")
	// ErrLockViolation means a lineup change touches a player whose
	// game already started.
	ErrLockViolation = errors.New("lineup locked")
)

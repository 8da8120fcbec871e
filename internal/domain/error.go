package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidStatus   = errors.New("invalid pagination status")

	// Storage errors
	ErrInvalidExecContext = errors.New("invalid execution context: expected a transaction handle or nil")

	// News errors
	ErrFetch           = errors.New("news fetch failed")
	ErrUnknownSource   = errors.New("unknown news source")
	ErrUnknownCategory = errors.New("unknown news category")
	ErrEmptyFeed       = errors.New("no news in this category")
)

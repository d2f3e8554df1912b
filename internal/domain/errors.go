package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrBlankTitle indicates a save was attempted with an empty title.
	// It is raised before any backend call is made.
	ErrBlankTitle = errors.New("title must not be blank")

	// ErrUnknownCollection indicates a collection name that maps to no
	// registered entity kind.
	ErrUnknownCollection = errors.New("unknown collection")
)

package models

import (
	"errors"
)

var (
	// ErrGeneral is returned when the database failed in a way we cannot
	// give the user more specific information about.
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrStorageUnavailable is returned when the store cannot be opened.
	// Nothing can proceed without the store, callers must treat this as fatal.
	ErrStorageUnavailable = errors.New("the local storage engine is unavailable")

	// ErrResourceNotFound is the base error for all "no such resource"
	// conditions. The query callback wraps it with the resource name.
	ErrResourceNotFound = errors.New("there is no")

	ErrCategoryNameNotUnique = errors.New("a category with this name already exists")
)

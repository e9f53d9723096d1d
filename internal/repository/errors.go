package repository

import "errors"

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned (wrapped) when an insert or update violates a
// unique constraint, such as a second account for the same email.
var ErrDuplicate = errors.New("already exists")

package repository

import "errors"

// ErrNotFound indicates the row does not exist or belongs to another user.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail indicates a registration against an email that is
// already taken.
var ErrDuplicateEmail = errors.New("email already registered")

package service

import "errors"

// ErrUnauthorized is returned when the acting principal lacks the role
// required for the requested operation.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

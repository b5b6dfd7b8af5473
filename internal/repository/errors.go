// Package repository implements the data access layer over MySQL.  This
// file defines sentinel error values reused across repositories so that
// handlers can distinguish failure scenarios, e.g. a duplicate email on
// account creation versus a plain database error.
package repository

import "errors"

// ErrEmailExists is returned when creating a user whose normalized email
// is already taken.  Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a referenced user id or email does
// not exist.  Handlers translate this into HTTP 404.
var ErrUserNotFound = errors.New("user not found")

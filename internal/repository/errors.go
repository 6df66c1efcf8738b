// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and services to distinguish between different failure
// scenarios. For example, ErrForbidden indicates that the current user
// is not authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals a uniqueness violation such
// as a duplicate ticket number.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state, such as a UNIQUE
// constraint violation. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrTicketNotFound indicates that a ticket was not located in the DB.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrActivityNotFound indicates that an activity was not located in the DB.
var ErrActivityNotFound = errors.New("activity not found")

// ErrPresenterNotFound indicates that a presenter was not located in the DB.
var ErrPresenterNotFound = errors.New("presenter not found")

// ErrUserNotFound indicates that a user was not located in the DB.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists indicates that registration hit the unique email index.
var ErrEmailExists = errors.New("email already exists")

package service

import "errors"

// Sentinel errors for the reservation state machine.  Handlers map
// these onto HTTP statuses: the state errors become 400 responses and
// ErrNotReservationOwner becomes 403.  Repository not-found errors
// pass through this package untouched.
var (
	// ErrTicketNotAvailable is returned when Reserve targets a ticket
	// that is not in the available state, including the case where a
	// concurrent reservation won the race.
	ErrTicketNotAvailable = errors.New("ticket is not available for reservation")

	// ErrActivityNotOpen is returned when the ticket's owning activity
	// does not accept reservations (closed or postponed).
	ErrActivityNotOpen = errors.New("activity is not open for reservations")

	// ErrTicketNotReserved is returned when Cancel targets a ticket
	// that is not currently reserved.
	ErrTicketNotReserved = errors.New("ticket is not reserved")

	// ErrNotReservationOwner is returned when a non-admin caller tries
	// to cancel a reservation held by someone else.
	ErrNotReservationOwner = errors.New("you do not have permission to cancel this reservation")
)

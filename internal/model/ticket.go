package model

import "time"

// Ticket lifecycle statuses.  A ticket starts as available, moves to
// reserved when a user claims it and returns to available when the
// reservation is cancelled.  The cancelled status exists in the enum
// but is only reachable through a direct admin update; the cancel
// operation releases a ticket back to available instead.
const (
	TicketAvailable = "available"
	TicketReserved  = "reserved"
	TicketCancelled = "cancelled"
)

// Ticket represents a sellable admission unit for an activity as
// stored in the `tickets` table.  Each ticket belongs to exactly one
// activity and can be reserved by at most one user at a time.
//
// Invariants maintained by the reservation flow:
//   - status == reserved  iff UserID is non-nil
//   - status == available iff UserID is nil
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the ticket.
//  Description – optional free-form description.
//  TicketNo    – unique human-facing number ("TKT-xxxxxxxx"), assigned
//                once at creation and never reassigned.
//  PriceCents  – price in cents (two-decimal fixed precision).
//  Status      – lifecycle status (available, reserved, cancelled).
//  UserID      – reserving user, nil while the ticket is not reserved.
//  ActivityID  – owning activity.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Ticket struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	TicketNo    string    `json:"ticket_no"`
	PriceCents  uint32    `json:"price_cents"`
	Status      string    `json:"status"`
	UserID      *uint64   `json:"user_id"`
	ActivityID  uint64    `json:"activity_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// Reservation event actions.
const (
	ActionReserved  = "reserved"
	ActionCancelled = "cancelled"
)

// ReservationEvent is published after a successful ticket state
// transition.  It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.
type ReservationEvent struct {
	Action        string `json:"action"` // reserved | cancelled
	TicketID      uint64 `json:"ticket_id"`
	TicketNo      string `json:"ticket_no"`
	TicketName    string `json:"ticket_name"`
	ActivityID    uint64 `json:"activity_id"`
	UserID        uint64 `json:"user_id"`
	PriceCents    uint32 `json:"price_cents"`
	OccurredAt    string `json:"occurred_at"`
	CancelledBy   uint64 `json:"cancelled_by,omitempty"`   // set on cancel, may differ from UserID for admins
	CancelledRole string `json:"cancelled_role,omitempty"` // role of the canceller
}

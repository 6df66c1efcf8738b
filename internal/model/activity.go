package model

import "time"

// Activity lifecycle statuses.  Only open activities accept new ticket
// reservations; closed and postponed activities keep their tickets but
// reject the reserve operation.
const (
	ActivityOpen      = "open"
	ActivityClosed    = "closed"
	ActivityPostponed = "postponed"
)

// Activity represents a schedulable event as stored in the
// `activities` table.  An activity owns many tickets and many
// presenters via foreign keys on the child rows.
//
// Capacity is informational only: it is stored and returned but never
// checked against the number of reserved tickets, so overbooking is
// possible.  This mirrors the upstream behaviour and is a known gap.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – activity title.
//  Description – optional free-form description.
//  Type        – category tag (e.g. "workshop", "concert").
//  Date        – scheduled date, must be in the future at create/update.
//  Location    – where the activity takes place.
//  Capacity    – advertised capacity (not enforced).
//  Status      – lifecycle status (open, closed, postponed).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Activity struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Capacity    uint32    `json:"capacity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

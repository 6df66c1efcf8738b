// Package service implements the ticket reservation state machine.
// The hot path never touches the HTTP layer or the database directly:
// it consumes a TicketStore and an ActivityGate, so the same logic
// runs against MySQL in production and against in-memory fakes in
// tests.
package service

import (
	"context"

	"github.com/iliyamo/activity-ticketing/internal/model"
)

// TicketStore is the persistence capability the state machine needs.
// Reserve and Release must be conditional updates keyed on the
// expected prior status (compare-and-swap), so that two concurrent
// calls against the same ticket are linearized by storage and exactly
// one observes a row change.
type TicketStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Ticket, error)
	Reserve(ctx context.Context, ticketID, userID uint64) (bool, error)
	Release(ctx context.Context, ticketID uint64) (bool, error)
}

// ActivityGate answers whether an activity currently accepts
// reservations.  The state machine only ever reads activity state.
type ActivityGate interface {
	Status(ctx context.Context, activityID uint64) (string, error)
}

// ReservationService owns all ticket state transitions reachable from
// the public API.
type ReservationService struct {
	tickets    TicketStore
	activities ActivityGate
}

// NewReservationService constructs a ReservationService.  Both
// dependencies must be non-nil.
func NewReservationService(tickets TicketStore, activities ActivityGate) *ReservationService {
	if tickets == nil || activities == nil {
		panic("nil dependency passed to NewReservationService")
	}
	return &ReservationService{tickets: tickets, activities: activities}
}

// Reserve binds an available ticket to the acting user.  Checks run in
// a fixed order so error precedence is deterministic: existence first
// (repository.ErrTicketNotFound), then ticket state
// (ErrTicketNotAvailable), then activity state (ErrActivityNotOpen).
// The mutation itself is a conditional update; if it reports no row
// change the caller lost a race and gets ErrTicketNotAvailable, same
// as if the precondition had failed up front.  No partial mutation is
// ever committed.
func (s *ReservationService) Reserve(ctx context.Context, ticketID, userID uint64) (*model.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TicketAvailable {
		return nil, ErrTicketNotAvailable
	}
	status, err := s.activities.Status(ctx, t.ActivityID)
	if err != nil {
		return nil, err
	}
	if status != model.ActivityOpen {
		return nil, ErrActivityNotOpen
	}
	ok, err := s.tickets.Reserve(ctx, ticketID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: someone reserved between our read and the
		// conditional update.
		return nil, ErrTicketNotAvailable
	}
	return s.tickets.GetByID(ctx, ticketID)
}

// Peek returns the current state of a ticket without mutating it.
// Handlers use it to capture the reserving user before a cancel
// clears the attribution.
func (s *ReservationService) Peek(ctx context.Context, ticketID uint64) (*model.Ticket, error) {
	return s.tickets.GetByID(ctx, ticketID)
}

// Cancel releases a reserved ticket back to available.  Check order:
// existence, then ticket state (ErrTicketNotReserved), then permission
// (the reserving user or any admin, else ErrNotReservationOwner).  The
// release is the same conditional-update pattern as Reserve; a missed
// update after the checks passed means a concurrent cancel already
// released the ticket, reported as ErrTicketNotReserved.
func (s *ReservationService) Cancel(ctx context.Context, ticketID, userID uint64, role string) (*model.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t.Status != model.TicketReserved {
		return nil, ErrTicketNotReserved
	}
	if (t.UserID == nil || *t.UserID != userID) && role != model.RoleAdmin {
		return nil, ErrNotReservationOwner
	}
	ok, err := s.tickets.Release(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTicketNotReserved
	}
	return s.tickets.GetByID(ctx, ticketID)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/model"
	"github.com/iliyamo/activity-ticketing/internal/queue"
	"github.com/iliyamo/activity-ticketing/internal/repository"
	"github.com/iliyamo/activity-ticketing/internal/service"
)

// memTickets implements service.TicketStore in memory with the same
// compare-and-swap contract as the MySQL repository.
type memTickets struct {
	mu      sync.Mutex
	tickets map[uint64]*model.Ticket
}

func (s *memTickets) GetByID(_ context.Context, id uint64) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memTickets) Reserve(_ context.Context, ticketID, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok || t.Status != model.TicketAvailable {
		return false, nil
	}
	u := userID
	t.Status = model.TicketReserved
	t.UserID = &u
	return true, nil
}

func (s *memTickets) Release(_ context.Context, ticketID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[ticketID]
	if !ok || t.Status != model.TicketReserved {
		return false, nil
	}
	t.Status = model.TicketAvailable
	t.UserID = nil
	return true, nil
}

type memGate struct{ statuses map[uint64]string }

func (g *memGate) Status(_ context.Context, id uint64) (string, error) {
	st, ok := g.statuses[id]
	if !ok {
		return "", repository.ErrActivityNotFound
	}
	return st, nil
}

func newReservationFixture(tickets map[uint64]*model.Ticket, statuses map[uint64]string) *ReservationHandler {
	svc := service.NewReservationService(&memTickets{tickets: tickets}, &memGate{statuses: statuses})
	return &ReservationHandler{
		Reservations: svc,
		Publish:      func(context.Context, queue.ReservationEvent) error { return nil },
	}
}

// doReservation drives a handler method through echo's request
// machinery with an authenticated principal already bound to the
// context.
func doReservation(h echo.HandlerFunc, ticketID string, userID uint64, role string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(ticketID)
	c.Set("user_id", userID)
	c.Set("role", role)
	_ = h(c)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestReservationHandler_Reserve(t *testing.T) {
	t.Run("success returns reserved ticket", func(t *testing.T) {
		h := newReservationFixture(
			map[uint64]*model.Ticket{42: {ID: 42, Name: "GA", TicketNo: "TKT-0a1b2c3d", Status: model.TicketAvailable, ActivityID: 7}},
			map[uint64]string{7: model.ActivityOpen},
		)
		rec := doReservation(h.Reserve, "42", 9, model.RoleUser)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		body := decodeBody(t, rec)
		if body["status"] != "success" {
			t.Fatalf("envelope status = %v, want success", body["status"])
		}
		ticket := body["data"].(map[string]interface{})["ticket"].(map[string]interface{})
		if ticket["status"] != model.TicketReserved {
			t.Errorf("ticket status = %v, want %q", ticket["status"], model.TicketReserved)
		}
		if ticket["user_id"] != float64(9) {
			t.Errorf("ticket user_id = %v, want 9", ticket["user_id"])
		}
	})

	t.Run("unknown ticket answers 404", func(t *testing.T) {
		h := newReservationFixture(map[uint64]*model.Ticket{}, map[uint64]string{})
		rec := doReservation(h.Reserve, "42", 9, model.RoleUser)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("already reserved answers 400", func(t *testing.T) {
		owner := uint64(3)
		h := newReservationFixture(
			map[uint64]*model.Ticket{42: {ID: 42, Status: model.TicketReserved, UserID: &owner, ActivityID: 7}},
			map[uint64]string{7: model.ActivityOpen},
		)
		rec := doReservation(h.Reserve, "42", 9, model.RoleUser)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if body := decodeBody(t, rec); body["status"] != "fail" {
			t.Errorf("envelope status = %v, want fail", body["status"])
		}
	})

	t.Run("closed activity answers 400", func(t *testing.T) {
		h := newReservationFixture(
			map[uint64]*model.Ticket{42: {ID: 42, Status: model.TicketAvailable, ActivityID: 7}},
			map[uint64]string{7: model.ActivityClosed},
		)
		rec := doReservation(h.Reserve, "42", 9, model.RoleUser)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("bad ticket id answers 400", func(t *testing.T) {
		h := newReservationFixture(map[uint64]*model.Ticket{}, map[uint64]string{})
		rec := doReservation(h.Reserve, "abc", 9, model.RoleUser)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestReservationHandler_Cancel(t *testing.T) {
	t.Run("owner cancel releases ticket", func(t *testing.T) {
		owner := uint64(9)
		h := newReservationFixture(
			map[uint64]*model.Ticket{42: {ID: 42, Status: model.TicketReserved, UserID: &owner, ActivityID: 7}},
			map[uint64]string{7: model.ActivityOpen},
		)
		rec := doReservation(h.Cancel, "42", 9, model.RoleUser)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		body := decodeBody(t, rec)
		ticket := body["data"].(map[string]interface{})["ticket"].(map[string]interface{})
		if ticket["status"] != model.TicketAvailable {
			t.Errorf("ticket status = %v, want %q", ticket["status"], model.TicketAvailable)
		}
		if ticket["user_id"] != nil {
			t.Errorf("ticket user_id = %v, want null", ticket["user_id"])
		}
	})

	t.Run("non-owner cancel answers 403", func(t *testing.T) {
		owner := uint64(3)
		h := newReservationFixture(
			map[uint64]*model.Ticket{42: {ID: 42, Status: model.TicketReserved, UserID: &owner, ActivityID: 7}},
			map[uint64]string{7: model.ActivityOpen},
		)
		rec := doReservation(h.Cancel, "42", 9, model.RoleUser)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("admin cancel of another user's reservation succeeds", func(t *testing.T) {
		owner := uint64(3)
		h := newReservationFixture(
			map[uint64]*model.Ticket{42: {ID: 42, Status: model.TicketReserved, UserID: &owner, ActivityID: 7}},
			map[uint64]string{7: model.ActivityOpen},
		)
		rec := doReservation(h.Cancel, "42", 1, model.RoleAdmin)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("cancel of available ticket answers 400", func(t *testing.T) {
		h := newReservationFixture(
			map[uint64]*model.Ticket{42: {ID: 42, Status: model.TicketAvailable, ActivityID: 7}},
			map[uint64]string{7: model.ActivityOpen},
		)
		rec := doReservation(h.Cancel, "42", 9, model.RoleUser)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestReservationHandler_PublishesEvents(t *testing.T) {
	svc := service.NewReservationService(
		&memTickets{tickets: map[uint64]*model.Ticket{42: {ID: 42, Name: "GA", TicketNo: "TKT-0a1b2c3d", Status: model.TicketAvailable, ActivityID: 7, PriceCents: 2500}}},
		&memGate{statuses: map[uint64]string{7: model.ActivityOpen}},
	)
	got := make(chan queue.ReservationEvent, 2)
	h := &ReservationHandler{
		Reservations: svc,
		Publish: func(_ context.Context, ev queue.ReservationEvent) error {
			got <- ev
			return nil
		},
	}

	if rec := doReservation(h.Reserve, "42", 9, model.RoleUser); rec.Code != http.StatusOK {
		t.Fatalf("reserve status = %d, want %d", rec.Code, http.StatusOK)
	}
	ev := waitEvent(t, got)
	if ev.Action != queue.ActionReserved || ev.TicketID != 42 || ev.UserID != 9 || ev.PriceCents != 2500 {
		t.Errorf("reserve event = %+v", ev)
	}

	if rec := doReservation(h.Cancel, "42", 1, model.RoleAdmin); rec.Code != http.StatusOK {
		t.Fatalf("cancel status = %d, want %d", rec.Code, http.StatusOK)
	}
	ev = waitEvent(t, got)
	if ev.Action != queue.ActionCancelled || ev.UserID != 9 || ev.CancelledBy != 1 || ev.CancelledRole != model.RoleAdmin {
		t.Errorf("cancel event = %+v", ev)
	}
}

func waitEvent(t *testing.T, ch <-chan queue.ReservationEvent) queue.ReservationEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published event")
		return queue.ReservationEvent{}
	}
}

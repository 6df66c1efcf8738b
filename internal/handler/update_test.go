package handler

import (
	"testing"
	"time"

	"github.com/iliyamo/activity-ticketing/internal/model"
)

func ptr[T any](v T) *T { return &v }

// Partial updates must distinguish a field that is absent from one
// that is present with a zero value: absent keeps the stored value,
// present always overwrites, zeroes included.

func TestUpdateTicketRequest_ApplyTo(t *testing.T) {
	owner := uint64(9)
	base := func() *model.Ticket {
		return &model.Ticket{
			ID:          42,
			Name:        "General Admission",
			Description: ptr("front row"),
			TicketNo:    "TKT-0a1b2c3d",
			PriceCents:  2500,
			Status:      model.TicketReserved,
			UserID:      &owner,
			ActivityID:  7,
		}
	}

	t.Run("empty request changes nothing", func(t *testing.T) {
		got := base()
		if err := (updateTicketRequest{}).applyTo(got); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		want := base()
		if got.Name != want.Name || got.PriceCents != want.PriceCents || got.Status != want.Status {
			t.Errorf("fields changed by empty request: %+v", got)
		}
		if got.UserID == nil || *got.UserID != owner {
			t.Errorf("user_id changed by empty request: %v", got.UserID)
		}
		if got.Description == nil || *got.Description != "front row" {
			t.Errorf("description changed by empty request: %v", got.Description)
		}
	})

	t.Run("explicit zero price overwrites", func(t *testing.T) {
		got := base()
		if err := (updateTicketRequest{PriceCents: ptr(uint32(0))}).applyTo(got); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.PriceCents != 0 {
			t.Errorf("price_cents = %d, want 0", got.PriceCents)
		}
		if got.Name != "General Admission" {
			t.Errorf("name changed alongside price: %q", got.Name)
		}
	})

	t.Run("explicit empty description overwrites", func(t *testing.T) {
		got := base()
		if err := (updateTicketRequest{Description: ptr("")}).applyTo(got); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.Description == nil || *got.Description != "" {
			t.Errorf("description = %v, want explicit empty string", got.Description)
		}
	})

	t.Run("zero user_id clears the reserving user", func(t *testing.T) {
		got := base()
		if err := (updateTicketRequest{UserID: ptr(uint64(0))}).applyTo(got); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.UserID != nil {
			t.Errorf("user_id = %v, want nil", got.UserID)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		got := base()
		if err := (updateTicketRequest{Name: ptr("  ")}).applyTo(got); err == nil {
			t.Error("blank name accepted")
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		got := base()
		if err := (updateTicketRequest{Status: ptr("expired")}).applyTo(got); err == nil {
			t.Error("unknown status accepted")
		}
	})

	t.Run("status cancelled accepted", func(t *testing.T) {
		got := base()
		if err := (updateTicketRequest{Status: ptr(model.TicketCancelled)}).applyTo(got); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.Status != model.TicketCancelled {
			t.Errorf("status = %q, want %q", got.Status, model.TicketCancelled)
		}
	})
}

func TestUpdateActivityRequest_ApplyTo(t *testing.T) {
	base := func() *model.Activity {
		return &model.Activity{
			ID:       7,
			Title:    "Go Workshop",
			Type:     "workshop",
			Date:     time.Now().UTC().Add(48 * time.Hour),
			Location: "Hall B",
			Capacity: 120,
			Status:   model.ActivityOpen,
		}
	}

	t.Run("absent capacity keeps stored value", func(t *testing.T) {
		got := base()
		if err := (updateActivityRequest{Title: ptr("Go Conference")}).applyTo(got); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.Capacity != 120 {
			t.Errorf("capacity = %d, want 120", got.Capacity)
		}
		if got.Title != "Go Conference" {
			t.Errorf("title = %q, want %q", got.Title, "Go Conference")
		}
	})

	t.Run("explicit zero capacity overwrites", func(t *testing.T) {
		got := base()
		if err := (updateActivityRequest{Capacity: ptr(uint32(0))}).applyTo(got); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.Capacity != 0 {
			t.Errorf("capacity = %d, want 0", got.Capacity)
		}
	})

	t.Run("past date rejected without partial mutation", func(t *testing.T) {
		got := base()
		err := (updateActivityRequest{Date: ptr(time.Now().UTC().Add(-time.Hour))}).applyTo(got)
		if err == nil {
			t.Fatal("past date accepted")
		}
		if !got.Date.After(time.Now().UTC()) {
			t.Errorf("stored date mutated on rejected update: %v", got.Date)
		}
	})

	t.Run("status postponed accepted, unknown rejected", func(t *testing.T) {
		got := base()
		if err := (updateActivityRequest{Status: ptr(model.ActivityPostponed)}).applyTo(got); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.Status != model.ActivityPostponed {
			t.Errorf("status = %q, want %q", got.Status, model.ActivityPostponed)
		}
		if err := (updateActivityRequest{Status: ptr("archived")}).applyTo(got); err == nil {
			t.Error("unknown status accepted")
		}
	})
}

func TestUpdateUserRequest_ApplyTo(t *testing.T) {
	base := func() *model.User {
		return &model.User{
			ID:    9,
			Name:  "Dana",
			Email: "dana@example.com",
			Role:  model.RoleUser,
		}
	}

	t.Run("absent fields keep stored values", func(t *testing.T) {
		got := base()
		if err := (updateUserRequest{Phone: ptr("555-0100")}).applyTo(got, false); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.Name != "Dana" || got.Email != "dana@example.com" || got.Role != model.RoleUser {
			t.Errorf("unrelated fields changed: %+v", got)
		}
		if got.Phone == nil || *got.Phone != "555-0100" {
			t.Errorf("phone = %v, want 555-0100", got.Phone)
		}
	})

	t.Run("email normalized to lowercase", func(t *testing.T) {
		got := base()
		if err := (updateUserRequest{Email: ptr("Dana.New@Example.COM")}).applyTo(got, false); err != nil {
			t.Fatalf("applyTo: %v", err)
		}
		if got.Email != "dana.new@example.com" {
			t.Errorf("email = %q, want lowercased", got.Email)
		}
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		got := base()
		if err := (updateUserRequest{Email: ptr("not-an-email")}).applyTo(got, false); err == nil {
			t.Error("invalid email accepted")
		}
	})

	t.Run("role change requires admin", func(t *testing.T) {
		got := base()
		if err := (updateUserRequest{Role: ptr(model.RoleAdmin)}).applyTo(got, false); err == nil {
			t.Error("non-admin role change accepted")
		}
		if got.Role != model.RoleUser {
			t.Errorf("role mutated on rejected update: %q", got.Role)
		}
		if err := (updateUserRequest{Role: ptr(model.RoleAdmin)}).applyTo(got, true); err != nil {
			t.Fatalf("admin role change rejected: %v", err)
		}
		if got.Role != model.RoleAdmin {
			t.Errorf("role = %q, want %q", got.Role, model.RoleAdmin)
		}
	})

	t.Run("unknown role rejected even for admin", func(t *testing.T) {
		got := base()
		if err := (updateUserRequest{Role: ptr("superuser")}).applyTo(got, true); err == nil {
			t.Error("unknown role accepted")
		}
	})
}

package utils

import (
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"no-at-sign.example.com", false},
		{"user@nodot", false},
		{"user @example.com", false},
		{"", false},
		{"@example.com", false},
		{"user@.com", false},
	}
	for _, tc := range cases {
		if got := IsValidEmail(tc.email); got != tc.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes present", "Passw0rd", true},
		{"too short", "Pw0rd", false},
		{"no uppercase", "passw0rd", false},
		{"no lowercase", "PASSW0RD", false},
		{"no digit", "Password", false},
		{"long with symbols", "Very$ecure123", true},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsStrongPassword(tc.password); got != tc.want {
				t.Errorf("IsStrongPassword(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}
}

func TestIsFutureDate(t *testing.T) {
	if !IsFutureDate(time.Now().UTC().Add(time.Hour)) {
		t.Error("one hour ahead should be a future date")
	}
	if IsFutureDate(time.Now().UTC().Add(-time.Hour)) {
		t.Error("one hour ago should not be a future date")
	}
}

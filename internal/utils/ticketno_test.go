package utils

import (
	"strings"
	"testing"
)

func TestNewTicketNo(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		no := NewTicketNo()
		if !strings.HasPrefix(no, TicketNoPrefix) {
			t.Fatalf("ticket number %q missing %q prefix", no, TicketNoPrefix)
		}
		if len(no) != len(TicketNoPrefix)+8 {
			t.Fatalf("ticket number %q has wrong length", no)
		}
		if !IsTicketNo(no) {
			t.Fatalf("generated ticket number %q fails IsTicketNo", no)
		}
		if seen[no] {
			t.Fatalf("duplicate ticket number %q in 100 draws", no)
		}
		seen[no] = true
	}
}

func TestIsTicketNo(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"TKT-0a1b2c3d", true},
		{"TKT-00000000", true},
		{"tkt-0a1b2c3d", false},
		{"TKT-0a1b2c3", false},
		{"TKT-0a1b2c3de", false},
		{"TKT-0A1B2C3D", false},
		{"TKT-0a1b2g3d", false},
		{"0a1b2c3d", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsTicketNo(tc.in); got != tc.want {
			t.Errorf("IsTicketNo(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

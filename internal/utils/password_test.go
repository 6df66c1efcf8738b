package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("hash must not equal the plain password")
	}
	if !VerifyPassword(hash, "Sup3rSecret") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "WrongPassword1") {
		t.Error("wrong password accepted")
	}
}

func TestHashRefreshRawDeterministic(t *testing.T) {
	a := HashRefreshRaw("some-raw-token")
	b := HashRefreshRaw("some-raw-token")
	if a != b {
		t.Error("same input must hash identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if a == HashRefreshRaw("other-raw-token") {
		t.Error("different inputs must not collide")
	}
}

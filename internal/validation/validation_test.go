package validation

import (
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{name: "simple", email: "a@b.com", valid: true},
		{name: "subdomain", email: "guest@mail.hive.ru", valid: true},
		{name: "no at", email: "guest.hive.ru", valid: false},
		{name: "no dot after at", email: "guest@hive", valid: false},
		{name: "space inside", email: "gu est@hive.ru", valid: false},
		{name: "two ats", email: "a@b@c.ru", valid: false},
		{name: "empty", email: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.valid {
				t.Fatalf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}

func TestLengthCountsRunes(t *testing.T) {
	if got := Length("мёд"); got != 3 {
		t.Fatalf("Length = %d, want 3", got)
	}
}

func TestHasBlank(t *testing.T) {
	if !HasBlank("a", "  ") {
		t.Fatalf("expected blank value to be detected")
	}
	if HasBlank("a", "b") {
		t.Fatalf("expected no blank values")
	}
}

func TestNotBefore(t *testing.T) {
	now := time.Date(2026, time.October, 16, 18, 30, 0, 0, time.UTC)

	today, err := ParseDate("2026-10-16", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	yesterday, _ := ParseDate("2026-10-15", time.UTC)
	tomorrow, _ := ParseDate("2026-10-17", time.UTC)

	if !NotBefore(today, now) {
		t.Fatalf("today must be accepted")
	}
	if NotBefore(yesterday, now) {
		t.Fatalf("yesterday must be rejected")
	}
	if !NotBefore(tomorrow, now) {
		t.Fatalf("tomorrow must be accepted")
	}
}

package domain

import (
	"testing"
	"time"
)

func TestSlotTimes_Template(t *testing.T) {
	slots := SlotTimes()

	if len(slots) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(slots))
	}
	if slots[0] != "10:00:00" {
		t.Errorf("first slot must be 10:00:00, got %s", slots[0])
	}
	if slots[len(slots)-1] != "15:30:00" {
		t.Errorf("last slot must be 15:30:00, got %s", slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i-1] >= slots[i] {
			t.Errorf("slots out of order: %s before %s", slots[i-1], slots[i])
		}
	}
}

func TestSlotTimes_FreshSlice(t *testing.T) {
	a := SlotTimes()
	a[0] = "mutated"
	if SlotTimes()[0] != "10:00:00" {
		t.Error("SlotTimes must not share backing storage between calls")
	}
}

func TestIsSlotTime(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"10:00:00", true},
		{"15:30:00", true},
		{"12:30:00", true},
		{"16:00:00", false}, // closing boundary is exclusive
		{"09:30:00", false},
		{"10:15:00", false},
		{"10:00", false}, // wrong format, no tolerance
		{"", false},
	}
	for _, tc := range cases {
		if got := IsSlotTime(tc.value); got != tc.want {
			t.Errorf("IsSlotTime(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestIsWeekday(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 7; d++ {
		day := monday.AddDate(0, 0, d)
		want := day.Weekday() != time.Saturday && day.Weekday() != time.Sunday
		if got := IsWeekday(day); got != want {
			t.Errorf("IsWeekday(%s) = %v, want %v", day.Weekday(), got, want)
		}
	}
}

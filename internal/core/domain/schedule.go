package domain

import (
	"fmt"
	"time"
)

// Business-hours slot template: every 30-minute boundary from 10:00 inclusive
// to 16:00 exclusive, giving 12 bookable slots per weekday.
const (
	scheduleOpenHour  = 10
	scheduleCloseHour = 16
	slotMinutes       = 30
)

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// SlotTimes returns the fixed slot template as "HH:MM:SS" values in ascending
// order. The returned slice is freshly allocated on each call.
func SlotTimes() []string {
	slots := make([]string, 0, (scheduleCloseHour-scheduleOpenHour)*60/slotMinutes)
	for hour := scheduleOpenHour; hour < scheduleCloseHour; hour++ {
		for minute := 0; minute < 60; minute += slotMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d:00", hour, minute))
		}
	}
	return slots
}

// IsSlotTime reports whether value is a member of the slot template.
func IsSlotTime(value string) bool {
	for _, slot := range SlotTimes() {
		if slot == value {
			return true
		}
	}
	return false
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

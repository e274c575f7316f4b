package service

import "github.com/nbrain/onboarding-portal/internal/core/domain"

// AvailableSlots computes the open slots for a date given the times already
// booked on it: the fixed slot template minus exact matches, in template
// (ascending) order. It is a pure function; weekday filtering and date-range
// validation are the caller's responsibility.
func AvailableSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	template := domain.SlotTimes()
	open := make([]string, 0, len(template))
	for _, slot := range template {
		if _, ok := taken[slot]; !ok {
			open = append(open, slot)
		}
	}
	return open
}

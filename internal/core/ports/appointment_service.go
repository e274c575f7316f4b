package ports

import (
	"context"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
)

// BookInput carries all data needed to book an appointment slot.
type BookInput struct {
	CredentialID   string
	Name           string
	CompanyName    string
	Email          string
	Date           string // "YYYY-MM-DD"
	Time           string // "HH:MM:SS", must be a slot template value
	IdempotencyKey string
}

// BookResult is returned by the service after booking a slot.
type BookResult struct {
	Appointment *domain.Appointment
	// AlreadyExisted is true when the Idempotency-Key matched an existing booking.
	AlreadyExisted bool
}

// AppointmentService defines use-case operations for scheduling.
type AppointmentService interface {
	Book(ctx context.Context, input BookInput) (*BookResult, error)
	// Availability returns the open slot times for a weekday date in
	// ascending template order.
	Availability(ctx context.Context, date string) ([]string, error)
	List(ctx context.Context) ([]AppointmentWithCredential, error)
}

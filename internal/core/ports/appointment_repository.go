package ports

import (
	"context"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
)

// AppointmentWithCredential is an appointment joined with the display name of
// the credential that prompted it. CredentialName is empty when the weak
// credential reference does not resolve.
type AppointmentWithCredential struct {
	domain.Appointment
	CredentialName string
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	// Insert persists a new appointment. Returns domain.ErrSlotUnavailable
	// when the storage layer's uniqueness guarantee on (date, time) among
	// scheduled appointments rejects the write.
	Insert(ctx context.Context, a *domain.Appointment) error
	// FindScheduled returns the scheduled appointment occupying the exact
	// (date, timeOfDay) pair, or domain.ErrAppointmentNotFound.
	FindScheduled(ctx context.Context, date, timeOfDay string) (*domain.Appointment, error)
	// BookedTimes returns the times of all scheduled appointments on date.
	BookedTimes(ctx context.Context, date string) ([]string, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Appointment, error)
	// ListNewestFirst returns all appointments ordered by date then time,
	// both descending, joined with their credential names.
	ListNewestFirst(ctx context.Context) ([]AppointmentWithCredential, error)
}

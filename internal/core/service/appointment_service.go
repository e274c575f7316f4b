package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

const weekdayOnlyMessage = "appointments are available Monday through Friday"

type AppointmentService struct {
	repo        ports.AppointmentRepository
	loc         *time.Location
	horizonDays int
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAppointmentService builds the scheduling service. loc is the fixed
// business timezone; horizonDays bounds how far ahead a slot can be booked.
func NewAppointmentService(repo ports.AppointmentRepository, loc *time.Location, horizonDays int, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		loc:         loc,
		horizonDays: horizonDays,
		logger:      logger,
		now:         time.Now,
	}
}

// Book attempts to reserve a slot. Validation order: required contact fields
// (name, company_name, email, each trimmed), then date, then time. The
// pre-insert availability read gives a friendly conflict early, but the
// repository's uniqueness guarantee on (date, time) among scheduled
// appointments is the source of truth.
func (s *AppointmentService) Book(ctx context.Context, input ports.BookInput) (*ports.BookResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	companyName := strings.TrimSpace(input.CompanyName)
	if companyName == "" {
		return nil, domain.NewValidationError("company_name", "company_name is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}

	if input.Date == "" {
		return nil, domain.NewValidationError("appointment_date", "appointment_date is required")
	}
	if input.Time == "" {
		return nil, domain.NewValidationError("appointment_time", "appointment_time is required")
	}

	date, err := time.ParseInLocation(domain.DateLayout, input.Date, s.loc)
	if err != nil {
		return nil, domain.NewValidationError("appointment_date", "appointment_date must be formatted YYYY-MM-DD")
	}
	if !domain.IsSlotTime(input.Time) {
		return nil, domain.NewValidationError("appointment_time", "appointment_time is not a bookable slot")
	}
	if !domain.IsWeekday(date) {
		return nil, domain.NewValidationError("appointment_date", weekdayOnlyMessage)
	}

	today := s.today()
	earliest := today.AddDate(0, 0, 1)
	latest := today.AddDate(0, 0, s.horizonDays)
	if date.Before(earliest) {
		return nil, domain.NewValidationError("appointment_date", "appointment_date must be at least one day in the future")
	}
	if date.After(latest) {
		return nil, domain.NewValidationError("appointment_date",
			fmt.Sprintf("appointment_date must be within %d days", s.horizonDays))
	}

	if input.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().
				Str("idempotency_key", input.IdempotencyKey).
				Str("appointment_id", existing.ID).
				Msg("idempotent replay")
			return &ports.BookResult{Appointment: existing, AlreadyExisted: true}, nil
		}
	}

	_, err = s.repo.FindScheduled(ctx, input.Date, input.Time)
	if err == nil {
		return nil, domain.ErrSlotUnavailable
	}
	if !errors.Is(err, domain.ErrAppointmentNotFound) {
		return nil, fmt.Errorf("book: check slot: %w", err)
	}

	appointment := &domain.Appointment{
		CredentialID:   input.CredentialID,
		Name:           name,
		CompanyName:    companyName,
		Email:          email,
		Date:           input.Date,
		Time:           input.Time,
		Status:         domain.AppointmentScheduled,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, appointment); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			// Lost the race between the pre-check and the insert; the unique
			// index rejected the write.
			return nil, domain.ErrSlotUnavailable
		}
		s.logger.Error().Err(err).Msg("failed to insert appointment")
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", appointment.ID).
		Str("date", appointment.Date).
		Str("time", appointment.Time).
		Msg("appointment booked")

	return &ports.BookResult{Appointment: appointment}, nil
}

// Availability returns the open slots for date. Weekend dates are rejected at
// this boundary with the weekday-only message; the slot calculator itself
// stays weekday-agnostic.
func (s *AppointmentService) Availability(ctx context.Context, date string) ([]string, error) {
	if date == "" {
		return nil, domain.NewValidationError("date", "date query parameter is required")
	}
	parsed, err := time.ParseInLocation(domain.DateLayout, date, s.loc)
	if err != nil {
		return nil, domain.NewValidationError("date", "date must be formatted YYYY-MM-DD")
	}
	if !domain.IsWeekday(parsed) {
		return nil, domain.NewValidationError("date", weekdayOnlyMessage)
	}

	booked, err := s.repo.BookedTimes(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	return AvailableSlots(booked), nil
}

// List returns every appointment, newest first, joined with credential names.
func (s *AppointmentService) List(ctx context.Context) ([]ports.AppointmentWithCredential, error) {
	return s.repo.ListNewestFirst(ctx)
}

// today is midnight of the current business-timezone day.
func (s *AppointmentService) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

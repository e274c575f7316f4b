package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
// There is no cancellation path; scheduled is currently the only state.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
)

var ErrAppointmentNotFound = errors.New("appointment not found")
var ErrSlotUnavailable = errors.New("this time slot is no longer available")

// Appointment is a booked onboarding call. Date is "YYYY-MM-DD" and Time is
// an "HH:MM:SS" value from the business-hours slot template, both interpreted
// in the fixed business timezone.
type Appointment struct {
	ID             string            `json:"id" bson:"_id,omitempty"`
	CredentialID   string            `json:"credential_id" bson:"credential_id,omitempty"`
	Name           string            `json:"name" bson:"name"`
	CompanyName    string            `json:"company_name" bson:"company_name"`
	Email          string            `json:"email" bson:"email"`
	Date           string            `json:"appointment_date" bson:"appointment_date"`
	Time           string            `json:"appointment_time" bson:"appointment_time"`
	Status         AppointmentStatus `json:"status" bson:"status"`
	IdempotencyKey string            `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
}

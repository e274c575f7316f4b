package handler

import (
	"github.com/nbrain/onboarding-portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// bookAppointmentRequest carries a booking submission. The validate tags give
// a fast required-field rejection at the transport boundary; the service
// re-checks with trimming, so whitespace-only values are still rejected with
// the same field-specific messages.
type bookAppointmentRequest struct {
	CredentialID    string `json:"credential_id"`
	Name            string `json:"name"             validate:"required"`
	CompanyName     string `json:"company_name"     validate:"required"`
	Email           string `json:"email"            validate:"required"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
}

type availableSlotsResponse struct {
	Available []string `json:"available"`
}

// appointmentListItem is an appointment joined with the name of the
// credential that prompted it, as rendered in list responses.
type appointmentListItem struct {
	domain.Appointment
	CredentialName string `json:"credential_name,omitempty"`
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nbrain/onboarding-portal/internal/api/metrics"
	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

// ActivityDispatcher is the interface handlers use to enqueue audit events.
type ActivityDispatcher interface {
	Enqueue(event ports.ActivityEventInput)
}

// AppointmentHandler handles HTTP requests for scheduling operations.
type AppointmentHandler struct {
	service  ports.AppointmentService
	activity ActivityDispatcher
}

func NewAppointmentHandler(service ports.AppointmentService, activity ActivityDispatcher) *AppointmentHandler {
	return &AppointmentHandler{service: service, activity: activity}
}

// Available handles GET /api/appointments/available?date=YYYY-MM-DD.
//
// @Summary      List open 30-minute slots for a weekday date
// @Tags         appointments
// @Produce      json
// @Param        date  query     string  true  "Calendar date (YYYY-MM-DD)"
// @Success      200   {object}  availableSlotsResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/appointments/available [get]
func (h *AppointmentHandler) Available(c echo.Context) error {
	slots, err := h.service.Availability(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availableSlotsResponse{Available: slots})
}

// Book handles POST /api/appointments.
//
// @Summary      Book an onboarding call slot
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                  false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      bookAppointmentRequest  true   "Booking details"
// @Success      200              {object}  domain.Appointment
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Book(c.Request().Context(), ports.BookInput{
		CredentialID:   req.CredentialID,
		Name:           req.Name,
		CompanyName:    req.CompanyName,
		Email:          req.Email,
		Date:           req.AppointmentDate,
		Time:           req.AppointmentTime,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			metrics.BookingConflictsTotal.Inc()
		}
		return err
	}

	if !result.AlreadyExisted {
		metrics.BookingsCreatedTotal.Inc()
		h.activity.Enqueue(ports.ActivityEventInput{
			Kind:      domain.ActivityBookingCreated,
			Ref:       result.Appointment.ID,
			Detail:    result.Appointment.Date + " " + result.Appointment.Time,
			Timestamp: time.Now().UTC(),
		})
	}

	return c.JSON(http.StatusOK, result.Appointment)
}

// List handles GET /api/appointments: all bookings, newest first.
//
// @Summary      List all appointments with credential names
// @Tags         appointments
// @Produce      json
// @Success      200  {array}   appointmentListItem
// @Failure      500  {object}  errorResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]appointmentListItem, 0, len(items))
	for _, item := range items {
		out = append(out, appointmentListItem{
			Appointment:    item.Appointment,
			CredentialName: item.CredentialName,
		})
	}
	return c.JSON(http.StatusOK, out)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAppointmentService struct {
	bookResult *ports.BookResult
	bookErr    error
	lastInput  ports.BookInput

	slots     []string
	availErr  error
	listItems []ports.AppointmentWithCredential
}

func (s *stubAppointmentService) Book(_ context.Context, input ports.BookInput) (*ports.BookResult, error) {
	s.lastInput = input
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return s.bookResult, nil
}

func (s *stubAppointmentService) Availability(_ context.Context, _ string) ([]string, error) {
	if s.availErr != nil {
		return nil, s.availErr
	}
	return s.slots, nil
}

func (s *stubAppointmentService) List(_ context.Context) ([]ports.AppointmentWithCredential, error) {
	return s.listItems, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []ports.ActivityEventInput
}

func (d *recordingDispatcher) Enqueue(event ports.ActivityEventInput) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// ---------------------------------------------------------------------------
// Book
// ---------------------------------------------------------------------------

const validBookBody = `{
	"credential_id": "cred_1",
	"name": "Jamie Fox",
	"company_name": "Acme Co",
	"email": "jamie@acme.test",
	"appointment_date": "2026-03-03",
	"appointment_time": "10:30:00"
}`

func TestBook_Success(t *testing.T) {
	svc := &stubAppointmentService{
		bookResult: &ports.BookResult{
			Appointment: &domain.Appointment{
				ID:     "appt_1",
				Name:   "Jamie Fox",
				Date:   "2026-03-03",
				Time:   "10:30:00",
				Status: domain.AppointmentScheduled,
			},
		},
	}
	dispatcher := &recordingDispatcher{}
	h := NewAppointmentHandler(svc, dispatcher)

	c, rec := newTestContext(http.MethodPost, "/api/appointments", validBookBody)
	c.Request().Header.Set("Idempotency-Key", "key-123")

	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastInput.IdempotencyKey != "key-123" {
		t.Errorf("idempotency key not forwarded: %q", svc.lastInput.IdempotencyKey)
	}
	if dispatcher.count() != 1 {
		t.Errorf("expected 1 activity event, got %d", dispatcher.count())
	}

	var got domain.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if got.ID != "appt_1" || got.Status != domain.AppointmentScheduled {
		t.Errorf("unexpected response body: %+v", got)
	}
}

func TestBook_IdempotentReplaySkipsActivity(t *testing.T) {
	svc := &stubAppointmentService{
		bookResult: &ports.BookResult{
			Appointment:    &domain.Appointment{ID: "appt_1", Date: "2026-03-03", Time: "10:30:00"},
			AlreadyExisted: true,
		},
	}
	dispatcher := &recordingDispatcher{}
	h := NewAppointmentHandler(svc, dispatcher)

	c, rec := newTestContext(http.MethodPost, "/api/appointments", validBookBody)
	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if dispatcher.count() != 0 {
		t.Errorf("replay must not enqueue activity, got %d events", dispatcher.count())
	}
}

func TestBook_MalformedJSON(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentService{}, &recordingDispatcher{})
	c, _ := newTestContext(http.MethodPost, "/api/appointments", "{not json")

	err := h.Book(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBook_MissingRequiredFields(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentService{}, &recordingDispatcher{})
	c, _ := newTestContext(http.MethodPost, "/api/appointments", `{"email":"x@y.test"}`)

	err := h.Book(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	msg, _ := he.Message.(string)
	if !strings.Contains(msg, "name is required") {
		t.Errorf("message should name the first missing field, got %q", msg)
	}
}

func TestBook_SlotConflictPropagates(t *testing.T) {
	svc := &stubAppointmentService{bookErr: domain.ErrSlotUnavailable}
	dispatcher := &recordingDispatcher{}
	h := NewAppointmentHandler(svc, dispatcher)

	c, _ := newTestContext(http.MethodPost, "/api/appointments", validBookBody)
	err := h.Book(c)
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	if dispatcher.count() != 0 {
		t.Error("failed booking must not enqueue activity")
	}
}

// ---------------------------------------------------------------------------
// Available / List
// ---------------------------------------------------------------------------

func TestAvailable_ReturnsSlots(t *testing.T) {
	svc := &stubAppointmentService{slots: []string{"10:00:00", "10:30:00"}}
	h := NewAppointmentHandler(svc, &recordingDispatcher{})

	c, rec := newTestContext(http.MethodGet, "/api/appointments/available?date=2026-03-03", "")
	if err := h.Available(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got availableSlotsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if len(got.Available) != 2 || got.Available[0] != "10:00:00" {
		t.Errorf("unexpected slots: %v", got.Available)
	}
}

func TestAvailable_ValidationErrorPropagates(t *testing.T) {
	svc := &stubAppointmentService{
		availErr: domain.NewValidationError("appointment_date", "appointment date is required"),
	}
	h := NewAppointmentHandler(svc, &recordingDispatcher{})

	c, _ := newTestContext(http.MethodGet, "/api/appointments/available", "")
	err := h.Available(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestList_IncludesCredentialNames(t *testing.T) {
	svc := &stubAppointmentService{
		listItems: []ports.AppointmentWithCredential{
			{
				Appointment:    domain.Appointment{ID: "appt_2", Date: "2026-03-04", Time: "11:00:00"},
				CredentialName: "Pinecone Account Setup",
			},
			{
				Appointment: domain.Appointment{ID: "appt_1", Date: "2026-03-03", Time: "10:00:00"},
			},
		},
	}
	h := NewAppointmentHandler(svc, &recordingDispatcher{})

	c, rec := newTestContext(http.MethodGet, "/api/appointments", "")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0]["credential_name"] != "Pinecone Account Setup" {
		t.Errorf("credential_name missing from joined item: %v", got[0])
	}
	if _, present := got[1]["credential_name"]; present {
		t.Error("empty credential_name must be omitted")
	}
}

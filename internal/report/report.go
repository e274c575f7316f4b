// Package report renders the read-only admin HTML summary: credential
// completion and booked appointments projected from the two stores, plus
// static reference data supplied through configuration.
package report

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

//go:embed report.gohtml
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "report.gohtml"))

// ReferenceData is static business data shown on the report. It comes from
// configuration; nothing here is hardcoded in the template.
type ReferenceData struct {
	CompanyName      string
	ContactEmail     string
	ReferenceAccount string
}

// Handler renders GET /admin/report.
type Handler struct {
	credentials  ports.CredentialService
	appointments ports.AppointmentService
	ref          ReferenceData
}

func NewHandler(credentials ports.CredentialService, appointments ports.AppointmentService, ref ReferenceData) *Handler {
	return &Handler{credentials: credentials, appointments: appointments, ref: ref}
}

type pageData struct {
	Reference    ReferenceData
	GeneratedAt  string
	Credentials  []*domain.Credential
	Completed    int
	Total        int
	Appointments []ports.AppointmentWithCredential
}

// Render handles GET /admin/report.
func (h *Handler) Render(c echo.Context) error {
	ctx := c.Request().Context()

	credentials, err := h.credentials.List(ctx)
	if err != nil {
		return err
	}
	appointments, err := h.appointments.List(ctx)
	if err != nil {
		return err
	}

	data := pageData{
		Reference:    h.ref,
		GeneratedAt:  time.Now().UTC().Format(time.RFC1123),
		Credentials:  credentials,
		Total:        len(credentials),
		Appointments: appointments,
	}
	for _, cred := range credentials {
		if cred.Completed() {
			data.Completed++
		}
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

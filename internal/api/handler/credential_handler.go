package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nbrain/onboarding-portal/internal/api/metrics"
	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
	"github.com/nbrain/onboarding-portal/internal/infrastructure/storage"
)

// uploadCredentialRequest is the JSON body for text-only fulfillments.
// Multipart submissions carry the same field as a form value instead.
type uploadCredentialRequest struct {
	CredentialText string `json:"credential_text"`
}

// CredentialHandler handles HTTP requests for credential operations.
type CredentialHandler struct {
	service  ports.CredentialService
	uploads  *storage.UploadStore
	activity ActivityDispatcher
}

func NewCredentialHandler(service ports.CredentialService, uploads *storage.UploadStore, activity ActivityDispatcher) *CredentialHandler {
	return &CredentialHandler{service: service, uploads: uploads, activity: activity}
}

// List handles GET /api/credentials.
//
// @Summary      List all required credentials
// @Tags         credentials
// @Produce      json
// @Success      200  {array}   domain.Credential
// @Failure      500  {object}  errorResponse
// @Router       /api/credentials [get]
func (h *CredentialHandler) List(c echo.Context) error {
	credentials, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, credentials)
}

// Get handles GET /api/credentials/:id.
//
// @Summary      Fetch one credential by id
// @Tags         credentials
// @Produce      json
// @Param        id   path      string  true  "Credential id"
// @Success      200  {object}  domain.Credential
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/credentials/{id} [get]
func (h *CredentialHandler) Get(c echo.Context) error {
	credential, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, credential)
}

// Upload handles POST /api/credentials/:id/upload. It fulfills a credential
// with either free text or a single uploaded file. A file takes precedence
// when both are present.
//
// @Summary      Fulfill a credential with text or a file
// @Tags         credentials
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        id               path      string  true   "Credential id"
// @Param        credential_text  formData  string  false  "Free-text credential data"
// @Param        file             formData  file    false  "Credential artifact (PDF, TXT, JPEG, PNG)"
// @Success      200  {object}  domain.Credential
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/credentials/{id}/upload [post]
func (h *CredentialHandler) Upload(c echo.Context) error {
	input := ports.FulfillInput{CredentialID: c.Param("id")}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		var req uploadCredentialRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		input.Text = req.CredentialText
	} else {
		input.Text = c.FormValue("credential_text")
		if fileHeader, err := c.FormFile("file"); err == nil {
			stored, err := h.storeUpload(fileHeader)
			if err != nil {
				return err
			}
			input.File = stored
		}
	}

	credential, err := h.service.Fulfill(c.Request().Context(), input)
	if err != nil {
		return err
	}

	method := "text"
	if input.File != nil {
		method = "file"
	}
	metrics.CredentialsFulfilledTotal.WithLabelValues(method).Inc()
	h.activity.Enqueue(ports.ActivityEventInput{
		Kind:      domain.ActivityCredentialFulfilled,
		Ref:       credential.ID,
		Detail:    credential.Name,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, credential)
}

// storeUpload writes the artifact to disk, translating store rejections into
// 400s and counting them.
func (h *CredentialHandler) storeUpload(fileHeader *multipart.FileHeader) (*ports.UploadedFile, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stored, err := h.uploads.Save(fileHeader.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			metrics.UploadsRejectedTotal.WithLabelValues("too_large").Inc()
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrFileTypeNotAllowed):
			metrics.UploadsRejectedTotal.WithLabelValues("unsupported_type").Inc()
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return nil, err
	}
	return stored, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

type CredentialService struct {
	repo   ports.CredentialRepository
	logger zerolog.Logger
}

func NewCredentialService(repo ports.CredentialRepository, logger zerolog.Logger) *CredentialService {
	return &CredentialService{repo: repo, logger: logger}
}

func (s *CredentialService) List(ctx context.Context) ([]*domain.Credential, error) {
	return s.repo.List(ctx)
}

func (s *CredentialService) Get(ctx context.Context, id string) (*domain.Credential, error) {
	return s.repo.FindByID(ctx, id)
}

// Fulfill accepts fulfillment data for one credential and marks it completed.
// A file takes precedence over accompanying text; neither present is a
// validation failure. Re-submitting overwrites prior fulfillment data with no
// history retained.
func (s *CredentialService) Fulfill(ctx context.Context, input ports.FulfillInput) (*domain.Credential, error) {
	text := strings.TrimSpace(input.Text)

	update := ports.FulfillmentUpdate{UpdatedAt: time.Now().UTC()}
	switch {
	case input.File != nil:
		update.Data = "File uploaded: " + input.File.OriginalName
		update.FilePath = &input.File.StoredPath
		update.FileType = &input.File.ContentType
	case text != "":
		update.Data = text
	default:
		return nil, domain.ErrNoFulfillmentData
	}

	credential, err := s.repo.UpdateFulfillment(ctx, input.CredentialID, update)
	if err != nil {
		return nil, err
	}

	method := "text"
	if input.File != nil {
		method = "file"
	}
	s.logger.Info().
		Str("credential_id", credential.ID).
		Str("credential", credential.Name).
		Str("method", method).
		Msg("credential fulfilled")

	return credential, nil
}

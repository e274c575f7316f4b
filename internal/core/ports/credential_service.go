package ports

import (
	"context"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
)

// UploadedFile describes an artifact already accepted and written to disk by
// the upload store.
type UploadedFile struct {
	OriginalName string
	StoredPath   string
	ContentType  string
}

// FulfillInput carries fulfillment data for one credential. When File is
// non-nil it takes precedence over Text; both absent is a validation failure.
type FulfillInput struct {
	CredentialID string
	Text         string
	File         *UploadedFile
}

// CredentialService defines use-case operations for credentials.
type CredentialService interface {
	List(ctx context.Context) ([]*domain.Credential, error)
	Get(ctx context.Context, id string) (*domain.Credential, error)
	Fulfill(ctx context.Context, input FulfillInput) (*domain.Credential, error)
}

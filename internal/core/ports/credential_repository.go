package ports

import (
	"context"
	"time"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
)

// FulfillmentUpdate carries the fields written when a credential is fulfilled.
// FilePath and FileType are nil for text submissions; the update overwrites
// any prior fulfillment, so nil here clears previously stored file fields.
type FulfillmentUpdate struct {
	Data      string
	FilePath  *string
	FileType  *string
	UpdatedAt time.Time
}

// CredentialRepository defines persistence operations for credentials.
type CredentialRepository interface {
	List(ctx context.Context) ([]*domain.Credential, error)
	FindByID(ctx context.Context, id string) (*domain.Credential, error)
	// UpdateFulfillment marks the credential completed and stores the
	// fulfillment payload. Returns domain.ErrCredentialNotFound when no
	// credential with the given id exists.
	UpdateFulfillment(ctx context.Context, id string, update FulfillmentUpdate) (*domain.Credential, error)
}

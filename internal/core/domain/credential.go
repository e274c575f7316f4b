package domain

import (
	"errors"
	"time"
)

// CredentialStatus represents the fulfillment state of a credential.
type CredentialStatus string

const (
	CredentialNeeded    CredentialStatus = "needed"
	CredentialCompleted CredentialStatus = "completed"
)

var ErrCredentialNotFound = errors.New("credential not found")
var ErrNoFulfillmentData = errors.New("no credential data provided")

// Credential tracks whether a required external-service access item has been
// supplied. CredentialData is non-nil exactly when Status is completed.
type Credential struct {
	ID             string           `json:"id" bson:"_id,omitempty"`
	Name           string           `json:"name" bson:"name"`
	Description    string           `json:"description" bson:"description"`
	Instructions   string           `json:"instructions" bson:"instructions"`
	Status         CredentialStatus `json:"status" bson:"status"`
	CredentialData *string          `json:"credential_data" bson:"credential_data,omitempty"`
	FilePath       *string          `json:"file_path" bson:"file_path,omitempty"`
	FileType       *string          `json:"file_type" bson:"file_type,omitempty"`
	CreatedAt      time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" bson:"updated_at"`
}

// Completed reports whether the credential has fulfillment data attached.
func (c *Credential) Completed() bool {
	return c.Status == CredentialCompleted && c.CredentialData != nil
}

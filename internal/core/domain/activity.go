package domain

import "time"

// Activity event kinds recorded by the audit pipeline.
const (
	ActivityBookingCreated      = "booking_created"
	ActivityCredentialFulfilled = "credential_fulfilled"
)

// ActivityEvent is an audit-trail record of something that happened in the
// portal. Ref points at the record the event concerns (appointment id or
// credential id).
type ActivityEvent struct {
	Kind      string    `bson:"kind"`
	Ref       string    `bson:"ref"`
	Detail    string    `bson:"detail,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

package ports

import (
	"context"
	"time"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
)

// ActivityEventInput is the DTO handed to the audit pipeline when something
// notable happens in the portal.
type ActivityEventInput struct {
	Kind      string
	Ref       string
	Detail    string
	Timestamp time.Time
}

// ActivityService processes portal activity events asynchronously.
type ActivityService interface {
	Record(ctx context.Context, event ActivityEventInput) error
}

// ActivityRepository persists activity events to the audit trail.
type ActivityRepository interface {
	InsertEvent(ctx context.Context, event *domain.ActivityEvent) error
}

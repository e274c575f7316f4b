package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for activity events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, kind, ref string, ts time.Time) (bool, error)
	Mark(ctx context.Context, kind, ref string, ts time.Time) error
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService implementation backing the
// audit trail.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, dedup: dedup, log: log}
}

// Record deduplicates and persists a single activity event. Duplicates are
// silently skipped; a failing dedup check is logged and processing continues.
func (s *activityService) Record(ctx context.Context, in ports.ActivityEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.Kind, in.Ref, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", in.Kind).Msg("dedup check failed, recording anyway")
	} else if isDup {
		s.log.Debug().Str("kind", in.Kind).Str("ref", in.Ref).Msg("duplicate activity event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, in.Kind, in.Ref, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("kind", in.Kind).Msg("failed to set dedup key")
	}

	event := &domain.ActivityEvent{
		Kind:      in.Kind,
		Ref:       in.Ref,
		Detail:    in.Detail,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Info().Str("kind", in.Kind).Str("ref", in.Ref).Msg("activity recorded")
	return nil
}

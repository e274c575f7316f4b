package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

type stubActivityRepo struct {
	events    []*domain.ActivityEvent
	insertErr error
}

func (r *stubActivityRepo) InsertEvent(_ context.Context, event *domain.ActivityEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func dedupKey(kind, ref string, ts time.Time) string {
	return kind + "|" + ref + "|" + ts.UTC().Format(time.RFC3339)
}

func (d *stubDedup) IsDuplicate(_ context.Context, kind, ref string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[dedupKey(kind, ref, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, kind, ref string, ts time.Time) error {
	d.seen[dedupKey(kind, ref, ts)] = true
	return nil
}

func TestRecord_PersistsEvent(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, newStubDedup(), discardLogger)

	in := ports.ActivityEventInput{
		Kind:      domain.ActivityBookingCreated,
		Ref:       "appt_1",
		Detail:    "2026-03-03 10:30:00",
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	if repo.events[0].Kind != domain.ActivityBookingCreated || repo.events[0].Ref != "appt_1" {
		t.Errorf("event fields not carried through: %+v", repo.events[0])
	}
}

func TestRecord_SkipsDuplicate(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, newStubDedup(), discardLogger)

	in := ports.ActivityEventInput{
		Kind:      domain.ActivityCredentialFulfilled,
		Ref:       "cred_1",
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("duplicate record must not error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("duplicate was persisted: %d events", len(repo.events))
	}
}

func TestRecord_DedupFailureStillRecords(t *testing.T) {
	repo := &stubActivityRepo{}
	dedup := newStubDedup()
	dedup.checkErr = errors.New("redis down")
	svc := NewActivityService(repo, dedup, discardLogger)

	in := ports.ActivityEventInput{
		Kind:      domain.ActivityBookingCreated,
		Ref:       "appt_2",
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("dedup outage must not block recording: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected event despite dedup failure, got %d", len(repo.events))
	}
}

func TestRecord_InsertErrorPropagates(t *testing.T) {
	repo := &stubActivityRepo{insertErr: errors.New("write concern failed")}
	svc := NewActivityService(repo, newStubDedup(), discardLogger)

	err := svc.Record(context.Background(), ports.ActivityEventInput{
		Kind:      domain.ActivityBookingCreated,
		Ref:       "appt_3",
		Timestamp: time.Now().UTC(),
	})
	if err == nil {
		t.Fatal("expected insert error to propagate")
	}
}

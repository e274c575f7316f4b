package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nbrain/onboarding-portal/internal/core/domain"
	"github.com/nbrain/onboarding-portal/internal/core/ports"
)

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col         *mongo.Collection
	credentials *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{
		col:         db.Collection(collectionAppointments),
		credentials: db.Collection(collectionCredentials),
	}
}

// Insert persists a new appointment. The partial unique index on
// (appointment_date, appointment_time) among scheduled appointments rejects a
// concurrent double-booking; that rejection surfaces as ErrSlotUnavailable.
func (r *AppointmentRepository) Insert(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlotUnavailable
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

// FindScheduled returns the scheduled appointment occupying (date, timeOfDay).
func (r *AppointmentRepository) FindScheduled(ctx context.Context, date, timeOfDay string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"appointment_date": date,
		"appointment_time": timeOfDay,
		"status":           string(domain.AppointmentScheduled),
	}

	var a domain.Appointment
	if err := r.col.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// BookedTimes returns the times of all scheduled appointments on date.
func (r *AppointmentRepository) BookedTimes(ctx context.Context, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"appointment_date": date,
		"status":           string(domain.AppointmentScheduled),
	}
	opts := options.Find().SetProjection(bson.M{"appointment_time": 1})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("booked times: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Time string `bson:"appointment_time"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("booked times: %w", err)
	}

	times := make([]string, 0, len(docs))
	for _, d := range docs {
		times = append(times, d.Time)
	}
	return times, nil
}

// FindByIdempotencyKey retrieves an existing appointment created with the given key.
func (r *AppointmentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Appointment
	if err := r.col.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListNewestFirst returns every appointment sorted by date then time, both
// descending, with credential names resolved application-side. The credential
// reference is informational; a dangling id simply yields an empty name.
func (r *AppointmentRepository) ListNewestFirst(ctx context.Context) ([]ports.AppointmentWithCredential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sort := bson.D{
		{Key: "appointment_date", Value: -1},
		{Key: "appointment_time", Value: -1},
	}
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []domain.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	names, err := r.credentialNames(ctx, appointments)
	if err != nil {
		return nil, err
	}

	out := make([]ports.AppointmentWithCredential, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, ports.AppointmentWithCredential{
			Appointment:    a,
			CredentialName: names[a.CredentialID],
		})
	}
	return out, nil
}

func (r *AppointmentRepository) credentialNames(ctx context.Context, appointments []domain.Appointment) (map[string]string, error) {
	ids := make([]primitive.ObjectID, 0, len(appointments))
	seen := make(map[string]struct{}, len(appointments))
	for _, a := range appointments {
		if a.CredentialID == "" {
			continue
		}
		if _, ok := seen[a.CredentialID]; ok {
			continue
		}
		seen[a.CredentialID] = struct{}{}
		oid, err := primitive.ObjectIDFromHex(a.CredentialID)
		if err != nil {
			continue // dangling or malformed reference
		}
		ids = append(ids, oid)
	}

	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := r.credentials.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve credential names: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("resolve credential names: %w", err)
	}
	for _, d := range docs {
		names[d.ID.Hex()] = d.Name
	}
	return names, nil
}

// EnsureIndexes creates the appointment indexes. The partial unique index on
// (appointment_date, appointment_time) filtered to scheduled appointments is
// what makes the double-booking guarantee hold under concurrent inserts.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "appointment_date", Value: 1},
				{Key: "appointment_time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.AppointmentScheduled)}),
		},
		{Keys: bson.D{{Key: "idempotency_key", Value: 1}}},
		{Keys: bson.D{{Key: "appointment_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

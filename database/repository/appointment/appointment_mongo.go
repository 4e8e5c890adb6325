package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gobarber/database"
	"gobarber/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlotTaken is returned by Create when another scheduled appointment
// already occupies the provider+slot pair.
var ErrSlotTaken = errors.New("appointment slot already taken")

// ErrNotFound is returned when no appointment matches the query.
var ErrNotFound = errors.New("appointment not found")

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.Collection("appointments")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates the lookup indexes plus the partial unique index
// that serializes concurrent bookings for the same provider+slot.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.AppointmentScheduled}),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	now := time.Now()
	appointment.Status = models.AppointmentScheduled
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, appointment)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment document by its ID.
func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appointment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appointment, nil
}

// Cancel sets canceled_at and flips the status so the slot's partial unique
// index frees up for rebooking.
func (r *MongoAppointmentRepo) Cancel(ctx context.Context, id string, canceledAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"status":      models.AppointmentCanceled,
		"canceled_at": canceledAt,
		"updated_at":  time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistsScheduled checks for a scheduled appointment at the exact provider+slot.
func (r *MongoAppointmentRepo) ExistsScheduled(ctx context.Context, providerID string, slot time.Time) (bool, error) {
	filter := bson.M{
		"provider_id": providerID,
		"date":        slot,
		"status":      models.AppointmentScheduled,
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check slot availability: %w", err)
	}
	return count > 0, nil
}

// ListScheduledForUser retrieves a user's non-canceled appointments ordered by date.
func (r *MongoAppointmentRepo) ListScheduledForUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	filter := bson.M{"user_id": userID, "status": models.AppointmentScheduled}
	return r.list(ctx, filter)
}

// ListForProviderBetween retrieves a provider's non-canceled appointments in [from, to).
func (r *MongoAppointmentRepo) ListForProviderBetween(ctx context.Context, providerID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"provider_id": providerID,
		"status":      models.AppointmentScheduled,
		"date":        bson.M{"$gte": from, "$lt": to},
	}
	return r.list(ctx, filter)
}

func (r *MongoAppointmentRepo) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

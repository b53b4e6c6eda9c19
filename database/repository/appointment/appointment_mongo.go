package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"asdcare/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo(db *mongo.Database) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: db.Collection(database.AppointmentsCollection)}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

// EnsureIndexes creates the appointment indexes, including the unique index
// that stops two live appointments from holding the same interval.
func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "therapistId", Value: 1},
				{Key: "appointmentDate", Value: 1},
				{Key: "appointmentTime", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"occupying": true}).
				SetName("occupied_interval_unique"),
		},
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}, {Key: "appointmentDate", Value: -1}},
			Options: options.Index().SetName("parent_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "providerOrderId", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("provider_order_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

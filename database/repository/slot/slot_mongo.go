package slotRepo

import (
	"context"
	"time"

	"asdcare/database"

	"go.mongodb.org/mongo-driver/mongo"
)

type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo(db *mongo.Database) *MongoSlotRepo {
	return &MongoSlotRepo{
		coll: db.Collection(database.SlotsCollection),
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"asdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoSlotRepo) GetActiveForDay(ctx context.Context, therapistID string, dayStart, dayEnd time.Time) (*models.Slot, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"therapistId": therapistID,
		"date": bson.M{
			"$gte": dayStart,
			"$lte": dayEnd,
		},
		"isActive": true,
	}

	var slot models.Slot
	if err := r.coll.FindOne(ctx, filter).Decode(&slot); err != nil {
		return nil, fmt.Errorf("active slot for %s: %w", therapistID, err)
	}
	return &slot, nil
}

func (r *MongoSlotRepo) ListActiveByTherapist(ctx context.Context, therapistID string) ([]models.Slot, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"therapistId": therapistID, "isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

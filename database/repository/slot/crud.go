// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"asdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *MongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	slot.IsActive = true

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *MongoSlotRepo) GetOwned(ctx context.Context, slotID, therapistID string) (*models.Slot, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": slotID, "therapistId": therapistID}).Decode(&slot)
	if err != nil {
		return nil, fmt.Errorf("slot %s: %w", slotID, err)
	}
	return &slot, nil
}

// Deactivate soft-deletes a slot so it no longer produces intervals.
func (r *MongoSlotRepo) Deactivate(ctx context.Context, slotID, therapistID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"id": slotID, "therapistId": therapistID}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

package database

import (
	"context"
	"fmt"

	"asdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// legacyStatusFilter matches accounts written before status became a closed enum.
func legacyStatusFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"status": bson.M{"$exists": false}},
		bson.M{"status": nil},
		bson.M{"status": bson.M{"$in": bson.A{"active", "Active", ""}}},
	}}
}

func legacyActiveFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"isActive": bson.M{"$exists": false}},
		bson.M{"isActive": nil},
	}}
}

// MigrateLegacyStatuses rewrites accounts with a missing or free-form status to
// "approved" and a missing isActive flag to true. After it runs, eligibility
// queries can match status and isActive exactly.
func MigrateLegacyStatuses(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	users := db.Collection(UsersCollection)

	res, err := users.UpdateMany(ctx, legacyStatusFilter(), bson.M{"$set": bson.M{"status": models.AccountApproved}})
	if err != nil {
		return fmt.Errorf("migrate legacy status: %w", err)
	}
	statusFixed := res.ModifiedCount

	res, err = users.UpdateMany(ctx, legacyActiveFilter(), bson.M{"$set": bson.M{"isActive": true}})
	if err != nil {
		return fmt.Errorf("migrate legacy isActive: %w", err)
	}

	logger.Info("legacy account migration finished",
		zap.Int64("statusNormalized", statusFixed),
		zap.Int64("isActiveNormalized", res.ModifiedCount),
	)
	return nil
}

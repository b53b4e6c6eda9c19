package database

import (
	"context"
	"testing"

	"asdcare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func TestLegacyStatusFilter(t *testing.T) {
	or, ok := legacyStatusFilter()["$or"].(bson.A)
	require.True(t, ok)
	assert.Equal(t, bson.A{
		bson.M{"status": bson.M{"$exists": false}},
		bson.M{"status": nil},
		bson.M{"status": bson.M{"$in": bson.A{"active", "Active", ""}}},
	}, or)

	// The approved/pending/rejected enum values are left alone.
	in := or[2].(bson.M)["status"].(bson.M)["$in"].(bson.A)
	for _, s := range []models.AccountStatus{models.AccountApproved, models.AccountPending, models.AccountRejected} {
		assert.NotContains(t, in, string(s))
	}
}

func TestLegacyActiveFilter(t *testing.T) {
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"isActive": bson.M{"$exists": false}},
		bson.M{"isActive": nil},
	}}, legacyActiveFilter())
}

func TestMigrateLegacyStatuses(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("rewrites status then isActive", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 4}, bson.E{Key: "nModified", Value: 4}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		err := MigrateLegacyStatuses(context.Background(), mt.Client.Database("asdcare_test"), zap.NewNop())
		require.NoError(mt, err)

		status := mt.GetStartedEvent()
		require.NotNil(mt, status)
		assert.Equal(mt, "update", status.CommandName)
		assert.Equal(mt, UsersCollection, status.Command.Lookup("update").StringValue())
		update := status.Command.Lookup("updates", "0", "u", "$set", "status").StringValue()
		assert.Equal(mt, string(models.AccountApproved), update)
		assert.True(mt, status.Command.Lookup("updates", "0", "multi").Boolean())

		active := mt.GetStartedEvent()
		require.NotNil(mt, active)
		assert.True(mt, active.Command.Lookup("updates", "0", "u", "$set", "isActive").Boolean())
	})

	mt.Run("write error stops the migration", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))

		err := MigrateLegacyStatuses(context.Background(), mt.Client.Database("asdcare_test"), zap.NewNop())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "migrate legacy status")
	})
}

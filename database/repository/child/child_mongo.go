package childRepo

import (
	"context"
	"fmt"
	"time"

	"asdcare/database"
	"asdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoChildRepo struct {
	coll *mongo.Collection
}

func NewMongoChildRepo(db *mongo.Database) *MongoChildRepo {
	return &MongoChildRepo{coll: db.Collection(database.ChildrenCollection)}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

// EnsureIndexes creates the necessary indexes on the children collection.
func (r *MongoChildRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "parentId", Value: 1}}, Options: options.Index().SetName("parent_idx")},
		{Keys: bson.D{{Key: "therapistId", Value: 1}}, Options: options.Index().SetSparse(true).SetName("therapist_idx")},
	})
	if err != nil {
		return fmt.Errorf("failed to create child indexes: %w", err)
	}
	return nil
}

func (r *MongoChildRepo) Create(ctx context.Context, child *models.Child) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now()
	child.CreatedAt = now
	child.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, child); err != nil {
		return fmt.Errorf("failed to create child: %w", err)
	}
	return nil
}

func (r *MongoChildRepo) GetOwned(ctx context.Context, childID, parentID string) (*models.Child, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var child models.Child
	err := r.coll.FindOne(ctx, bson.M{"id": childID, "parentId": parentID}).Decode(&child)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch child %s: %w", childID, err)
	}
	return &child, nil
}

func (r *MongoChildRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Child, error) {
	out := make(map[string]*models.Child, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	children, err := r.find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for i := range children {
		out[children[i].ID] = &children[i]
	}
	return out, nil
}

func (r *MongoChildRepo) ListByParent(ctx context.Context, parentID string) ([]models.Child, error) {
	return r.find(ctx, bson.M{"parentId": parentID})
}

func (r *MongoChildRepo) ListByTherapist(ctx context.Context, therapistID string) ([]models.Child, error) {
	return r.find(ctx, bson.M{"therapistId": therapistID})
}

func (r *MongoChildRepo) find(ctx context.Context, filter bson.M) ([]models.Child, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch children: %w", err)
	}
	defer cursor.Close(ctx)

	children := []models.Child{}
	if err := cursor.All(ctx, &children); err != nil {
		return nil, fmt.Errorf("error decoding children: %w", err)
	}
	return children, nil
}

func (r *MongoChildRepo) DeleteOwned(ctx context.Context, childID, parentID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": childID, "parentId": parentID})
	if err != nil {
		return fmt.Errorf("failed to delete child %s: %w", childID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoChildRepo) SetRiskLevel(ctx context.Context, childID string, level models.RiskLevel) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": childID}, bson.M{"$set": bson.M{
		"riskLevel": level,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("failed to set risk level for child %s: %w", childID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindChildren returns the children matching every field of filter; a nil
// filter matches all.
func (r *MongoChildRepo) FindChildren(ctx context.Context, filter map[string]string) ([]models.Child, error) {
	return r.find(ctx, equalityFilter(filter))
}

func (r *MongoChildRepo) CountChildren(ctx context.Context, filter map[string]string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, equalityFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count children: %w", err)
	}
	return n, nil
}

func equalityFilter(fields map[string]string) bson.M {
	filter := bson.M{}
	for k, v := range fields {
		filter[k] = v
	}
	return filter
}

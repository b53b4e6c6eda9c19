// File: database/repository/user/queries.go
package userRepo

import (
	"context"
	"fmt"

	"asdcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// eligibleTherapist is the exact eligibility predicate. Legacy documents are
// normalized by database.MigrateLegacyStatuses before this is relied on.
func eligibleTherapist() bson.M {
	return bson.M{
		"role":     models.RoleTherapist,
		"status":   models.AccountApproved,
		"isActive": true,
	}
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by its email address.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := r.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return user, nil
}

// GetByIDs retrieves the users with the given IDs, keyed by ID.
func (r *MongoUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	proj := options.Find().SetProjection(bson.M{"passwordHash": 0})
	users, err := r.find(ctx, bson.M{"id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

// GetEligibleTherapistByID returns an approved, active therapist by account ID.
func (r *MongoUserRepo) GetEligibleTherapistByID(ctx context.Context, id string) (*models.User, error) {
	filter := eligibleTherapist()
	filter["id"] = id
	user, err := r.findOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist %s: %w", id, err)
	}
	return user, nil
}

// GetEligibleTherapistByLogin returns an approved, active therapist by email or username.
func (r *MongoUserRepo) GetEligibleTherapistByLogin(ctx context.Context, login string) (*models.User, error) {
	filter := eligibleTherapist()
	filter["$or"] = bson.A{
		bson.M{"email": login},
		bson.M{"username": login},
	}
	user, err := r.findOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch therapist %s: %w", login, err)
	}
	return user, nil
}

// ListEligibleTherapists returns every therapist that can receive bookings.
func (r *MongoUserRepo) ListEligibleTherapists(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"passwordHash": 0, "licenseNumber": 0}).
		SetSort(bson.D{{Key: "username", Value: 1}})
	users, err := r.find(ctx, eligibleTherapist(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	return users, nil
}

// ListByRoleAndStatus returns users of a role in a given approval state.
func (r *MongoUserRepo) ListByRoleAndStatus(ctx context.Context, role models.Role, status models.AccountStatus) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"passwordHash": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	users, err := r.find(ctx, bson.M{"role": role, "status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s users with status %s: %w", role, status, err)
	}
	return users, nil
}

// CountByStatus counts users of any role in the given approval state.
func (r *MongoUserRepo) CountByStatus(ctx context.Context, status models.AccountStatus) (int64, error) {
	return r.count(ctx, bson.M{"status": status})
}

// CountActive counts users whose account is active.
func (r *MongoUserRepo) CountActive(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"isActive": true})
}

func (r *MongoUserRepo) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

package userRepo

import (
	"context"

	"asdcare/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves the users with the given IDs, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	// GetEligibleTherapistByID returns an approved, active therapist by account ID.
	GetEligibleTherapistByID(ctx context.Context, id string) (*models.User, error)
	// GetEligibleTherapistByLogin returns an approved, active therapist by email or username.
	GetEligibleTherapistByLogin(ctx context.Context, login string) (*models.User, error)
	// ListEligibleTherapists returns every therapist that can receive bookings.
	ListEligibleTherapists(ctx context.Context) ([]models.User, error)
	// ListByRoleAndStatus returns users of a role in a given approval state.
	ListByRoleAndStatus(ctx context.Context, role models.Role, status models.AccountStatus) ([]models.User, error)
	// UpdateStatus sets the approval status and active flag of a user.
	UpdateStatus(ctx context.Context, id string, status models.AccountStatus, isActive bool) error
}

package user

import (
	"context"
	"errors"
	"strings"

	"asdcare/models"
	"asdcare/services/apperr"

	"go.mongodb.org/mongo-driver/mongo"
)

// ResolveTherapist looks the identifier up as an account ID first, then as an
// email or username. Only approved, active therapists resolve.
func (s *DefaultUserService) ResolveTherapist(ctx context.Context, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperr.New(apperr.KindValidation, "therapist is required")
	}

	u, err := s.Users.GetEligibleTherapistByID(ctx, identifier)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	u, err = s.Users.GetEligibleTherapistByLogin(ctx, identifier)
	if err == nil {
		return u, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindNotFound, "therapist not found or not available")
	}
	return nil, err
}

func (s *DefaultUserService) ListTherapists(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.Users.ListEligibleTherapists(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

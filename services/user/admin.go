package user

import (
	"context"
	"errors"
	"fmt"

	"asdcare/models"
	"asdcare/services/apperr"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultUserService) PendingTherapists(ctx context.Context) ([]models.User, error) {
	return s.Users.ListByRoleAndStatus(ctx, models.RoleTherapist, models.AccountPending)
}

func (s *DefaultUserService) ApproveTherapist(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.decide(ctx, userID, models.AccountApproved, true)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, u, "Your therapist account has been approved",
		"You can now access the therapist dashboard.", "therapist_approved")
	return u, nil
}

func (s *DefaultUserService) RejectTherapist(ctx context.Context, userID, reason string) (*models.User, error) {
	u, err := s.decide(ctx, userID, models.AccountRejected, false)
	if err != nil {
		return nil, err
	}
	body := "Please contact support for more information."
	if reason != "" {
		body = fmt.Sprintf("Reason: %s", reason)
	}
	s.notify(ctx, u, "Your therapist account registration has been rejected", body, "therapist_rejected")
	return u, nil
}

// decide moves a pending therapist to its final approval state.
func (s *DefaultUserService) decide(ctx context.Context, userID string, status models.AccountStatus, active bool) (*models.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, err
	}
	if u.Role != models.RoleTherapist || u.Status != models.AccountPending {
		return nil, apperr.New(apperr.KindInvalidTransition, "invalid therapist request")
	}

	if err := s.Users.UpdateStatus(ctx, userID, status, active); err != nil {
		return nil, err
	}
	u.Status = status
	u.IsActive = active
	s.Logger.Info("therapist request decided", zap.String("userId", userID), zap.String("status", string(status)))
	return u, nil
}

func (s *DefaultUserService) notify(ctx context.Context, u *models.User, title, body, kind string) {
	if err := s.Notifier.Notify(ctx, u.ID, title, body, map[string]string{"type": kind}); err != nil {
		s.Logger.Warn("notification failed", zap.String("userId", u.ID), zap.Error(err))
	}
}

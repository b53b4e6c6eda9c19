package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"asdcare/models"
	"asdcare/services/apperr"
	"asdcare/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *DefaultUserService) AddChild(ctx context.Context, parentID string, req models.AddChildRequest) (*models.Child, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.Gender) == "" {
		return nil, apperr.New(apperr.KindValidation, "name, age and gender are required")
	}
	if req.Age < 0 || req.Age > 25 {
		return nil, apperr.New(apperr.KindValidation, "age %d is out of range", req.Age)
	}

	child := &models.Child{
		ID:             uuid.New().String(),
		PatientID:      utils.GeneratePatientID(time.Now()),
		ParentID:       parentID,
		Name:           name,
		Age:            req.Age,
		Gender:         strings.TrimSpace(req.Gender),
		MedicalHistory: strings.TrimSpace(req.MedicalHistory),
	}
	if err := s.Children.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *DefaultUserService) ListChildren(ctx context.Context, parentID string) ([]models.Child, error) {
	return s.Children.ListByParent(ctx, parentID)
}

// ListClients returns the children assigned to a therapist.
func (s *DefaultUserService) ListClients(ctx context.Context, therapistID string) ([]models.Child, error) {
	return s.Children.ListByTherapist(ctx, therapistID)
}

func (s *DefaultUserService) DeleteChild(ctx context.Context, parentID, childID string) error {
	err := s.Children.DeleteOwned(ctx, childID, parentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.New(apperr.KindNotFound, "child not found")
	}
	return err
}

// ChildOwnedBy returns the child only if parentID owns it.
func (s *DefaultUserService) ChildOwnedBy(ctx context.Context, parentID, childID string) (*models.Child, error) {
	child, err := s.Children.GetOwned(ctx, childID, parentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindAccessDenied, "child not found or not yours")
	}
	return child, err
}

func (s *DefaultUserService) SetChildRiskLevel(ctx context.Context, childID string, level models.RiskLevel) error {
	err := s.Children.SetRiskLevel(ctx, childID, level)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.New(apperr.KindNotFound, "child not found")
	}
	return err
}

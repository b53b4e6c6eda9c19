package childRepo

import (
	"context"

	"asdcare/models"
)

type ChildRepository interface {
	Create(ctx context.Context, child *models.Child) error
	// GetOwned returns the child only when it belongs to parentID.
	GetOwned(ctx context.Context, childID, parentID string) (*models.Child, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Child, error)
	ListByParent(ctx context.Context, parentID string) ([]models.Child, error)
	ListByTherapist(ctx context.Context, therapistID string) ([]models.Child, error)
	DeleteOwned(ctx context.Context, childID, parentID string) error
	SetRiskLevel(ctx context.Context, childID string, level models.RiskLevel) error
}

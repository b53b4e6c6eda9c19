// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"time"

	"asdcare/models"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	// GetActiveForDay returns the active slot whose date falls in [dayStart, dayEnd].
	GetActiveForDay(ctx context.Context, therapistID string, dayStart, dayEnd time.Time) (*models.Slot, error)
	ListActiveByTherapist(ctx context.Context, therapistID string) ([]models.Slot, error)
	GetOwned(ctx context.Context, slotID, therapistID string) (*models.Slot, error)
	Deactivate(ctx context.Context, slotID, therapistID string) error
}

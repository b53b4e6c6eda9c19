// File: services/scheduling/service.go
package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	slotRepo "asdcare/database/repository/slot"
	"asdcare/models"
	"asdcare/services/apperr"
	"asdcare/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SlotService manages therapist availability templates and answers
// availability queries from them.
type SlotService interface {
	CreateSlot(ctx context.Context, therapistID string, req models.CreateSlotRequest) (*models.Slot, error)
	ListSlots(ctx context.Context, therapistID string) ([]models.Slot, error)
	DeleteSlot(ctx context.Context, therapistID, slotID string) error
	// ActiveSlot returns the therapist's active slot for a local calendar day, or nil.
	ActiveSlot(ctx context.Context, therapistID string, day time.Time) (*models.Slot, error)
	Availability(ctx context.Context, therapistID, date string) (*models.Availability, error)
}

type DefaultSlotService struct {
	Repo   slotRepo.SlotRepository
	Cache  AvailabilityCache
	Logger *zap.Logger
	// Now is overridable in tests.
	Now func() time.Time
}

func NewSlotService(repo slotRepo.SlotRepository, cache AvailabilityCache, logger *zap.Logger) *DefaultSlotService {
	if cache == nil {
		cache = noopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSlotService{Repo: repo, Cache: cache, Logger: logger, Now: time.Now}
}

func (s *DefaultSlotService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultSlotService) CreateSlot(ctx context.Context, therapistID string, req models.CreateSlotRequest) (*models.Slot, error) {
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" || req.Mode == "" || req.BreakTimeMinutes == nil {
		return nil, apperr.New(apperr.KindValidation, "missing required fields")
	}
	if !req.Mode.Valid() {
		return nil, apperr.New(apperr.KindValidation, "mode must be one of In-person, Online, Phone")
	}

	day, err := utils.ParseLocalDate(req.Date)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "invalid date")
	}
	if day.Before(utils.StartOfToday(s.now())) {
		return nil, apperr.New(apperr.KindValidation, "you can only create slots for today or future dates")
	}

	clinic := strings.TrimSpace(req.HospitalClinicName)
	if req.Mode == models.ModeInPerson && clinic == "" {
		return nil, apperr.New(apperr.KindValidation, "hospital/clinic name is required for in-person appointments")
	}
	if req.Mode != models.ModeInPerson {
		clinic = ""
	}

	w, err := NewWindow(req.StartTime, req.EndTime, req.IntervalMinutes, *req.BreakTimeMinutes)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "invalid slot window")
	}
	if w.Count() == 0 {
		return nil, apperr.New(apperr.KindValidation, "no session of %d minutes fits between %s and %s",
			w.Interval, w.Start, w.End)
	}

	existing, err := s.ActiveSlot(ctx, therapistID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "a slot already exists for this date")
	}

	slot := &models.Slot{
		ID:                 uuid.New().String(),
		TherapistID:        therapistID,
		Date:               day,
		StartTime:          w.Start.String(),
		EndTime:            w.End.String(),
		IntervalMinutes:    w.Interval,
		BreakTimeMinutes:   w.Break,
		Mode:               req.Mode,
		HospitalClinicName: clinic,
	}
	if err := s.Repo.Create(ctx, slot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Wrap(apperr.KindConflict, err, "a slot already exists for this date")
		}
		return nil, err
	}

	s.invalidate(ctx, therapistID, day)
	s.Logger.Info("slot created",
		zap.String("slotId", slot.ID),
		zap.String("therapistId", therapistID),
		zap.String("date", utils.FormatDate(day)),
		zap.Int("intervals", w.Count()))
	return slot, nil
}

func (s *DefaultSlotService) ListSlots(ctx context.Context, therapistID string) ([]models.Slot, error) {
	return s.Repo.ListActiveByTherapist(ctx, therapistID)
}

func (s *DefaultSlotService) DeleteSlot(ctx context.Context, therapistID, slotID string) error {
	slot, err := s.Repo.GetOwned(ctx, slotID, therapistID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.KindNotFound, "slot not found")
		}
		return err
	}
	if err := s.Repo.Deactivate(ctx, slotID, therapistID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.New(apperr.KindNotFound, "slot not found")
		}
		return err
	}
	s.invalidate(ctx, therapistID, slot.Date)
	return nil
}

func (s *DefaultSlotService) ActiveSlot(ctx context.Context, therapistID string, day time.Time) (*models.Slot, error) {
	dayStart, dayEnd := utils.DayBounds(day)
	slot, err := s.Repo.GetActiveForDay(ctx, therapistID, dayStart, dayEnd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// Availability expands the active slot of the given day. A day without an
// active slot has no intervals; that is not an error.
func (s *DefaultSlotService) Availability(ctx context.Context, therapistID, date string) (*models.Availability, error) {
	if therapistID == "" || date == "" {
		return nil, apperr.New(apperr.KindValidation, "therapist ID and date are required")
	}
	day, err := utils.ParseLocalDate(date)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "invalid date")
	}
	key := utils.FormatDate(day)

	if cached, ok, err := s.Cache.Get(ctx, therapistID, key); err != nil {
		s.Logger.Warn("availability cache read failed", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	slot, err := s.ActiveSlot(ctx, therapistID, day)
	if err != nil {
		return nil, err
	}

	result := &models.Availability{AvailableSlots: []models.Interval{}}
	if slot != nil {
		intervals, err := Expand(*slot)
		if err != nil {
			// Stored slot no longer expands; report no intervals rather than fail the query.
			s.Logger.Error("stored slot has an invalid window", zap.String("slotId", slot.ID), zap.Error(err))
		} else {
			result.AvailableSlots = intervals
		}
		result.Slot = &models.SlotSummary{
			ID:                 slot.ID,
			Date:               slot.Date,
			Mode:               slot.Mode,
			HospitalClinicName: slot.HospitalClinicName,
		}
	}

	if err := s.Cache.Set(ctx, therapistID, key, result); err != nil {
		s.Logger.Warn("availability cache write failed", zap.Error(err))
	}
	return result, nil
}

func (s *DefaultSlotService) invalidate(ctx context.Context, therapistID string, day time.Time) {
	if err := s.Cache.Invalidate(ctx, therapistID, utils.FormatDate(day)); err != nil {
		s.Logger.Warn("availability cache invalidation failed",
			zap.String("therapistId", therapistID), zap.Error(err))
	}
}

package scheduling

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"asdcare/models"
	"asdcare/services/apperr"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type memSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
	reads int
}

func newMemSlotRepo() *memSlotRepo {
	return &memSlotRepo{slots: map[string]*models.Slot{}}
}

func (r *memSlotRepo) Create(_ context.Context, slot *models.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot.IsActive = true
	cp := *slot
	r.slots[slot.ID] = &cp
	return nil
}

func (r *memSlotRepo) GetActiveForDay(_ context.Context, therapistID string, dayStart, dayEnd time.Time) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	for _, s := range r.slots {
		if s.TherapistID == therapistID && s.IsActive && !s.Date.Before(dayStart) && !s.Date.After(dayEnd) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("active slot for %s: %w", therapistID, mongo.ErrNoDocuments)
}

func (r *memSlotRepo) ListActiveByTherapist(_ context.Context, therapistID string) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Slot{}
	for _, s := range r.slots {
		if s.TherapistID == therapistID && s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) GetOwned(_ context.Context, slotID, therapistID string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.TherapistID != therapistID {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	return &cp, nil
}

func (r *memSlotRepo) Deactivate(_ context.Context, slotID, therapistID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok || s.TherapistID != therapistID {
		return mongo.ErrNoDocuments
	}
	s.IsActive = false
	return nil
}

func intPtr(v int) *int { return &v }

func fixedNow() time.Time { return time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local) }

func newTestService(t *testing.T) (*DefaultSlotService, *memSlotRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := newMemSlotRepo()
	svc := NewSlotService(repo, NewRedisAvailabilityCache(client, time.Minute), nil)
	svc.Now = fixedNow
	return svc, repo
}

func validRequest() models.CreateSlotRequest {
	return models.CreateSlotRequest{
		Date:             "2025-03-12",
		StartTime:        "09:00",
		EndTime:          "12:00",
		IntervalMinutes:  45,
		BreakTimeMinutes: intPtr(15),
		Mode:             models.ModeOnline,
	}
}

func TestCreateSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, "thr-1", validRequest())
	require.NoError(t, err)
	assert.Equal(t, "thr-1", slot.TherapistID)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.Local), slot.Date)
	assert.Empty(t, slot.HospitalClinicName)

	_, err = svc.CreateSlot(ctx, "thr-1", validRequest())
	assert.ErrorIs(t, err, apperr.ErrConflict, "one active slot per day")

	_, err = svc.CreateSlot(ctx, "thr-2", validRequest())
	assert.NoError(t, err, "other therapists are independent")
}

func TestCreateSlot_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]func(*models.CreateSlotRequest){
		"past date":         func(r *models.CreateSlotRequest) { r.Date = "2025-03-09" },
		"bad date":          func(r *models.CreateSlotRequest) { r.Date = "2025-02-30" },
		"missing break":     func(r *models.CreateSlotRequest) { r.BreakTimeMinutes = nil },
		"zero interval":     func(r *models.CreateSlotRequest) { r.IntervalMinutes = 0 },
		"no interval fits":  func(r *models.CreateSlotRequest) { r.EndTime = "09:30" },
		"unknown mode":      func(r *models.CreateSlotRequest) { r.Mode = "Carrier pigeon" },
		"in-person no site": func(r *models.CreateSlotRequest) { r.Mode = models.ModeInPerson },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := svc.CreateSlot(ctx, "thr-1", req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}

	req := validRequest()
	req.Date = "2025-03-10"
	_, err := svc.CreateSlot(ctx, "thr-1", req)
	assert.NoError(t, err, "today is allowed")
}

func TestAvailability(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	empty, err := svc.Availability(ctx, "thr-1", "2025-03-12")
	require.NoError(t, err)
	assert.Nil(t, empty.Slot)
	assert.Equal(t, []models.Interval{}, empty.AvailableSlots)

	slot, err := svc.CreateSlot(ctx, "thr-1", validRequest())
	require.NoError(t, err)

	got, err := svc.Availability(ctx, "thr-1", "2025-03-12")
	require.NoError(t, err)
	require.NotNil(t, got.Slot)
	assert.Equal(t, slot.ID, got.Slot.ID)
	assert.Equal(t, []models.Interval{
		{Start: "09:00", End: "09:45"},
		{Start: "10:00", End: "10:45"},
		{Start: "11:00", End: "11:45"},
	}, got.AvailableSlots)

	reads := repo.reads
	_, err = svc.Availability(ctx, "thr-1", "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, reads, repo.reads, "second query is served from cache")

	require.NoError(t, svc.DeleteSlot(ctx, "thr-1", slot.ID))
	after, err := svc.Availability(ctx, "thr-1", "2025-03-12")
	require.NoError(t, err)
	assert.Empty(t, after.AvailableSlots, "delete invalidates the cached answer")

	_, err = svc.Availability(ctx, "thr-1", "12/03/2025")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteSlot_OwnerOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, "thr-1", validRequest())
	require.NoError(t, err)

	err = svc.DeleteSlot(ctx, "thr-2", slot.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	slots, err := svc.ListSlots(ctx, "thr-1")
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"asdcare/models"
	"asdcare/services/apperr"
	"asdcare/services/payment"
	"asdcare/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

type memAppointments struct {
	mu    sync.Mutex
	byID  map[string]models.Appointment
	order []string
	// createErr, when set, is returned by Create instead of storing.
	createErr error
	updateErr error
}

func newMemAppointments() *memAppointments {
	return &memAppointments{byID: map[string]models.Appointment{}}
}

func (r *memAppointments) Create(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	appt.Occupying = appt.OccupiesInterval()
	r.byID[appt.ID] = *appt
	r.order = append(r.order, appt.ID)
	return nil
}

func (r *memAppointments) Update(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[appt.ID]; !ok {
		return fmt.Errorf("appointment %s: %w", appt.ID, mongo.ErrNoDocuments)
	}
	appt.Occupying = appt.OccupiesInterval()
	r.byID[appt.ID] = *appt
	return nil
}

func (r *memAppointments) get(id string) (models.Appointment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	return a, ok
}

func (r *memAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	a, ok := r.get(id)
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &a, nil
}

func (r *memAppointments) GetForParent(_ context.Context, id, parentID string) (*models.Appointment, error) {
	a, ok := r.get(id)
	if !ok || a.ParentID != parentID {
		return nil, mongo.ErrNoDocuments
	}
	return &a, nil
}

func (r *memAppointments) GetForTherapist(_ context.Context, id, therapistID string) (*models.Appointment, error) {
	a, ok := r.get(id)
	if !ok || a.TherapistID != therapistID {
		return nil, mongo.ErrNoDocuments
	}
	return &a, nil
}

func (r *memAppointments) ListByParent(_ context.Context, parentID string, _ int64) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, id := range r.order {
		if a := r.byID[id]; a.ParentID == parentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAppointments) ListByTherapist(_ context.Context, therapistID string, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, id := range r.order {
		a := r.byID[id]
		if a.TherapistID != therapistID {
			continue
		}
		if !from.IsZero() && a.AppointmentDate.Before(from) {
			continue
		}
		if !to.IsZero() && a.AppointmentDate.After(to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memAppointments) IntervalTaken(_ context.Context, therapistID string, dayStart, dayEnd time.Time, clock, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.ID == excludeID || a.TherapistID != therapistID || !a.Occupying || a.AppointmentTime != clock {
			continue
		}
		if !a.AppointmentDate.Before(dayStart) && !a.AppointmentDate.After(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

type memChildren struct {
	byID map[string]models.Child
}

func (r *memChildren) Create(_ context.Context, c *models.Child) error {
	r.byID[c.ID] = *c
	return nil
}

func (r *memChildren) GetOwned(_ context.Context, childID, parentID string) (*models.Child, error) {
	c, ok := r.byID[childID]
	if !ok || c.ParentID != parentID {
		return nil, mongo.ErrNoDocuments
	}
	return &c, nil
}

func (r *memChildren) GetByIDs(_ context.Context, ids []string) (map[string]*models.Child, error) {
	out := map[string]*models.Child{}
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out[id] = &c
		}
	}
	return out, nil
}

func (r *memChildren) ListByParent(context.Context, string) ([]models.Child, error) { return nil, nil }
func (r *memChildren) ListByTherapist(context.Context, string) ([]models.Child, error) {
	return nil, nil
}
func (r *memChildren) DeleteOwned(context.Context, string, string) error { return nil }
func (r *memChildren) SetRiskLevel(context.Context, string, models.RiskLevel) error {
	return nil
}

type memUsers struct {
	byID map[string]models.User
}

func (r *memUsers) Create(context.Context, *models.User) error { return nil }
func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}
func (r *memUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (r *memUsers) GetByIDs(_ context.Context, ids []string) (map[string]*models.User, error) {
	out := map[string]*models.User{}
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out[id] = &u
		}
	}
	return out, nil
}
func (r *memUsers) GetEligibleTherapistByID(context.Context, string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (r *memUsers) GetEligibleTherapistByLogin(context.Context, string) (*models.User, error) {
	return nil, mongo.ErrNoDocuments
}
func (r *memUsers) ListEligibleTherapists(context.Context) ([]models.User, error) { return nil, nil }
func (r *memUsers) ListByRoleAndStatus(context.Context, models.Role, models.AccountStatus) ([]models.User, error) {
	return nil, nil
}
func (r *memUsers) UpdateStatus(context.Context, string, models.AccountStatus, bool) error {
	return nil
}

// resolver accepts an account ID or a username of an eligible therapist.
type resolver struct {
	users *memUsers
}

func (r resolver) ResolveTherapist(_ context.Context, identifier string) (*models.User, error) {
	for _, u := range r.users.byID {
		if (u.ID == identifier || u.Username == identifier || u.Email == identifier) && u.Eligible() {
			return &u, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "therapist not found or not available")
}

// fakeSlots has an active slot on the configured days only.
type fakeSlots struct {
	days map[string]bool
}

func (f *fakeSlots) CreateSlot(context.Context, string, models.CreateSlotRequest) (*models.Slot, error) {
	return nil, nil
}
func (f *fakeSlots) ListSlots(context.Context, string) ([]models.Slot, error) { return nil, nil }
func (f *fakeSlots) DeleteSlot(context.Context, string, string) error         { return nil }
func (f *fakeSlots) ActiveSlot(_ context.Context, therapistID string, day time.Time) (*models.Slot, error) {
	if !f.days[utils.FormatDate(day)] {
		return nil, nil
	}
	return &models.Slot{ID: "slot-1", TherapistID: therapistID, Date: day, StartTime: "09:00", EndTime: "12:00", IntervalMinutes: 45, BreakTimeMinutes: 15, IsActive: true}, nil
}
func (f *fakeSlots) Availability(context.Context, string, string) (*models.Availability, error) {
	return &models.Availability{AvailableSlots: []models.Interval{}}, nil
}

type fakeGateway struct {
	mu        sync.Mutex
	orders    []models.PaymentOrderRequest
	err       error
	secret    string
	verifyErr error
	verifies  int
}

func (g *fakeGateway) CreateOrder(_ context.Context, req models.PaymentOrderRequest) (*models.PaymentOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.orders = append(g.orders, req)
	return &models.PaymentOrder{ID: fmt.Sprintf("order_%d", len(g.orders)), Amount: req.Amount, Currency: req.Currency}, nil
}
func (g *fakeGateway) Verify(_ context.Context, orderID, paymentID, signature string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifies++
	if g.verifyErr != nil {
		return false, g.verifyErr
	}
	return payment.VerifySignature(orderID, paymentID, signature, g.secret), nil
}
func (g *fakeGateway) KeyID() string { return "rzp_test_key" }
func (g *fakeGateway) Name() string  { return "fake" }

type recordingReminders struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingReminders) ScheduleReminder(_ context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, appt.ID)
	return nil
}

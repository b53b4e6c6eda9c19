// Package booking coordinates appointment booking: ownership and eligibility
// checks, the interval guard, payment orders and the status lifecycle.
package booking

import (
	"context"
	"time"

	appointmentRepo "asdcare/database/repository/appointment"
	childRepo "asdcare/database/repository/child"
	userRepo "asdcare/database/repository/user"
	"asdcare/models"
	"asdcare/services/payment"
	"asdcare/services/scheduling"

	"go.uber.org/zap"
)

// AppointmentService is the booking coordinator used by the HTTP layer.
type AppointmentService interface {
	// Parent side
	Book(ctx context.Context, parentID string, req models.BookAppointmentRequest) (*models.AppointmentView, error)
	CreatePaymentOrder(ctx context.Context, parentID string, req models.BookAppointmentRequest) (*models.PaymentOrderResponse, error)
	VerifyPayment(ctx context.Context, parentID string, req models.VerifyPaymentRequest) (*models.AppointmentView, error)
	Availability(ctx context.Context, therapistID, date string) (*models.Availability, error)
	ListForParent(ctx context.Context, parentID string) ([]models.AppointmentView, error)
	UpdateByParent(ctx context.Context, parentID, appointmentID string, req models.UpdateAppointmentRequest) (*models.AppointmentView, error)
	Cancel(ctx context.Context, parentID, appointmentID string) error

	// Therapist side
	ListForTherapist(ctx context.Context, therapistID string) ([]models.AppointmentView, error)
	ListTodayForTherapist(ctx context.Context, therapistID string) ([]models.AppointmentView, error)
	Confirm(ctx context.Context, therapistID, appointmentID string) (*models.AppointmentView, error)
	Complete(ctx context.Context, therapistID, appointmentID string) (*models.AppointmentView, error)
	Reschedule(ctx context.Context, therapistID, appointmentID string, req models.RescheduleRequest) (*models.AppointmentView, error)
}

// TherapistResolver finds a therapist that can receive bookings from an
// account ID, email or username.
type TherapistResolver interface {
	ResolveTherapist(ctx context.Context, identifier string) (*models.User, error)
}

// ReminderScheduler is told whenever an appointment becomes confirmed.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}

// PaymentSettings are the server-held payment parameters.
type PaymentSettings struct {
	Currency   string
	DefaultFee float64
}

type Deps struct {
	Appointments appointmentRepo.AppointmentRepository
	Children     childRepo.ChildRepository
	Users        userRepo.UserRepository
	Therapists   TherapistResolver
	Slots        scheduling.SlotService
	Gateway      payment.Gateway
	Payment      PaymentSettings
	Locker       IntervalLocker
	Reminders    ReminderScheduler
	Logger       *zap.Logger
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	appointments appointmentRepo.AppointmentRepository
	children     childRepo.ChildRepository
	users        userRepo.UserRepository
	therapists   TherapistResolver
	slots        scheduling.SlotService
	gateway      payment.Gateway
	payment      PaymentSettings
	locker       IntervalLocker
	reminders    ReminderScheduler
	logger       *zap.Logger
	now          func() time.Time
}

func NewAppointmentService(d Deps) *DefaultAppointmentService {
	s := &DefaultAppointmentService{
		appointments: d.Appointments,
		children:     d.Children,
		users:        d.Users,
		therapists:   d.Therapists,
		slots:        d.Slots,
		gateway:      d.Gateway,
		payment:      d.Payment,
		locker:       d.Locker,
		reminders:    d.Reminders,
		logger:       d.Logger,
		now:          time.Now,
	}
	if s.locker == nil {
		s.locker = noopLocker{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.payment.Currency == "" {
		s.payment.Currency = "INR"
	}
	if s.payment.DefaultFee <= 0 {
		s.payment.DefaultFee = 500
	}
	return s
}

// SetClock replaces the time source.
func (s *DefaultAppointmentService) SetClock(now func() time.Time) { s.now = now }

func (s *DefaultAppointmentService) Availability(ctx context.Context, therapistID, date string) (*models.Availability, error) {
	return s.slots.Availability(ctx, therapistID, date)
}

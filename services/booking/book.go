package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asdcare/models"
	"asdcare/services/apperr"
	"asdcare/services/payment"
	"asdcare/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// draft is a validated booking request that has not been stored yet.
type draft struct {
	appt      *models.Appointment
	child     *models.Child
	therapist *models.User
}

func (s *DefaultAppointmentService) prepare(ctx context.Context, parentID string, req models.BookAppointmentRequest) (*draft, error) {
	therapistRef := strings.TrimSpace(req.TherapistID)
	if req.ChildID == "" || therapistRef == "" || req.AppointmentDate == "" || req.AppointmentTime == "" {
		return nil, apperr.New(apperr.KindValidation, "missing required fields")
	}

	day, err := utils.ParseLocalDate(req.AppointmentDate)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "invalid appointment date")
	}
	clock, err := utils.NormalizeClockTime(req.AppointmentTime)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "invalid appointment time")
	}
	if req.AppointmentFee < 0 {
		return nil, apperr.New(apperr.KindValidation, "appointment fee must not be negative")
	}

	child, err := s.children.GetOwned(ctx, req.ChildID, parentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindAccessDenied, "child not found or not yours")
		}
		return nil, err
	}

	therapist, err := s.therapists.ResolveTherapist(ctx, therapistRef)
	if err != nil {
		return nil, err
	}

	fee := req.AppointmentFee
	if fee == 0 {
		fee = s.payment.DefaultFee
	}

	return &draft{
		appt: &models.Appointment{
			ID:              uuid.New().String(),
			ParentID:        parentID,
			ChildID:         child.ID,
			TherapistID:     therapist.ID,
			AppointmentDate: day,
			AppointmentTime: clock,
			Reason:          req.Reason,
			Status:          models.StatusPending,
			PaymentStatus:   models.PaymentPending,
			AppointmentFee:  fee,
		},
		child:     child,
		therapist: therapist,
	}, nil
}

// claim runs fn while holding the interval, after checking nobody else holds it.
func (s *DefaultAppointmentService) claim(ctx context.Context, therapistID string, day time.Time, clock, excludeID string, fn func() error) error {
	date := utils.FormatDate(day)
	unlock, err := s.locker.Lock(ctx, therapistID, date, clock)
	if errors.Is(err, ErrIntervalLocked) {
		return apperr.New(apperr.KindConflict, "the %s slot on %s is already booked", clock, date)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindExternal, err, "could not reserve the slot")
	}
	defer unlock()

	dayStart, dayEnd := utils.DayBounds(day)
	taken, err := s.appointments.IntervalTaken(ctx, therapistID, dayStart, dayEnd, clock, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.New(apperr.KindConflict, "the %s slot on %s is already booked", clock, date)
	}

	if err := fn(); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Wrap(apperr.KindConflict, err, "the %s slot on %s is already booked", clock, date)
		}
		return err
	}
	return nil
}

// Book creates a pending, unpaid appointment.
func (s *DefaultAppointmentService) Book(ctx context.Context, parentID string, req models.BookAppointmentRequest) (*models.AppointmentView, error) {
	d, err := s.prepare(ctx, parentID, req)
	if err != nil {
		return nil, err
	}

	err = s.claim(ctx, d.therapist.ID, d.appt.AppointmentDate, d.appt.AppointmentTime, "", func() error {
		return s.appointments.Create(ctx, d.appt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		zap.String("appointmentId", d.appt.ID),
		zap.String("parentId", parentID),
		zap.String("therapistId", d.therapist.ID),
		zap.String("date", utils.FormatDate(d.appt.AppointmentDate)),
		zap.String("time", d.appt.AppointmentTime))

	return &models.AppointmentView{
		Appointment:   *d.appt,
		ChildName:     d.child.Name,
		TherapistName: d.therapist.Username,
	}, nil
}

// CreatePaymentOrder stores the appointment as payment-initiated and opens an
// order with the gateway. The therapist must have an active slot that day.
func (s *DefaultAppointmentService) CreatePaymentOrder(ctx context.Context, parentID string, req models.BookAppointmentRequest) (*models.PaymentOrderResponse, error) {
	d, err := s.prepare(ctx, parentID, req)
	if err != nil {
		return nil, err
	}

	slot, err := s.slots.ActiveSlot(ctx, d.therapist.ID, d.appt.AppointmentDate)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, apperr.New(apperr.KindValidation, "therapist slot is not available for this date")
	}

	appt := d.appt
	appt.PaymentStatus = models.PaymentInitiated
	err = s.claim(ctx, d.therapist.ID, appt.AppointmentDate, appt.AppointmentTime, "", func() error {
		return s.appointments.Create(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, models.PaymentOrderRequest{
		Amount:   payment.MinorUnits(appt.AppointmentFee),
		Currency: s.payment.Currency,
		Receipt:  "appt_" + appt.ID,
		Notes: map[string]string{
			"appointmentId": appt.ID,
			"childId":       appt.ChildID,
			"therapistId":   appt.TherapistID,
			"parentId":      parentID,
		},
	})
	if err != nil {
		s.logger.Error("payment order failed",
			zap.String("appointmentId", appt.ID),
			zap.String("gateway", s.gateway.Name()),
			zap.Error(err))
		s.releaseDraft(ctx, appt)
		return nil, apperr.Wrap(apperr.KindExternal, err, "could not create payment order")
	}

	appt.ProviderOrderID = order.ID
	if err := s.appointments.Update(ctx, appt); err != nil {
		// The appointment stays initiated without an order ID.
		s.logger.Error("failed to record payment order",
			zap.String("appointmentId", appt.ID),
			zap.String("orderId", order.ID),
			zap.Error(err))
		return nil, fmt.Errorf("record payment order: %w", err)
	}

	return &models.PaymentOrderResponse{
		OrderID:         order.ID,
		AppointmentID:   appt.ID,
		Amount:          appt.AppointmentFee,
		Currency:        s.payment.Currency,
		KeyID:           s.gateway.KeyID(),
		ClientSecret:    order.ClientSecret,
		TherapistName:   d.therapist.Username,
		ChildName:       d.child.Name,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: appt.AppointmentTime,
	}, nil
}

// releaseDraft cancels an appointment whose payment order was never opened so
// the parent can start over for the same interval.
func (s *DefaultAppointmentService) releaseDraft(ctx context.Context, appt *models.Appointment) {
	appt.Status = models.StatusCancelled
	appt.PaymentStatus = models.PaymentFailed
	if err := s.appointments.Update(context.WithoutCancel(ctx), appt); err != nil {
		s.logger.Error("failed to release draft appointment",
			zap.String("appointmentId", appt.ID),
			zap.Error(err))
	}
}

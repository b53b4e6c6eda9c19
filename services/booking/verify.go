package booking

import (
	"context"
	"crypto/subtle"
	"errors"

	"asdcare/models"
	"asdcare/services/apperr"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// VerifyPayment asks the gateway to confirm the client's proof of payment for
// the parent's appointment. A match completes the payment and confirms the
// appointment; a mismatch marks the payment failed. Repeating an already
// accepted proof returns the appointment unchanged.
func (s *DefaultAppointmentService) VerifyPayment(ctx context.Context, parentID string, req models.VerifyPaymentRequest) (*models.AppointmentView, error) {
	if req.AppointmentID == "" || req.ProviderOrderID == "" || req.ProviderPaymentID == "" || req.ProviderSignature == "" {
		return nil, apperr.New(apperr.KindValidation, "missing required payment fields")
	}

	appt, err := s.appointments.GetForParent(ctx, req.AppointmentID, parentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.New(apperr.KindNotFound, "appointment not found")
		}
		return nil, err
	}
	if appt.PaymentStatus == models.PaymentCompleted &&
		appt.ProviderOrderID == req.ProviderOrderID &&
		appt.ProviderPaymentID == req.ProviderPaymentID &&
		subtle.ConstantTimeCompare([]byte(appt.ProviderSignature), []byte(req.ProviderSignature)) == 1 {
		return s.view(ctx, appt), nil
	}
	if IsTerminal(appt.Status) {
		return nil, apperr.New(apperr.KindInvalidTransition, "appointment is %s", appt.Status)
	}

	valid := false
	// A proof for some other order does not pay for this appointment.
	if appt.ProviderOrderID == "" || appt.ProviderOrderID == req.ProviderOrderID {
		valid, err = s.gateway.Verify(ctx, req.ProviderOrderID, req.ProviderPaymentID, req.ProviderSignature)
		if err != nil {
			s.logger.Error("payment verification unavailable",
				zap.String("appointmentId", appt.ID),
				zap.String("gateway", s.gateway.Name()),
				zap.Error(err))
			return nil, apperr.Wrap(apperr.KindExternal, err, "could not verify payment")
		}
	}

	if !valid {
		if err := PaymentTransition(appt.PaymentStatus, models.PaymentFailed); err != nil {
			return nil, err
		}
		appt.PaymentStatus = models.PaymentFailed
		if err := s.appointments.Update(ctx, appt); err != nil {
			return nil, err
		}
		s.logger.Warn("payment signature mismatch",
			zap.String("appointmentId", appt.ID),
			zap.String("orderId", req.ProviderOrderID))
		return nil, apperr.New(apperr.KindSignatureMismatch, "payment verification failed")
	}

	if err := PaymentTransition(appt.PaymentStatus, models.PaymentCompleted); err != nil {
		return nil, err
	}
	paidAt := s.now()
	appt.PaymentStatus = models.PaymentCompleted
	appt.ProviderOrderID = req.ProviderOrderID
	appt.ProviderPaymentID = req.ProviderPaymentID
	appt.ProviderSignature = req.ProviderSignature
	appt.PaymentDate = &paidAt
	appt.Status = models.StatusConfirmed
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info("payment verified",
		zap.String("appointmentId", appt.ID),
		zap.String("paymentId", req.ProviderPaymentID))
	s.scheduleReminder(ctx, appt)
	return s.view(ctx, appt), nil
}

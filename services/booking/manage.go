package booking

import (
	"context"
	"errors"
	"strings"

	"asdcare/models"
	"asdcare/services/apperr"
	"asdcare/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultAppointmentService) ListForParent(ctx context.Context, parentID string) ([]models.AppointmentView, error) {
	appts, err := s.appointments.ListByParent(ctx, parentID, 0)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, appts), nil
}

func (s *DefaultAppointmentService) parentAppointment(ctx context.Context, parentID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.appointments.GetForParent(ctx, appointmentID, parentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindNotFound, "appointment not found")
	}
	return appt, err
}

func (s *DefaultAppointmentService) therapistAppointment(ctx context.Context, therapistID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.appointments.GetForTherapist(ctx, appointmentID, therapistID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.KindNotFound, "appointment not found")
	}
	return appt, err
}

// UpdateByParent edits notes and lets the parent cancel. Any other status
// change belongs to the therapist or the payment flow.
func (s *DefaultAppointmentService) UpdateByParent(ctx context.Context, parentID, appointmentID string, req models.UpdateAppointmentRequest) (*models.AppointmentView, error) {
	if req.Status != "" && req.Status != models.StatusCancelled {
		return nil, apperr.New(apperr.KindAccessDenied, "parents can only cancel an appointment")
	}

	appt, err := s.parentAppointment(ctx, parentID, appointmentID)
	if err != nil {
		return nil, err
	}

	if req.Status == models.StatusCancelled && appt.Status != models.StatusCancelled {
		if err := Transition(appt.Status, models.StatusCancelled); err != nil {
			return nil, err
		}
		appt.Status = models.StatusCancelled
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		appt.Notes = notes
	}

	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	return s.view(ctx, appt), nil
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, parentID, appointmentID string) error {
	appt, err := s.parentAppointment(ctx, parentID, appointmentID)
	if err != nil {
		return err
	}
	if err := Transition(appt.Status, models.StatusCancelled); err != nil {
		return err
	}
	appt.Status = models.StatusCancelled
	if err := s.appointments.Update(ctx, appt); err != nil {
		return err
	}
	s.logger.Info("appointment cancelled", zap.String("appointmentId", appt.ID), zap.String("parentId", parentID))
	return nil
}

func (s *DefaultAppointmentService) ListForTherapist(ctx context.Context, therapistID string) ([]models.AppointmentView, error) {
	appts, err := s.appointments.ListByTherapist(ctx, therapistID, zeroTime, zeroTime)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, appts), nil
}

// ListTodayForTherapist returns today's appointments ordered by time.
func (s *DefaultAppointmentService) ListTodayForTherapist(ctx context.Context, therapistID string) ([]models.AppointmentView, error) {
	dayStart, dayEnd := utils.DayBounds(utils.StartOfToday(s.now()))
	appts, err := s.appointments.ListByTherapist(ctx, therapistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, appts), nil
}

func (s *DefaultAppointmentService) Confirm(ctx context.Context, therapistID, appointmentID string) (*models.AppointmentView, error) {
	appt, err := s.therapistAppointment(ctx, therapistID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := Transition(appt.Status, models.StatusConfirmed); err != nil {
		return nil, err
	}
	appt.Status = models.StatusConfirmed
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	s.scheduleReminder(ctx, appt)
	return s.view(ctx, appt), nil
}

func (s *DefaultAppointmentService) Complete(ctx context.Context, therapistID, appointmentID string) (*models.AppointmentView, error) {
	appt, err := s.therapistAppointment(ctx, therapistID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := Transition(appt.Status, models.StatusCompleted); err != nil {
		return nil, err
	}
	appt.Status = models.StatusCompleted
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	return s.view(ctx, appt), nil
}

// Reschedule moves an open appointment and puts it back to pending. Payment
// fields are left as they are.
func (s *DefaultAppointmentService) Reschedule(ctx context.Context, therapistID, appointmentID string, req models.RescheduleRequest) (*models.AppointmentView, error) {
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return nil, apperr.New(apperr.KindValidation, "date and time are required")
	}
	day, err := utils.ParseLocalDate(req.Date)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "date must be in YYYY-MM-DD format")
	}
	clock, err := utils.NormalizeClockTime(req.Time)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, "time must be in HH:MM or HH:MM AM/PM format")
	}

	appt, err := s.therapistAppointment(ctx, therapistID, appointmentID)
	if err != nil {
		return nil, err
	}
	if IsTerminal(appt.Status) {
		return nil, apperr.New(apperr.KindInvalidTransition, "cannot reschedule a %s appointment", appt.Status)
	}

	err = s.claim(ctx, therapistID, day, clock, appt.ID, func() error {
		appt.AppointmentDate = day
		appt.AppointmentTime = clock
		appt.Status = models.StatusPending
		return s.appointments.Update(ctx, appt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment rescheduled",
		zap.String("appointmentId", appt.ID),
		zap.String("date", utils.FormatDate(day)),
		zap.String("time", clock))
	return s.view(ctx, appt), nil
}

func (s *DefaultAppointmentService) scheduleReminder(ctx context.Context, appt *models.Appointment) {
	if s.reminders == nil {
		return
	}
	if err := s.reminders.ScheduleReminder(ctx, appt); err != nil {
		s.logger.Warn("failed to schedule reminder", zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	appointmentRepo "asdcare/database/repository/appointment"
	"asdcare/models"
	"asdcare/services/notification"
	"asdcare/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ReminderHandler delivers a queued reminder if the appointment is still
// confirmed for the slot the reminder was queued for.
type ReminderHandler struct {
	Appointments appointmentRepo.AppointmentRepository
	Notifier     notification.Notifier
	Logger       *zap.Logger
}

func (h *ReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	appt, err := h.Appointments.GetByID(ctx, p.AppointmentID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}

	if appt.Status != models.StatusConfirmed ||
		utils.FormatDate(appt.AppointmentDate) != p.AppointmentDate ||
		appt.AppointmentTime != p.AppointmentTime {
		h.Logger.Debug("stale reminder dropped", zap.String("appointmentId", p.AppointmentID))
		return nil
	}

	title := "Upcoming appointment"
	body := fmt.Sprintf("Your session is on %s at %s.", p.AppointmentDate, p.AppointmentTime)
	data := map[string]string{"type": "appointment_reminder", "appointmentId": appt.ID}

	var errs []error
	for _, userID := range []string{appt.ParentID, appt.TherapistID} {
		if err := h.Notifier.Notify(ctx, userID, title, body, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

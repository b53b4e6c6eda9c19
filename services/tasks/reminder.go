// Package tasks defines the background jobs queued through asynq.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"asdcare/models"
	"asdcare/services/scheduling"
	"asdcare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeAppointmentReminder = "appointment:reminder"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		// One reminder per appointment slot; a reschedule gets a new ID.
		asynq.TaskID(fmt.Sprintf("reminder:%s:%s:%s", payload.AppointmentID, payload.AppointmentDate, payload.AppointmentTime)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// StartsAt combines the appointment's calendar day and clock time in local time.
func StartsAt(appt *models.Appointment) (time.Time, error) {
	clock, err := scheduling.ParseClock(appt.AppointmentTime)
	if err != nil {
		return time.Time{}, err
	}
	day, _ := utils.DayBounds(appt.AppointmentDate.In(time.Local))
	return day.Add(time.Duration(clock) * time.Minute), nil
}

// Enqueuer is the part of *asynq.Client the scheduler uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues a reminder a fixed lead time before each
// confirmed appointment.
type ReminderScheduler struct {
	queue  Enqueuer
	lead   time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewReminderScheduler(queue Enqueuer, lead time.Duration, logger *zap.Logger) *ReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderScheduler{queue: queue, lead: lead, logger: logger, now: time.Now}
}

func (s *ReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	start, err := StartsAt(appt)
	if err != nil {
		return err
	}
	now := s.now()
	if !start.After(now) {
		return nil
	}
	fireAt := start.Add(-s.lead)
	if fireAt.Before(now) {
		fireAt = now
	}

	payload := models.ReminderPayload{
		AppointmentID:   appt.ID,
		AppointmentDate: utils.FormatDate(appt.AppointmentDate),
		AppointmentTime: appt.AppointmentTime,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}

	info, err := s.queue.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	s.logger.Info("reminder scheduled",
		zap.String("appointmentId", appt.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

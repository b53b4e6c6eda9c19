package cron

import (
	"context"
	"testing"

	"asdcare/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMuxRejectsUnknownTasks(t *testing.T) {
	mux := NewMux(&tasks.ReminderHandler{Logger: zap.NewNop()})
	err := mux.ProcessTask(context.Background(), asynq.NewTask("reminder:send", nil))
	assert.Error(t, err)
}

func TestMuxSkipsMalformedReminder(t *testing.T) {
	mux := NewMux(&tasks.ReminderHandler{Logger: zap.NewNop()})
	err := mux.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeAppointmentReminder, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

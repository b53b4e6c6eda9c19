package handlers

import (
	"asdcare/services/analytics"
	"asdcare/services/booking"
	"asdcare/services/prediction"
	"asdcare/services/scheduling"
	"asdcare/services/user"

	"go.uber.org/zap"
)

// HandlerBundle groups the services the HTTP endpoints call into.
type HandlerBundle struct {
	Users        user.UserService
	Appointments booking.AppointmentService
	Slots        scheduling.SlotService
	Predictor    prediction.Predictor
	Analytics    analytics.Service
	Logger       *zap.Logger
}

func NewHandlerBundle(users user.UserService, appointments booking.AppointmentService, slots scheduling.SlotService, predictor prediction.Predictor, stats analytics.Service, logger *zap.Logger) *HandlerBundle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HandlerBundle{
		Users:        users,
		Appointments: appointments,
		Slots:        slots,
		Predictor:    predictor,
		Analytics:    stats,
		Logger:       logger,
	}
}

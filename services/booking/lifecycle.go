package booking

import (
	"asdcare/models"
	"asdcare/services/apperr"
)

// statusTransitions lists the moves a therapist or parent may make.
// Completed and cancelled are terminal.
var statusTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
}

// paymentTransitions covers the payment side. A failed verification may be
// retried with a fresh signature.
var paymentTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentPending:   {models.PaymentInitiated},
	models.PaymentInitiated: {models.PaymentCompleted, models.PaymentFailed},
	models.PaymentFailed:    {models.PaymentCompleted, models.PaymentFailed},
}

// IsTerminal reports whether no further status change is possible.
func IsTerminal(s models.AppointmentStatus) bool {
	return len(statusTransitions[s]) == 0
}

// Transition returns an invalid-transition error unless from -> to is allowed.
func Transition(from, to models.AppointmentStatus) error {
	for _, next := range statusTransitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.New(apperr.KindInvalidTransition, "cannot move appointment from %s to %s", from, to)
}

func PaymentTransition(from, to models.PaymentStatus) error {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.New(apperr.KindInvalidTransition, "cannot move payment from %s to %s", from, to)
}

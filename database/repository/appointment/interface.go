package appointmentRepo

import (
	"context"
	"time"

	"asdcare/models"
)

// AppointmentRepository is the document-store boundary of the booking flow.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	// Update replaces the mutable fields of an existing appointment.
	Update(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetForParent(ctx context.Context, id, parentID string) (*models.Appointment, error)
	GetForTherapist(ctx context.Context, id, therapistID string) (*models.Appointment, error)
	ListByParent(ctx context.Context, parentID string, limit int64) ([]models.Appointment, error)
	// ListByTherapist returns the therapist's appointments; zero from/to mean unbounded.
	ListByTherapist(ctx context.Context, therapistID string, from, to time.Time) ([]models.Appointment, error)
	// IntervalTaken reports whether another pending or confirmed appointment
	// holds the therapist's interval that day. excludeID is ignored in the check.
	IntervalTaken(ctx context.Context, therapistID string, dayStart, dayEnd time.Time, clock, excludeID string) (bool, error)
}

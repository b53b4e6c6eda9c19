package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentInitiated PaymentStatus = "initiated"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Appointment is one session between a parent's child and a therapist.
type Appointment struct {
	ID                string            `bson:"id" json:"id"`
	ParentID          string            `bson:"parentId" json:"parentId"`
	ChildID           string            `bson:"childId" json:"childId"`
	TherapistID       string            `bson:"therapistId" json:"therapistId"`
	AppointmentDate   time.Time         `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime   string            `bson:"appointmentTime" json:"appointmentTime"`
	Reason            string            `bson:"reason,omitempty" json:"reason,omitempty"`
	Notes             string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Status            AppointmentStatus `bson:"status" json:"status"`
	PaymentStatus     PaymentStatus     `bson:"paymentStatus" json:"paymentStatus"`
	AppointmentFee    float64           `bson:"appointmentFee" json:"appointmentFee"`
	ProviderOrderID   string            `bson:"providerOrderId,omitempty" json:"providerOrderId,omitempty"`
	ProviderPaymentID string            `bson:"providerPaymentId,omitempty" json:"providerPaymentId,omitempty"`
	ProviderSignature string            `bson:"providerSignature,omitempty" json:"-"`
	PaymentDate       *time.Time        `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	// Occupying mirrors OccupiesInterval so a partial unique index can cover it.
	Occupying bool      `bson:"occupying" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OccupiesInterval reports whether the appointment still holds its time
// interval. Cancelled and completed appointments free it.
func (a *Appointment) OccupiesInterval() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// BookAppointmentRequest is the parent's booking payload. TherapistID may be
// an account id, an email or a username.
type BookAppointmentRequest struct {
	ChildID         string  `json:"childId"`
	TherapistID     string  `json:"therapistId"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
	Reason          string  `json:"reason"`
	AppointmentFee  float64 `json:"appointmentFee,omitempty"`
}

// UpdateAppointmentRequest lets a parent edit notes or cancel.
type UpdateAppointmentRequest struct {
	Status AppointmentStatus `json:"status"`
	Notes  string            `json:"notes"`
}

// RescheduleRequest is the therapist's reschedule payload.
type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// AppointmentView is an appointment with the names of the parties resolved.
type AppointmentView struct {
	Appointment
	ChildName     string `json:"childName,omitempty"`
	TherapistName string `json:"therapistName,omitempty"`
	ParentName    string `json:"parentName,omitempty"`
}

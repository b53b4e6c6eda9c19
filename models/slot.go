package models

import "time"

// SlotMode is how sessions in a slot are held.
type SlotMode string

const (
	ModeInPerson SlotMode = "In-person"
	ModeOnline   SlotMode = "Online"
	ModePhone    SlotMode = "Phone"
)

func (m SlotMode) Valid() bool {
	switch m {
	case ModeInPerson, ModeOnline, ModePhone:
		return true
	}
	return false
}

// Slot is a therapist's availability template for one calendar date. The
// bookable intervals are derived from it on demand and never stored.
type Slot struct {
	ID                 string    `bson:"id" json:"id"`
	TherapistID        string    `bson:"therapistId" json:"therapistId"`
	Date               time.Time `bson:"date" json:"date"`           // local midnight of the calendar day
	StartTime          string    `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime            string    `bson:"endTime" json:"endTime"`     // "HH:MM"
	IntervalMinutes    int       `bson:"intervalMinutes" json:"intervalMinutes"`
	BreakTimeMinutes   int       `bson:"breakTimeMinutes" json:"breakTimeMinutes"`
	Mode               SlotMode  `bson:"mode" json:"mode"`
	HospitalClinicName string    `bson:"hospitalClinicName,omitempty" json:"hospitalClinicName,omitempty"`
	IsActive           bool      `bson:"isActive" json:"isActive"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateSlotRequest is the payload a therapist submits to publish availability.
type CreateSlotRequest struct {
	Date               string   `json:"date" binding:"required"`
	StartTime          string   `json:"startTime" binding:"required"`
	EndTime            string   `json:"endTime" binding:"required"`
	IntervalMinutes    int      `json:"intervalMinutes" binding:"required"`
	BreakTimeMinutes   *int     `json:"breakTimeMinutes" binding:"required"`
	Mode               SlotMode `json:"mode" binding:"required"`
	HospitalClinicName string   `json:"hospitalClinicName"`
}

// Interval is one bookable window derived from a Slot.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotSummary is the public view of a slot shown next to its intervals.
type SlotSummary struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Mode               SlotMode  `json:"mode"`
	HospitalClinicName string    `json:"hospitalClinicName,omitempty"`
}

// Availability is the answer to an availability query.
type Availability struct {
	Slot           *SlotSummary `json:"slot,omitempty"`
	AvailableSlots []Interval   `json:"availableSlots"`
}

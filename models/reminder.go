package models

// ReminderPayload is the body of an appointment reminder task.
type ReminderPayload struct {
	AppointmentID   string `json:"appointmentId"`
	AppointmentDate string `json:"appointmentDate"` // YYYY-MM-DD
	AppointmentTime string `json:"appointmentTime"`
}

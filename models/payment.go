package models

import "time"

// PaymentOrderRequest is sent to the payment gateway to open an order.
type PaymentOrderRequest struct {
	Amount   int64 // minor units
	Currency string
	Receipt  string
	Notes    map[string]string
}

// PaymentOrder is the gateway's answer to an order request.
type PaymentOrder struct {
	ID        string
	Amount    int64
	Currency  string
	CreatedAt time.Time
	// ClientSecret is set by providers whose checkout needs it to confirm.
	ClientSecret string
}

// PaymentOrderResponse is returned to the parent after an order is opened.
type PaymentOrderResponse struct {
	OrderID         string  `json:"orderId"`
	AppointmentID   string  `json:"appointmentId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	KeyID           string  `json:"keyId"`
	ClientSecret    string  `json:"clientSecret,omitempty"`
	TherapistName   string  `json:"therapistName"`
	ChildName       string  `json:"childName"`
	AppointmentDate string  `json:"appointmentDate"`
	AppointmentTime string  `json:"appointmentTime"`
}

// VerifyPaymentRequest carries the client-submitted payment confirmation.
type VerifyPaymentRequest struct {
	AppointmentID     string `json:"appointmentId"`
	ProviderOrderID   string `json:"providerOrderId"`
	ProviderPaymentID string `json:"providerPaymentId"`
	ProviderSignature string `json:"providerSignature"`
}

// Package payment opens orders with the configured payment provider and
// verifies the proof of payment the provider's checkout hands the client.
package payment

import (
	"context"
	"fmt"
	"strings"

	"asdcare/config"
	"asdcare/models"
)

// Gateway opens payment orders with an external provider and checks the
// proof of payment the client's checkout returns.
type Gateway interface {
	CreateOrder(ctx context.Context, req models.PaymentOrderRequest) (*models.PaymentOrder, error)
	// Verify reports whether paymentID settled orderID. A false result with
	// a nil error is a rejected proof; an error means the provider could not
	// be asked.
	Verify(ctx context.Context, orderID, paymentID, signature string) (bool, error)
	// KeyID is the public key the client checkout needs.
	KeyID() string
	Name() string
}

// NewGateway returns the gateway selected by PAYMENT_PROVIDER.
func NewGateway(cfg config.Config) (Gateway, error) {
	switch strings.ToLower(cfg.PaymentProvider) {
	case "", "razorpay":
		return NewRazorpayGateway(cfg.PaymentKeyID, cfg.PaymentKeySecret), nil
	case "stripe":
		return NewStripeGateway(cfg.PaymentKeyID, cfg.PaymentKeySecret), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider %q", cfg.PaymentProvider)
	}
}

// MinorUnits converts a fee in major currency units to the integer minor
// units providers expect (500.00 -> 50000).
func MinorUnits(amount float64) int64 {
	if amount <= 0 {
		return 0
	}
	return int64(amount*100 + 0.5)
}

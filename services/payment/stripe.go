package payment

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"asdcare/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// intentAPI is the part of the Stripe client the gateway uses.
type intentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway treats a PaymentIntent as the order. The client confirms the
// intent with its client secret and reports back the intent ID as the order,
// the intent or latest charge ID as the payment and the client secret as the
// signature.
type StripeGateway struct {
	publishableKey string
	intents        intentAPI
}

func NewStripeGateway(publishableKey, secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{publishableKey: publishableKey, intents: sc.PaymentIntents}
}

func (g *StripeGateway) Name() string  { return "stripe" }
func (g *StripeGateway) KeyID() string { return g.publishableKey }

func (g *StripeGateway) CreateOrder(ctx context.Context, req models.PaymentOrderRequest) (*models.PaymentOrder, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(req.Currency)),
	}
	params.Context = ctx
	if req.Receipt != "" {
		params.AddMetadata("receipt", req.Receipt)
	}
	for k, v := range req.Notes {
		params.AddMetadata(k, v)
	}

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}
	return &models.PaymentOrder{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     strings.ToUpper(string(pi.Currency)),
		CreatedAt:    time.Unix(pi.Created, 0),
		ClientSecret: pi.ClientSecret,
	}, nil
}

// Verify fetches the intent and accepts it only once Stripe reports it
// succeeded.
func (g *StripeGateway) Verify(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.intents.Get(orderID, params)
	if err != nil {
		return false, fmt.Errorf("stripe payment intent %s: %w", orderID, err)
	}
	if subtle.ConstantTimeCompare([]byte(pi.ClientSecret), []byte(signature)) != 1 {
		return false, nil
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return false, nil
	}
	if paymentID == pi.ID {
		return true, nil
	}
	return pi.LatestCharge != nil && pi.LatestCharge.ID == paymentID, nil
}

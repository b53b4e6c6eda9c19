package payment

import (
	"context"
	"fmt"
	"time"

	"asdcare/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// orderCreator is the part of the Razorpay SDK the gateway uses.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type RazorpayGateway struct {
	keyID     string
	keySecret string
	orders    orderCreator
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{keyID: keyID, keySecret: keySecret, orders: client.Order}
}

func (g *RazorpayGateway) Name() string  { return "razorpay" }
func (g *RazorpayGateway) KeyID() string { return g.keyID }

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req models.PaymentOrderRequest) (*models.PaymentOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes := map[string]interface{}{}
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := g.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order: response has no id")
	}
	order := &models.PaymentOrder{ID: id, Amount: req.Amount, Currency: req.Currency, CreatedAt: time.Now()}
	// The SDK decodes JSON numbers as float64.
	if amt, ok := body["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok && cur != "" {
		order.Currency = cur
	}
	if created, ok := body["created_at"].(float64); ok {
		order.CreatedAt = time.Unix(int64(created), 0)
	}
	return order, nil
}

// Verify checks the checkout's HMAC over "orderID|paymentID".
func (g *RazorpayGateway) Verify(ctx context.Context, orderID, paymentID, signature string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return VerifySignature(orderID, paymentID, signature, g.keySecret), nil
}

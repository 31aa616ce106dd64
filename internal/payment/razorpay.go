package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

const orderCurrency = "INR"

// Razorpay implements Gateway on the official Razorpay client.
type Razorpay struct {
	client *razorpay.Client
	secret string
}

// NewRazorpay builds a gateway from API credentials.
func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{
		client: razorpay.NewClient(keyID, keySecret),
		secret: keySecret,
	}
}

// CreateOrder registers an order with Razorpay. Amounts are converted from
// rupees to paise, the unit the gateway expects.
func (g *Razorpay) CreateOrder(ctx context.Context, amountRupees int64, receipt string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := map[string]interface{}{
		"amount":          amountRupees * 100,
		"currency":        orderCurrency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: create order: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay: order response missing id")
	}
	return &Order{ID: id, Amount: amountRupees * 100, Currency: orderCurrency}, nil
}

// VerifySignature checks the checkout signature against the key secret.
func (g *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.secret)
}

package gateway

import (
	"math"

	"tuition-payments/errors"

	"github.com/razorpay/razorpay-go"
)

// RazorpayClient implements Client on top of the Razorpay payment links API.
// A payment link is the hosted page equivalent of a gateway session: creating
// one returns a short URL the payer opens to complete the payment.
type RazorpayClient struct {
	client *razorpay.Client
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{client: razorpay.NewClient(keyID, keySecret)}
}

func (c *RazorpayClient) CreateSession(order Order) (string, error) {
	resp, err := c.client.PaymentLink.Create(linkPayload(order), nil)
	if err != nil {
		return "", errors.NewGatewayError("error creating gateway session", err)
	}

	url, ok := resp["short_url"].(string)
	if !ok || url == "" {
		return "", errors.NewGatewayError("gateway returned no payment page URL", nil)
	}

	return url, nil
}

// linkPayload maps an order description onto the payment link request body.
// Amount is in the smallest currency unit. The fail/cancel/notify URLs and
// the address placeholders ride along in notes so the callback handlers can
// correlate the session with the stored record.
func linkPayload(order Order) map[string]interface{} {
	return map[string]interface{}{
		"amount":       int(math.Round(order.Amount * 100)),
		"currency":     order.Currency,
		"reference_id": order.TransactionID,
		"description":  order.ProductName,
		"customer": map[string]interface{}{
			"name":    order.CustomerName,
			"email":   order.CustomerEmail,
			"contact": order.CustomerPhone,
		},
		"notify": map[string]interface{}{
			"email": true,
		},
		"callback_url":    order.SuccessURL,
		"callback_method": "get",
		"notes": map[string]interface{}{
			"tran_id":          order.TransactionID,
			"product_category": order.ProductCategory,
			"fail_url":         order.FailURL,
			"cancel_url":       order.CancelURL,
			"ipn_url":          order.NotifyURL,
			"ship_name":        order.CustomerName,
			"address1":         order.Address1,
			"address2":         order.Address2,
			"city":             order.City,
			"state":            order.State,
			"postcode":         order.Postcode,
			"country":          order.Country,
		},
	}
}

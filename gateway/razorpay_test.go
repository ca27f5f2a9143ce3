package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkPayload(t *testing.T) {
	order := Order{
		Amount:        5000,
		Currency:      "BDT",
		TransactionID: "abc123",
		SuccessURL:    "http://localhost:8080/payment/success?tran_id=abc123",
		FailURL:       "http://localhost:8080/payment/fail?tran_id=abc123",
		CancelURL:     "http://localhost:8080/payment/cancel?tran_id=abc123",
		NotifyURL:     "http://localhost:8080/payment/ipn",

		ProductName:     "Semester Fees",
		ProductCategory: "Education",

		CustomerName:  "Asha",
		CustomerEmail: "a@x.com",
		CustomerPhone: "01700000000",

		Address1: "Dhaka",
		Country:  "Bangladesh",
	}

	data := linkPayload(order)

	// Amount goes out in the smallest currency unit.
	assert.Equal(t, 500000, data["amount"])
	assert.Equal(t, "BDT", data["currency"])
	assert.Equal(t, "abc123", data["reference_id"])
	assert.Equal(t, "Semester Fees", data["description"])
	assert.Equal(t, order.SuccessURL, data["callback_url"])

	customer, ok := data["customer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Asha", customer["name"])
	assert.Equal(t, "a@x.com", customer["email"])

	notes, ok := data["notes"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abc123", notes["tran_id"])
	assert.Equal(t, order.FailURL, notes["fail_url"])
	assert.Equal(t, order.CancelURL, notes["cancel_url"])
	assert.Equal(t, order.NotifyURL, notes["ipn_url"])
	assert.Equal(t, "Bangladesh", notes["country"])
}

func TestLinkPayloadFractionalAmounts(t *testing.T) {
	// Float truncation must not shave a minor unit off fractional amounts.
	tests := []struct {
		amount float64
		want   int
	}{
		{19.99, 1999},
		{0.29, 29},
		{1049.95, 104995},
		{5000, 500000},
	}

	for _, tt := range tests {
		data := linkPayload(Order{Amount: tt.amount, Currency: "BDT"})
		assert.Equal(t, tt.want, data["amount"], "amount %v", tt.amount)
	}
}

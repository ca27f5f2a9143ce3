package models

import (
	"encoding/json"
	"time"
)

// PaymentRecord is the stored lifecycle record of one tuition payment.
// TransactionID is assigned once at order creation and is the sole key
// used by every later status update and lookup.
type PaymentRecord struct {
	ID            int             `json:"id"`
	TransactionID string          `json:"transactionId"`
	StudentID     string          `json:"studentId"`
	StudentName   string          `json:"studentName"`
	StudentEmail  string          `json:"studentEmail"`
	Semester      string          `json:"semester,omitempty"`
	Amount        float64         `json:"amount"`
	Breakdown     json.RawMessage `json:"breakdown,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`

	// Raw holds a document stored verbatim via the raw insert route.
	// Such rows carry no typed fields and are served back as-is.
	Raw json.RawMessage `json:"-"`
}

// Document returns what the API serves for this record: the verbatim raw
// document when the row was stored through the raw insert route, otherwise
// the typed record itself.
func (r *PaymentRecord) Document() interface{} {
	if len(r.Raw) > 0 {
		return r.Raw
	}
	return r
}

// CreateOrderRequest is the body of POST /order.
type CreateOrderRequest struct {
	StudentID    string          `json:"studentId"`
	StudentName  string          `json:"studentName"`
	StudentEmail string          `json:"studentEmail"`
	Semester     string          `json:"semester"`
	Amount       float64         `json:"amount"`
	Breakdown    json.RawMessage `json:"breakdown"`
}

// CreateOrderResponse carries the gateway's hosted payment page URL.
type CreateOrderResponse struct {
	URL string `json:"url"`
}

// IPNRequest is the body posted by the gateway's asynchronous notification.
type IPNRequest struct {
	TranID string `json:"tran_id"`
	Status string `json:"status"`
}

// InsertResult is returned by the raw payment insert route.
type InsertResult struct {
	InsertedID int64 `json:"insertedId"`
}

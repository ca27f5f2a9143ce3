package services

import (
	"context"
	"encoding/json"

	"tuition-payments/models"
)

// PaymentRepository defines what the payment service needs from the store.
// *db.Store is the production implementation.
type PaymentRepository interface {
	InsertPayment(ctx context.Context, rec *models.PaymentRecord) error
	UpdateStatus(ctx context.Context, transactionID, status string) (int64, error)
	ListPayments(ctx context.Context) ([]models.PaymentRecord, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentRecord, error)
	InsertRaw(ctx context.Context, doc json.RawMessage) (int64, error)
}

// EventPublisher emits payment lifecycle events. Delivery is best-effort;
// a publish failure never affects the request outcome.
type EventPublisher interface {
	PublishPaymentCreated(rec *models.PaymentRecord)
	PublishStatusChanged(transactionID, status string)
}

// ReceiptMailer sends the payment receipt email once a record is paid.
type ReceiptMailer interface {
	SendPaymentReceipt(rec *models.PaymentRecord) error
}

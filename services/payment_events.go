package services

import (
	"fmt"
	"time"

	"tuition-payments/config"
	"tuition-payments/logger"
	"tuition-payments/models"
)

// PaymentEvent is the Kafka payload for payment lifecycle changes.
type PaymentEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"` // "payment.created" or "payment.status_changed"
	TransactionID string    `json:"transaction_id"`
	StudentID     string    `json:"student_id,omitempty"`
	StudentEmail  string    `json:"student_email,omitempty"`
	Amount        float64   `json:"amount,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// KafkaEvents publishes payment events to the configured topic.
// Publishing is non-blocking and best-effort; a failure is logged and
// never affects the payment flow.
type KafkaEvents struct{}

func (KafkaEvents) PublishPaymentCreated(rec *models.PaymentRecord) {
	event := PaymentEvent{
		EventID:       fmt.Sprintf("payment-%s-%d", rec.TransactionID, time.Now().UnixNano()),
		EventType:     "payment.created",
		TransactionID: rec.TransactionID,
		StudentID:     rec.StudentID,
		StudentEmail:  rec.StudentEmail,
		Amount:        rec.Amount,
		Currency:      config.AppConfig.Currency,
		Status:        rec.Status,
		Timestamp:     time.Now().UTC(),
	}

	go func() {
		topic := config.AppConfig.KafkaPaymentEventsTopic
		if err := Publish(topic, "payment-"+rec.TransactionID, event); err != nil {
			logger.Warn("Failed to publish payment.created event for transaction %s: %v", rec.TransactionID, err)
		}
	}()
}

func (KafkaEvents) PublishStatusChanged(transactionID, status string) {
	event := PaymentEvent{
		EventID:       fmt.Sprintf("payment-%s-%d", transactionID, time.Now().UnixNano()),
		EventType:     "payment.status_changed",
		TransactionID: transactionID,
		Status:        status,
		Timestamp:     time.Now().UTC(),
	}

	go func() {
		topic := config.AppConfig.KafkaPaymentEventsTopic
		if err := Publish(topic, "payment-"+transactionID, event); err != nil {
			logger.Warn("Failed to publish payment.status_changed event for transaction %s: %v", transactionID, err)
		}
	}()
}

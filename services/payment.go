package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tuition-payments/config"
	"tuition-payments/errors"
	"tuition-payments/gateway"
	"tuition-payments/logger"
	"tuition-payments/models"
	"tuition-payments/utils"
)

// PaymentService owns the lifecycle of a payment record: creation at order
// placement, status overwrites from the gateway callbacks, and read access.
type PaymentService struct {
	repo    PaymentRepository
	gateway gateway.Client
	events  EventPublisher
	mailer  ReceiptMailer
}

// NewPaymentService creates a new PaymentService. events and mailer may be
// nil; both are best-effort side channels.
func NewPaymentService(repo PaymentRepository, gw gateway.Client, events EventPublisher, mailer ReceiptMailer) *PaymentService {
	return &PaymentService{
		repo:    repo,
		gateway: gw,
		events:  events,
		mailer:  mailer,
	}
}

// CreateOrder validates the request, persists a Pending record keyed by a
// fresh transaction id and then asks the gateway for a payment page URL.
// The record is written before the gateway is contacted; a gateway failure
// leaves it Pending with no rollback.
func (s *PaymentService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (string, error) {
	if err := validateCreateOrder(req); err != nil {
		return "", err
	}

	rec := &models.PaymentRecord{
		TransactionID: newTransactionID(),
		StudentID:     req.StudentID,
		StudentName:   req.StudentName,
		StudentEmail:  req.StudentEmail,
		Semester:      req.Semester,
		Amount:        req.Amount,
		Breakdown:     req.Breakdown,
		Status:        utils.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.InsertPayment(ctx, rec); err != nil {
		logger.Error("Error saving payment record for student %s: %v", req.StudentID, err)
		return "", err
	}

	url, err := s.gateway.CreateSession(s.buildOrder(rec))
	if err != nil {
		// The Pending record stays behind; there is no compensating delete.
		logger.Error("Gateway session failed for transaction %s: %v", rec.TransactionID, err)
		return "", err
	}

	if s.events != nil {
		s.events.PublishPaymentCreated(rec)
	}

	return url, nil
}

// RecordStatusCallback overwrites the status of the record keyed by
// transaction id. All four gateway triggers (success/fail/cancel redirects
// and the IPN) funnel through here; whichever arrives last wins. An empty
// outcome falls back to the configured notification label.
func (s *PaymentService) RecordStatusCallback(ctx context.Context, transactionID, outcome string) error {
	if outcome == "" {
		outcome = config.AppConfig.IPNDefaultStatus
	}

	matched, err := s.repo.UpdateStatus(ctx, transactionID, outcome)
	if err != nil {
		logger.Error("Error updating status for transaction %s: %v", transactionID, err)
		return err
	}

	// A callback for an unknown transaction id is acknowledged, not failed:
	// the gateway retries on error responses and there is nothing to retry into.
	if matched == 0 {
		logger.Warn("Status callback for unknown transaction %s (outcome %q)", transactionID, outcome)
		return nil
	}

	if s.events != nil {
		s.events.PublishStatusChanged(transactionID, outcome)
	}

	if outcome == utils.StatusPaid && s.mailer != nil {
		s.sendReceipt(ctx, transactionID)
	}

	return nil
}

// ListPayments returns every stored record in the store's natural order.
func (s *PaymentService) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	return s.repo.ListPayments(ctx)
}

// GetInvoice returns the record keyed by transaction id.
func (s *PaymentService) GetInvoice(ctx context.Context, transactionID string) (*models.PaymentRecord, error) {
	return s.repo.GetByTransactionID(ctx, transactionID)
}

// SaveRawPayment stores an arbitrary caller-supplied document verbatim,
// independent of the order flow.
func (s *PaymentService) SaveRawPayment(ctx context.Context, doc json.RawMessage) (int64, error) {
	return s.repo.InsertRaw(ctx, doc)
}

func (s *PaymentService) buildOrder(rec *models.PaymentRecord) gateway.Order {
	cfg := config.AppConfig
	return gateway.Order{
		Amount:        rec.Amount,
		Currency:      cfg.Currency,
		TransactionID: rec.TransactionID,

		SuccessURL: fmt.Sprintf("%s/payment/success?tran_id=%s", cfg.CallbackBaseURL, rec.TransactionID),
		FailURL:    fmt.Sprintf("%s/payment/fail?tran_id=%s", cfg.CallbackBaseURL, rec.TransactionID),
		CancelURL:  fmt.Sprintf("%s/payment/cancel?tran_id=%s", cfg.CallbackBaseURL, rec.TransactionID),
		NotifyURL:  cfg.CallbackBaseURL + "/payment/ipn",

		ProductName:     cfg.ProductName,
		ProductCategory: cfg.ProductCategory,

		CustomerName:  rec.StudentName,
		CustomerEmail: rec.StudentEmail,
		CustomerPhone: cfg.BuyerPhone,

		Address1: cfg.BuyerAddress1,
		Address2: cfg.BuyerAddress2,
		City:     cfg.BuyerCity,
		State:    cfg.BuyerState,
		Postcode: cfg.BuyerPostcode,
		Country:  cfg.BuyerCountry,
	}
}

// sendReceipt looks the record up and mails the receipt in the background.
func (s *PaymentService) sendReceipt(ctx context.Context, transactionID string) {
	rec, err := s.repo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Warn("Skipping receipt email, could not load transaction %s: %v", transactionID, err)
		return
	}

	go func() {
		if err := s.mailer.SendPaymentReceipt(rec); err != nil {
			logger.Warn("Failed to send receipt email for transaction %s: %v", transactionID, err)
		}
	}()
}

func validateCreateOrder(req models.CreateOrderRequest) error {
	if strings.TrimSpace(req.StudentID) == "" ||
		strings.TrimSpace(req.StudentName) == "" ||
		strings.TrimSpace(req.StudentEmail) == "" ||
		req.Amount == 0 {
		return errors.NewInvalidParamsError("Missing required fields")
	}
	if err := utils.ValidateAmount(req.Amount); err != nil {
		return errors.NewInvalidParamsError(err.Error())
	}
	if err := utils.ValidateEmail(req.StudentEmail); err != nil {
		return errors.NewInvalidParamsError(err.Error())
	}
	return nil
}

// newTransactionID returns a fresh 24-character hex id.
func newTransactionID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

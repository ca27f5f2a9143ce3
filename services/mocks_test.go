package services

import (
	"context"
	"encoding/json"
	"sync"

	"tuition-payments/errors"
	"tuition-payments/gateway"
	"tuition-payments/models"

	"github.com/stretchr/testify/mock"
)

type RepositoryMock struct {
	mock.Mock
	PaymentRepository
}

func (m *RepositoryMock) InsertPayment(ctx context.Context, rec *models.PaymentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RepositoryMock) UpdateStatus(ctx context.Context, transactionID, status string) (int64, error) {
	args := m.Called(ctx, transactionID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepositoryMock) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentRecord), args.Error(1)
}

func (m *RepositoryMock) GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentRecord, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentRecord), args.Error(1)
}

func (m *RepositoryMock) InsertRaw(ctx context.Context, doc json.RawMessage) (int64, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(int64), args.Error(1)
}

type GatewayMock struct {
	mock.Mock
}

func (m *GatewayMock) CreateSession(order gateway.Order) (string, error) {
	args := m.Called(order)
	return args.String(0), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishPaymentCreated(rec *models.PaymentRecord) {
	m.Called(rec)
}

func (m *PublisherMock) PublishStatusChanged(transactionID, status string) {
	m.Called(transactionID, status)
}

// memRepo is an in-memory PaymentRepository for flow tests that care about
// stored state rather than call counts.
type memRepo struct {
	mu      sync.Mutex
	nextID  int64
	records []*models.PaymentRecord
}

func newMemRepo() *memRepo {
	return &memRepo{}
}

func (r *memRepo) InsertPayment(ctx context.Context, rec *models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = int(r.nextID)
	clone := *rec
	r.records = append(r.records, &clone)
	return nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, transactionID, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched int64
	for _, rec := range r.records {
		if rec.TransactionID == transactionID {
			rec.Status = status
			matched++
		}
	}
	return matched, nil
}

func (r *memRepo) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.PaymentRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *memRepo) GetByTransactionID(ctx context.Context, transactionID string) (*models.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.TransactionID == transactionID {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("invoice not found")
}

func (r *memRepo) InsertRaw(ctx context.Context, doc json.RawMessage) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.records = append(r.records, &models.PaymentRecord{ID: int(r.nextID), Raw: doc})
	return r.nextID, nil
}

// stubGateway returns a fixed URL for every order and remembers the last one.
type stubGateway struct {
	url       string
	err       error
	lastOrder gateway.Order
}

func (g *stubGateway) CreateSession(order gateway.Order) (string, error) {
	g.lastOrder = order
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

// chanMailer signals receipt sends over a channel so tests can wait for the
// background goroutine.
type chanMailer struct {
	sent chan string
}

func newChanMailer() *chanMailer {
	return &chanMailer{sent: make(chan string, 1)}
}

func (m *chanMailer) SendPaymentReceipt(rec *models.PaymentRecord) error {
	m.sent <- rec.TransactionID
	return nil
}

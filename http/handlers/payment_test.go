package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"tuition-payments/config"
	"tuition-payments/errors"
	"tuition-payments/gateway"
	"tuition-payments/models"
	"tuition-payments/services"
	"tuition-payments/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory store standing in for *db.Store.
type memRepo struct {
	mu      sync.Mutex
	nextID  int64
	records []*models.PaymentRecord
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

type stubGateway struct {
	url string
	err error
}

func (g *stubGateway) CreateSession(order gateway.Order) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

func newTestHandler(gw gateway.Client) (*Handler, *memRepo) {
	config.AppConfig = config.Config{
		Currency:         "BDT",
		CallbackBaseURL:  "http://localhost:8080",
		FrontendBaseURL:  "http://localhost:5173",
		IPNDefaultStatus: "IPN Received",
		ProductName:      "Semester Fees",
		ProductCategory:  "Education",
		BuyerCountry:     "Bangladesh",
		BuyerPhone:       "01700000000",
	}

	repo := &memRepo{}
	svc := services.NewPaymentService(repo, gw, nil, nil)
	return New(svc), repo
}

func createOrder(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.CreateOrder(w, req)
	return w
}

func TestCreateOrderHandler(t *testing.T) {
	h, repo := newTestHandler(&stubGateway{url: "https://pay.example/abc"})

	w := createOrder(t, h, `{"studentId":"S1","studentName":"Asha","studentEmail":"a@x.com","amount":5000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CreateOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example/abc", resp.URL)

	records, _ := repo.ListPayments(context.Background())
	require.Len(t, records, 1)
	assert.Equal(t, utils.StatusPending, records[0].Status)
}

func TestCreateOrderHandler_MissingFields(t *testing.T) {
	h, repo := newTestHandler(&stubGateway{url: "https://pay.example/abc"})

	w := createOrder(t, h, `{"studentName":"Asha","amount":5000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	records, _ := repo.ListPayments(context.Background())
	assert.Empty(t, records)
}

func TestCreateOrderHandler_GatewayFailure(t *testing.T) {
	h, _ := newTestHandler(&stubGateway{err: errors.NewGatewayError("session failed", nil)})

	w := createOrder(t, h, `{"studentId":"S1","studentName":"Asha","studentEmail":"a@x.com","amount":5000}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStatusCallbacks_RedirectToFrontend(t *testing.T) {
	tests := []struct {
		name   string
		call   func(h *Handler, w http.ResponseWriter, r *http.Request)
		path   string
		status string
	}{
		{"success", (*Handler).PaymentSuccess, "/success", utils.StatusPaid},
		{"fail", (*Handler).PaymentFail, "/fail", utils.StatusFailed},
		{"cancel", (*Handler).PaymentCancel, "/cancel", utils.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newTestHandler(&stubGateway{url: "https://pay.example/abc"})
			createOrder(t, h, `{"studentId":"S1","studentName":"Asha","studentEmail":"a@x.com","amount":5000}`)

			records, _ := repo.ListPayments(context.Background())
			tranID := records[0].TransactionID

			req := httptest.NewRequest(http.MethodPost, "/payment/"+tt.name+"?tran_id="+tranID, nil)
			w := httptest.NewRecorder()
			tt.call(h, w, req)

			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "http://localhost:5173"+tt.path+"?tran_id="+tranID, w.Header().Get("Location"))

			records, _ = repo.ListPayments(context.Background())
			assert.Equal(t, tt.status, records[0].Status)
		})
	}
}

func TestPaymentIPN(t *testing.T) {
	h, repo := newTestHandler(&stubGateway{url: "https://pay.example/abc"})
	createOrder(t, h, `{"studentId":"S1","studentName":"Asha","studentEmail":"a@x.com","amount":5000}`)

	records, _ := repo.ListPayments(context.Background())
	tranID := records[0].TransactionID

	body := bytes.NewBufferString(`{"tran_id":"` + tranID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/payment/ipn", body)
	w := httptest.NewRecorder()
	h.PaymentIPN(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IPN handled", w.Body.String())

	// No status in the payload: the configured default label is written.
	records, _ = repo.ListPayments(context.Background())
	assert.Equal(t, "IPN Received", records[0].Status)
}

func TestPaymentsCollection(t *testing.T) {
	h, _ := newTestHandler(&stubGateway{url: "https://pay.example/abc"})
	createOrder(t, h, `{"studentId":"S1","studentName":"Asha","studentEmail":"a@x.com","amount":5000}`)

	// Raw insert through the same collection.
	rawBody := `{"legacy":true,"note":"cash desk entry"}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(rawBody))
	w := httptest.NewRecorder()
	h.PaymentsCollection(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var ins models.InsertResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ins))
	assert.Positive(t, ins.InsertedID)

	// Listing returns both, the raw one verbatim.
	req = httptest.NewRequest(http.MethodGet, "/payments", nil)
	w = httptest.NewRecorder()
	h.PaymentsCollection(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var docs []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
	require.Len(t, docs, 2)
	assert.JSONEq(t, rawBody, string(docs[1]))
}

func TestGetInvoiceHandler(t *testing.T) {
	h, repo := newTestHandler(&stubGateway{url: "https://pay.example/abc"})
	createOrder(t, h, `{"studentId":"S1","studentName":"Asha","studentEmail":"a@x.com","amount":5000}`)

	records, _ := repo.ListPayments(context.Background())
	tranID := records[0].TransactionID

	req := httptest.NewRequest(http.MethodGet, "/invoice/"+tranID, nil)
	w := httptest.NewRecorder()
	h.GetInvoice(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var rec models.PaymentRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, tranID, rec.TransactionID)
	assert.Equal(t, "Asha", rec.StudentName)
}

func TestGetInvoiceHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler(&stubGateway{url: "https://pay.example/abc"})

	req := httptest.NewRequest(http.MethodGet, "/invoice/nope", nil)
	w := httptest.NewRecorder()
	h.GetInvoice(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetInvoiceHandler_PDF(t *testing.T) {
	h, repo := newTestHandler(&stubGateway{url: "https://pay.example/abc"})
	createOrder(t, h, `{"studentId":"S1","studentName":"Asha","studentEmail":"a@x.com","amount":5000}`)

	records, _ := repo.ListPayments(context.Background())
	tranID := records[0].TransactionID

	req := httptest.NewRequest(http.MethodGet, "/invoice/"+tranID+"/pdf", nil)
	w := httptest.NewRecorder()
	h.GetInvoice(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestExportPayments(t *testing.T) {
	h, _ := newTestHandler(&stubGateway{url: "https://pay.example/abc"})
	createOrder(t, h, `{"studentId":"S1","studentName":"Asha","studentEmail":"a@x.com","amount":5000}`)

	req := httptest.NewRequest(http.MethodGet, "/payments/export", nil)
	w := httptest.NewRecorder()
	h.ExportPayments(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestRoot(t *testing.T) {
	h, _ := newTestHandler(&stubGateway{url: "https://pay.example/abc"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "University Payment API is running")

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	w = httptest.NewRecorder()
	h.Root(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

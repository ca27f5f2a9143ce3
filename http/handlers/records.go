package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tuition-payments/models"
	"tuition-payments/services"
	"tuition-payments/utils"
)

// PaymentsCollection dispatches /payments: GET lists every stored record,
// POST stores an arbitrary caller-supplied document verbatim.
func (h *Handler) PaymentsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPayments(w, r)
	case http.MethodPost:
		h.saveRawPayment(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	records, err := h.Payments.ListPayments(r.Context())
	if err != nil {
		utils.SendError(w, utils.HTTPStatus(err), "Failed to fetch payments")
		return
	}

	docs := make([]interface{}, 0, len(records))
	for i := range records {
		docs = append(docs, records[i].Document())
	}

	utils.SendJSON(w, http.StatusOK, docs)
}

func (h *Handler) saveRawPayment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		utils.SendError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	id, err := h.Payments.SaveRawPayment(r.Context(), json.RawMessage(body))
	if err != nil {
		utils.SendError(w, utils.HTTPStatus(err), "Failed to save payment")
		return
	}

	utils.SendJSON(w, http.StatusOK, models.InsertResult{InsertedID: id})
}

// GetInvoice handles GET /invoice/{tran_id} and GET /invoice/{tran_id}/pdf.
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tranID := strings.TrimPrefix(r.URL.Path, "/invoice/")
	asPDF := false
	if strings.HasSuffix(tranID, "/pdf") {
		tranID = strings.TrimSuffix(tranID, "/pdf")
		asPDF = true
	}

	if tranID == "" || strings.Contains(tranID, "/") {
		http.NotFound(w, r)
		return
	}

	rec, err := h.Payments.GetInvoice(r.Context(), tranID)
	if err != nil {
		utils.SendError(w, utils.HTTPStatus(err), "Invoice not found")
		return
	}

	if asPDF {
		h.serveInvoicePDF(w, rec)
		return
	}

	utils.SendJSON(w, http.StatusOK, rec.Document())
}

func (h *Handler) serveInvoicePDF(w http.ResponseWriter, rec *models.PaymentRecord) {
	pdfBytes, err := services.GenerateInvoicePDF(rec)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate invoice PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice_%s.pdf"`, rec.TransactionID))
	w.Write(pdfBytes)
}

// ExportPayments handles GET /payments/export: all records as an Excel file.
func (h *Handler) ExportPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, err := h.Payments.ListPayments(r.Context())
	if err != nil {
		utils.SendError(w, utils.HTTPStatus(err), "Failed to fetch payments")
		return
	}

	f, err := services.BuildPaymentsWorkbook(records)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="payments.xlsx"`)
	if err := f.Write(w); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

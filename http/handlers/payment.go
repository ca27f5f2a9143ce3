package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tuition-payments/config"
	"tuition-payments/models"
	"tuition-payments/utils"
)

// CreateOrder handles POST /order: validate, persist a Pending record and
// hand back the gateway's payment page URL.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	url, err := h.Payments.CreateOrder(r.Context(), req)
	if err != nil {
		utils.SendError(w, utils.HTTPStatus(err), "Failed to create payment order")
		return
	}

	utils.SendJSON(w, http.StatusOK, models.CreateOrderResponse{URL: url})
}

// PaymentSuccess handles the gateway's success redirect.
func (h *Handler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	h.statusRedirect(w, r, utils.StatusPaid, "/success")
}

// PaymentFail handles the gateway's fail redirect.
func (h *Handler) PaymentFail(w http.ResponseWriter, r *http.Request) {
	h.statusRedirect(w, r, utils.StatusFailed, "/fail")
}

// PaymentCancel handles the gateway's cancel redirect.
func (h *Handler) PaymentCancel(w http.ResponseWriter, r *http.Request) {
	h.statusRedirect(w, r, utils.StatusCancelled, "/cancel")
}

// statusRedirect records the outcome for the transaction named in the query
// string and then sends the payer's browser to the matching front-end page.
// The redirect is only emitted after a successful update.
func (h *Handler) statusRedirect(w http.ResponseWriter, r *http.Request, outcome, frontendPath string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tranID := r.URL.Query().Get("tran_id")

	if err := h.Payments.RecordStatusCallback(r.Context(), tranID, outcome); err != nil {
		http.Error(w, "Update error", http.StatusInternalServerError)
		return
	}

	target := fmt.Sprintf("%s%s?tran_id=%s", config.AppConfig.FrontendBaseURL, frontendPath, tranID)
	http.Redirect(w, r, target, http.StatusFound)
}

// PaymentIPN handles the gateway's asynchronous server-to-server
// notification. Unlike the redirect callbacks it answers with a plain ack.
func (h *Handler) PaymentIPN(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.IPNRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Payments.RecordStatusCallback(r.Context(), req.TranID, req.Status); err != nil {
		http.Error(w, "IPN update failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("IPN handled"))
}
